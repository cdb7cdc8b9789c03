package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

func TestNewTeamRequiresName(t *testing.T) {
	_, err := NewTeam("  ", true, "")
	require.ErrorIs(t, err, ErrTeamNameRequired)
	require.ErrorIs(t, err, kernel.ErrValidation)

	team, err := NewTeam(" U11 ", true, "")
	require.NoError(t, err)
	require.Equal(t, "U11", team.Name)
	require.False(t, team.TraceableTime.CreatedAt.IsEmpty())
}

func TestAddMember(t *testing.T) {
	team, err := NewTeam("U11", true, "")
	require.NoError(t, err)
	member := Member{UUID: kernel.NewUniqueID(), Name: kernel.Name{FirstName: "Jigoro", LastName: "Kano"}}

	updated, err := team.AddMember(NewTeamMember(member, true))
	require.NoError(t, err)
	require.Len(t, updated.Members(), 1)
	require.Empty(t, team.Members())

	_, err = updated.AddMember(NewTeamMember(member, false))
	require.ErrorIs(t, err, ErrTeamMemberExists)
	require.ErrorIs(t, err, kernel.ErrDuplicate)
}

func TestWithMembersKeepsMemberOnce(t *testing.T) {
	member := Member{UUID: kernel.NewUniqueID()}
	team := Team{}.WithMembers(NewTeamMember(member, true), NewTeamMember(member, false))
	require.Len(t, team.Members(), 1)
	require.True(t, team.Members()[0].Active)
}

func TestChange(t *testing.T) {
	team, err := NewTeam("U11", true, "")
	require.NoError(t, err)
	_, err = team.Change("", false, "")
	require.ErrorIs(t, err, ErrTeamNameRequired)

	changed, err := team.Change("U13", false, "renamed")
	require.NoError(t, err)
	require.Equal(t, "U13", changed.Name)
	require.False(t, changed.Active)
	require.False(t, changed.TraceableTime.UpdatedAt.IsEmpty())
	require.Equal(t, "U11", team.Name)
}
