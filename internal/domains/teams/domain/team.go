package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

// TeamIdentifier identifies a team.
type TeamIdentifier = kernel.IntIdentifier

var (
	// ErrTeamNameRequired is returned for a team without name.
	ErrTeamNameRequired = fmt.Errorf("%w: team name is required", kernel.ErrValidation)
	// ErrTeamMemberExists is returned when a member is added twice to a team.
	ErrTeamMemberExists = fmt.Errorf("%w: member is already part of the team", kernel.ErrDuplicate)
)

// Team is a team of the club.
type Team struct {
	kernel.Entity[TeamIdentifier]
	Name          string
	Active        bool
	Remark        string
	TraceableTime kernel.TraceableTime

	members []TeamMember
}

// NewTeam creates a team that is not persisted yet.
func NewTeam(name string, active bool, remark string) (Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Team{}, ErrTeamNameRequired
	}
	return Team{
		Name:          name,
		Active:        active,
		Remark:        remark,
		TraceableTime: kernel.NewTraceableTime(),
	}, nil
}

func (t Team) Clone() Team {
	t.members = slices.Clone(t.members)
	return t
}

// Members returns a copy of the members of the team.
func (t Team) Members() []TeamMember {
	return append([]TeamMember(nil), t.members...)
}

// HasMember reports whether the member with uuid is part of the team.
func (t Team) HasMember(uuid kernel.UniqueID) bool {
	for _, member := range t.members {
		if member.Member.UUID == uuid {
			return true
		}
	}
	return false
}

// WithMembers returns a copy of the team holding members. A member appearing more
// than once is kept once.
func (t Team) WithMembers(members ...TeamMember) Team {
	t.members = nil
	for _, member := range members {
		if t.HasMember(member.Member.UUID) {
			continue
		}
		t.members = append(t.members, member)
	}
	return t
}

// AddMember returns a copy of the team with member added.
func (t Team) AddMember(member TeamMember) (Team, error) {
	if t.HasMember(member.Member.UUID) {
		return t, fmt.Errorf("%w: %s in %s", ErrTeamMemberExists, member.Member.UUID, t.Name)
	}
	t.members = append(t.Members(), member)
	return t, nil
}

// Change returns a copy with the given properties, marked for update.
func (t Team) Change(name string, active bool, remark string) (Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return t, ErrTeamNameRequired
	}
	return kernel.Replace(t, func(team *Team) {
		team.Name = name
		team.Active = active
		team.Remark = remark
		team.TraceableTime = team.TraceableTime.MarkForUpdate()
	}), nil
}
