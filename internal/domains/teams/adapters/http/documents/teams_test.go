package documents_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	club "github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/domains/teams/adapters/http/documents"
	"github.com/fbraem/kwai/internal/domains/teams/domain"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

func TestTeamDocumentIncludesMembers(t *testing.T) {
	belgium := club.Country{Entity: kernel.NewEntity(kernel.NewIntIdentifier(1)), ISO2: "BE", ISO3: "BEL", Name: "Belgium"}
	kano := domain.Member{
		Entity:      kernel.NewEntity(kernel.NewIntIdentifier(5)),
		UUID:        kernel.NewUniqueID(),
		Name:        kernel.Name{FirstName: "Jigoro", LastName: "Kano"},
		Nationality: belgium,
	}
	mifune := kano
	mifune.UUID = kernel.NewUniqueID()
	mifune.Name.LastName = "Mifune"

	team, err := domain.NewTeam("U11", true, "")
	require.NoError(t, err)
	team.Entity = team.WithID(kernel.NewIntIdentifier(3))
	team = team.WithMembers(domain.NewTeamMember(kano, true), domain.NewTeamMember(mifune, false))

	raw, err := json.Marshal(documents.NewTeamDocument(team))
	require.NoError(t, err)

	var payload struct {
		Data struct {
			ID            string `json:"id"`
			Relationships struct {
				TeamMembers struct {
					Data []map[string]string `json:"data"`
				} `json:"team_members"`
			} `json:"relationships"`
		} `json:"data"`
		Included []struct {
			Type       string         `json:"type"`
			ID         string         `json:"id"`
			Attributes map[string]any `json:"attributes"`
		} `json:"included"`
	}
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Equal(t, "3", payload.Data.ID)
	require.Len(t, payload.Data.Relationships.TeamMembers.Data, 2)
	// Both members share the nationality, which is included once.
	require.Len(t, payload.Included, 3)
	require.Equal(t, documents.TeamMemberType, payload.Included[0].Type)
	require.Equal(t, true, payload.Included[0].Attributes["active"])
	require.Equal(t, "countries", payload.Included[1].Type)
	require.Equal(t, false, payload.Included[2].Attributes["active"])
}
