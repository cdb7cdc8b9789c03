package documents_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/domains/club/adapters/http/documents"
	"github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/domains/club/ports"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
	"github.com/fbraem/kwai/internal/shared/kernel"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

func testMember(id int64) domain.Member {
	belgium := domain.Country{Entity: kernel.NewEntity(kernel.NewIntIdentifier(1)), ISO2: "BE", ISO3: "BEL", Name: "Belgium"}
	email, _ := kernel.NewEmailAddress("kano@example.com")
	member := domain.Member{
		UUID:    kernel.NewUniqueID(),
		License: domain.License{Number: "12345678", EndDate: kernel.NewDate(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))},
		Person: domain.Person{
			Name:        kernel.Name{FirstName: "Jigoro", LastName: "Kano"},
			Gender:      domain.GenderMale,
			Nationality: belgium,
			Contact: domain.Contact{
				Emails:  []kernel.EmailAddress{email},
				Address: domain.Address{City: "Gent", Country: belgium},
			},
		},
		Active: true,
	}
	if id > 0 {
		member.Entity = kernel.NewEntity(kernel.NewIntIdentifier(id))
		member.Person.Entity = kernel.NewEntity(kernel.NewIntIdentifier(id + 100))
		member.Person.Contact.Entity = kernel.NewEntity(kernel.NewIntIdentifier(id + 200))
	}
	return member
}

func TestMemberDocument(t *testing.T) {
	document := documents.NewMemberDocument(testMember(5))

	resource, ok := document.Resource()
	require.True(t, ok)
	require.Equal(t, "members", resource.Type)
	require.Equal(t, "5", resource.ID)
	require.Equal(t, "12345678", resource.Attributes.LicenseNumber)
	require.Equal(t, "2024-12-31", resource.Attributes.LicenseEndDate)

	person, ok := resource.Relationship("person")
	require.True(t, ok)
	ref, ok := person.One()
	require.True(t, ok)
	require.Equal(t, jsonapi.ResourceIdentifier{Type: "persons", ID: "105"}, ref)

	// The nationality and the address country are the same resource.
	var types []string
	for _, included := range document.Included() {
		types = append(types, included.Identifier().Type)
	}
	require.ElementsMatch(t, []string{"persons", "countries", "contacts"}, types)
}

func TestMembersPresenter(t *testing.T) {
	p := documents.NewMembersPresenter()
	members := []domain.Member{testMember(1), testMember(2)}
	err := p.Present(t.Context(), presenterResult(members))
	require.NoError(t, err)

	raw, err := json.Marshal(p.Document())
	require.NoError(t, err)
	var payload struct {
		Meta     map[string]int    `json:"meta"`
		Data     []json.RawMessage `json:"data"`
		Included []json.RawMessage `json:"included"`
	}
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Equal(t, 2, payload.Meta["count"])
	require.Len(t, payload.Data, 2)
	// Two persons, two contacts and one country.
	require.Len(t, payload.Included, 5)
}

func TestMemberImportPresenter(t *testing.T) {
	p := documents.NewMemberImportPresenter()
	preview := testMember(0)
	p.Present(ports.MemberImportResult{Row: 2, Member: &preview})
	p.Present(ports.MemberImportResult{Row: 3, Message: "unrecognized country: XX"})

	document := p.Document()
	require.Equal(t, 1, document.Document.Meta.Count)
	require.Len(t, document.Errors, 1)
	require.Equal(t, "3", document.Errors[0].Source.Pointer)

	resource, ok := document.Document.Resource()
	require.True(t, ok)
	require.Equal(t, preview.UUID.String(), resource.ID)
	require.Equal(t, true, resource.Meta.Extra["new"])
	require.Equal(t, 2, resource.Meta.Extra["row"])

	raw, err := json.Marshal(document)
	require.NoError(t, err)
	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Contains(t, payload, "errors")
	require.Contains(t, payload, "data")
}

func presenterResult(members []domain.Member) presenter.IterableResult[domain.Member] {
	return presenter.IterableResult[domain.Member]{
		Count: len(members),
		Iterator: func(yield func(domain.Member, error) bool) {
			for _, member := range members {
				if !yield(member, nil) {
					return
				}
			}
		},
	}
}
