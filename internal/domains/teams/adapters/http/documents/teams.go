// Package documents converts teams to JSON:API documents.
package documents

import (
	clubdocuments "github.com/fbraem/kwai/internal/domains/club/adapters/http/documents"
	"github.com/fbraem/kwai/internal/domains/teams/domain"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
)

const (
	TeamType       = "teams"
	TeamMemberType = "team_members"
)

type TeamAttributes struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
	Remark string `json:"remark"`
}

type TeamDocument = jsonapi.Document[TeamAttributes]

// NewTeamResource creates the resource of a team. The members are related by uuid.
func NewTeamResource(team domain.Team) jsonapi.Resource[TeamAttributes] {
	members := team.Members()
	identifiers := make([]jsonapi.ResourceIdentifier, 0, len(members))
	for _, member := range members {
		identifiers = append(identifiers, jsonapi.ResourceIdentifier{Type: TeamMemberType, ID: member.Member.UUID.String()})
	}
	return jsonapi.Resource[TeamAttributes]{
		Type: TeamType,
		ID:   team.ID().String(),
		Attributes: TeamAttributes{
			Name:   team.Name,
			Active: team.Active,
			Remark: team.Remark,
		},
		Meta: jsonapi.NewResourceMeta(team.TraceableTime),
	}.Relate("team_members", jsonapi.ToMany(identifiers...))
}

// NewTeamDocument creates a team document including the team members and their
// nationality.
func NewTeamDocument(team domain.Team) TeamDocument {
	document := jsonapi.NewDocument(NewTeamResource(team))
	for _, member := range team.Members() {
		memberDocument := NewTeamMemberDocument(member)
		resource, _ := memberDocument.Resource()
		document.Include(resource)
		document.Include(memberDocument.Included()...)
	}
	return document
}

func NewTeamPresenter() *jsonapi.DocumentPresenter[domain.Team, TeamAttributes] {
	return jsonapi.NewDocumentPresenter(NewTeamDocument)
}

func NewTeamsPresenter() *jsonapi.CollectionPresenter[domain.Team, TeamAttributes] {
	return jsonapi.NewCollectionPresenter(NewTeamDocument)
}

// TeamMemberAttributes are the attributes of a member in the context of teams.
// Active is only set for the member of a team.
type TeamMemberAttributes struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	LicenseNumber  string `json:"license_number"`
	LicenseEndDate string `json:"license_end_date"`
	Gender         int    `json:"gender"`
	Birthdate      string `json:"birthdate"`
	ActiveInClub   bool   `json:"active_in_club"`
	Active         *bool  `json:"active,omitempty"`
}

type TeamMemberDocument = jsonapi.Document[TeamMemberAttributes]

// NewMemberResource creates the resource of a member, identified by its uuid.
func NewMemberResource(member domain.Member) jsonapi.Resource[TeamMemberAttributes] {
	nationality := clubdocuments.NewCountryResource(member.Nationality)
	return jsonapi.Resource[TeamMemberAttributes]{
		Type: TeamMemberType,
		ID:   member.UUID.String(),
		Attributes: TeamMemberAttributes{
			FirstName:      member.Name.FirstName,
			LastName:       member.Name.LastName,
			LicenseNumber:  member.License.Number,
			LicenseEndDate: member.License.EndDate.String(),
			Gender:         int(member.Gender),
			Birthdate:      member.Birthdate.String(),
			ActiveInClub:   member.ActiveInClub,
		},
	}.Relate("nationality", jsonapi.ToOne(nationality.Ref()))
}

// NewMemberDocument creates a member document including the nationality.
func NewMemberDocument(member domain.Member) TeamMemberDocument {
	document := jsonapi.NewDocument(NewMemberResource(member))
	document.Include(clubdocuments.NewCountryResource(member.Nationality))
	return document
}

// NewTeamMemberDocument creates the document of a member of a team.
func NewTeamMemberDocument(teamMember domain.TeamMember) TeamMemberDocument {
	resource := NewMemberResource(teamMember.Member)
	active := teamMember.Active
	resource.Attributes.Active = &active
	resource.Meta = jsonapi.NewResourceMeta(teamMember.TraceableTime)
	document := jsonapi.NewDocument(resource)
	document.Include(clubdocuments.NewCountryResource(teamMember.Member.Nationality))
	return document
}

func NewMembersPresenter() *jsonapi.CollectionPresenter[domain.Member, TeamMemberAttributes] {
	return jsonapi.NewCollectionPresenter(NewMemberDocument)
}
