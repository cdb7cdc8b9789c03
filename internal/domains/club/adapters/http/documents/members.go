package documents

import (
	"github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
)

type MemberAttributes struct {
	UUID           string `json:"uuid"`
	LicenseNumber  string `json:"license_number"`
	LicenseEndDate string `json:"license_end_date"`
	Remark         string `json:"remark"`
	Active         bool   `json:"active"`
	Competition    bool   `json:"competition"`
}

// MemberDocument is a document with members as primary data.
type MemberDocument = jsonapi.Document[MemberAttributes]

// NewMemberResource creates the resource of a member, related to its person.
func NewMemberResource(member domain.Member) jsonapi.Resource[MemberAttributes] {
	person := NewPersonResource(member.Person)
	return jsonapi.Resource[MemberAttributes]{
		Type: MemberType,
		ID:   member.ID().String(),
		Attributes: MemberAttributes{
			UUID:           member.UUID.String(),
			LicenseNumber:  member.License.Number,
			LicenseEndDate: member.License.EndDate.String(),
			Remark:         member.Remark,
			Active:         member.Active,
			Competition:    member.Competition,
		},
		Meta: jsonapi.NewResourceMeta(member.TraceableTime),
	}.Relate("person", jsonapi.ToOne(person.Ref()))
}

// NewMemberDocument creates a member document including the person and everything
// the person relates to.
func NewMemberDocument(member domain.Member) MemberDocument {
	document := jsonapi.NewDocument(NewMemberResource(member))
	person := NewPersonDocument(member.Person)
	resource, _ := person.Resource()
	document.Include(resource)
	document.Include(person.Included()...)
	return document
}

// NewMemberPresenter presents one member.
func NewMemberPresenter() *jsonapi.DocumentPresenter[domain.Member, MemberAttributes] {
	return jsonapi.NewDocumentPresenter(NewMemberDocument)
}

// NewMembersPresenter presents a page of members.
func NewMembersPresenter() *jsonapi.CollectionPresenter[domain.Member, MemberAttributes] {
	return jsonapi.NewCollectionPresenter(NewMemberDocument)
}
