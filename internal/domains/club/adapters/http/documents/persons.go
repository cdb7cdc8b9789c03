package documents

import (
	"github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
)

type PersonAttributes struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    int    `json:"gender"`
	Birthdate string `json:"birthdate"`
	Remark    string `json:"remark"`
}

// NewPersonResource creates the resource of a person with its contact and
// nationality relationships.
func NewPersonResource(person domain.Person) jsonapi.Resource[PersonAttributes] {
	contact := NewContactResource(person.Contact)
	nationality := NewCountryResource(person.Nationality)
	return jsonapi.Resource[PersonAttributes]{
		Type: PersonType,
		ID:   person.ID().String(),
		Attributes: PersonAttributes{
			FirstName: person.Name.FirstName,
			LastName:  person.Name.LastName,
			Gender:    int(person.Gender),
			Birthdate: person.Birthdate.String(),
			Remark:    person.Remark,
		},
		Meta: jsonapi.NewResourceMeta(person.TraceableTime),
	}.
		Relate("contact", jsonapi.ToOne(contact.Ref())).
		Relate("nationality", jsonapi.ToOne(nationality.Ref()))
}

// NewPersonDocument creates a person document including the contact, the
// nationality and the country of the address.
func NewPersonDocument(person domain.Person) jsonapi.Document[PersonAttributes] {
	document := jsonapi.NewDocument(NewPersonResource(person))
	document.Include(
		NewCountryResource(person.Nationality),
		NewContactResource(person.Contact),
		NewCountryResource(person.Contact.Address.Country),
	)
	return document
}
