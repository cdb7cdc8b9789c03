package documents

import (
	"github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
)

type ContactAttributes struct {
	Emails     []string `json:"emails"`
	Tel        string   `json:"tel"`
	Mobile     string   `json:"mobile"`
	Address    string   `json:"address"`
	PostalCode string   `json:"postal_code"`
	City       string   `json:"city"`
	County     string   `json:"county"`
	Remark     string   `json:"remark"`
}

// NewContactResource creates the resource of a contact, related to the country
// of its address.
func NewContactResource(contact domain.Contact) jsonapi.Resource[ContactAttributes] {
	emails := make([]string, 0, len(contact.Emails))
	for _, email := range contact.Emails {
		emails = append(emails, email.String())
	}
	country := NewCountryResource(contact.Address.Country)
	return jsonapi.Resource[ContactAttributes]{
		Type: ContactType,
		ID:   contact.ID().String(),
		Attributes: ContactAttributes{
			Emails:     emails,
			Tel:        contact.Tel,
			Mobile:     contact.Mobile,
			Address:    contact.Address.Address,
			PostalCode: contact.Address.PostalCode,
			City:       contact.Address.City,
			County:     contact.Address.County,
			Remark:     contact.Remark,
		},
		Meta: jsonapi.NewResourceMeta(contact.TraceableTime),
	}.Relate("country", jsonapi.ToOne(country.Ref()))
}

// NewContactDocument creates a contact document including its country.
func NewContactDocument(contact domain.Contact) jsonapi.Document[ContactAttributes] {
	document := jsonapi.NewDocument(NewContactResource(contact))
	document.Include(NewCountryResource(contact.Address.Country))
	return document
}
