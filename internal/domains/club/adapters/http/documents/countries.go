// Package documents converts club entities to JSON:API documents.
package documents

import (
	"github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
)

const (
	CountryType = "countries"
	ContactType = "contacts"
	PersonType  = "persons"
	MemberType  = "members"
	UploadType  = "uploads"
)

// CountryAttributes are the attributes of a country resource.
type CountryAttributes struct {
	ISO2 string `json:"iso_2"`
	ISO3 string `json:"iso_3"`
	Name string `json:"name"`
}

// NewCountryResource creates the resource of a country.
func NewCountryResource(country domain.Country) jsonapi.Resource[CountryAttributes] {
	return jsonapi.Resource[CountryAttributes]{
		Type: CountryType,
		ID:   country.ID().String(),
		Attributes: CountryAttributes{
			ISO2: country.ISO2,
			ISO3: country.ISO3,
			Name: country.Name,
		},
		Meta: jsonapi.NewResourceMeta(country.TraceableTime),
	}
}

// NewCountryDocument creates a document with a country as primary data.
func NewCountryDocument(country domain.Country) jsonapi.Document[CountryAttributes] {
	return jsonapi.NewDocument(NewCountryResource(country))
}
