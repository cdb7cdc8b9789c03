// Package importer reads member files delivered by the federations.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/domains/club/ports"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var _ ports.MemberImporter = (*FlemishImporter)(nil)

var flemishColumns = []string{
	"vergunning", "vervaldatum", "voornaam", "achternaam", "geslacht", "geboortedatum",
	"nationaliteit", "email", "straatnummer", "postnummer", "gemeente", "land",
	"telefoon1", "telefoon2", "status",
}

// FlemishImporter reads the CSV export of the Flemish Judo Federation. The first line
// holds the column names. Row numbers in the results are line numbers of the file.
type FlemishImporter struct {
	countries ports.CountryRepository
}

// NewFlemishImporter creates an importer that resolves countries with countries.
func NewFlemishImporter(countries ports.CountryRepository) *FlemishImporter {
	return &FlemishImporter{countries: countries}
}

// Import yields one result per data line. Lines that cannot be converted to a member
// yield a result with a message; the import continues with the next line.
func (i *FlemishImporter) Import(ctx context.Context, r io.Reader) iter.Seq[ports.ImportResult] {
	return func(yield func(ports.ImportResult) bool) {
		reader := csv.NewReader(r)
		reader.TrimLeadingSpace = true
		header, err := reader.Read()
		if err != nil {
			yield(ports.ImportResult{Row: 1, Message: fmt.Sprintf("cannot read header: %v", err)})
			return
		}
		index := make(map[string]int, len(header))
		for pos, name := range header {
			index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = pos
		}
		for _, column := range flemishColumns {
			if _, ok := index[column]; !ok {
				yield(ports.ImportResult{Row: 1, Message: fmt.Sprintf("missing column %q", column)})
				return
			}
		}

		countries := countryCache{repo: i.countries, cache: map[string]domain.Country{}}
		for {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				var parseErr *csv.ParseError
				if errors.As(err, &parseErr) {
					if !yield(ports.ImportResult{Row: parseErr.Line, Message: parseErr.Error()}) {
						return
					}
					continue
				}
				yield(ports.ImportResult{Message: err.Error()})
				return
			}
			line, _ := reader.FieldPos(0)
			field := func(name string) string {
				return strings.TrimSpace(record[index[name]])
			}
			result := ports.ImportResult{Row: line}
			member, err := toMember(ctx, field, countries)
			if err != nil {
				result.Message = err.Error()
			} else {
				result.Member = &member
			}
			if !yield(result) {
				return
			}
		}
	}
}

func toMember(ctx context.Context, field func(string) string, countries countryCache) (domain.Member, error) {
	nationality, err := countries.get(ctx, field("nationaliteit"))
	if err != nil {
		return domain.Member{}, err
	}
	var emails []kernel.EmailAddress
	for _, raw := range strings.Split(field("email"), ";") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		email, err := kernel.NewEmailAddress(raw)
		if err != nil {
			return domain.Member{}, err
		}
		emails = append(emails, email)
	}
	country, err := countries.get(ctx, field("land"))
	if err != nil {
		return domain.Member{}, err
	}
	endDate, err := kernel.ParseDate(field("vervaldatum"))
	if err != nil {
		return domain.Member{}, err
	}
	birthdate, err := kernel.ParseDate(field("geboortedatum"))
	if err != nil {
		return domain.Member{}, err
	}

	person := domain.Person{
		Name:        kernel.Name{FirstName: field("voornaam"), LastName: field("achternaam")},
		Gender:      flemishGender(field("geslacht")),
		Birthdate:   domain.Birthdate{Date: birthdate},
		Nationality: nationality,
		Contact: domain.Contact{
			Emails: emails,
			Mobile: field("telefoon1"),
			Tel:    field("telefoon2"),
			Address: domain.Address{
				Address:    field("straatnummer"),
				PostalCode: field("postnummer"),
				City:       field("gemeente"),
				Country:    country,
			},
			TraceableTime: kernel.NewTraceableTime(),
		},
		TraceableTime: kernel.NewTraceableTime(),
	}
	return domain.NewMember(
		domain.License{Number: field("vergunning"), EndDate: endDate},
		person,
		field("status") == "ACTIEF",
	)
}

func flemishGender(value string) domain.Gender {
	switch value {
	case "V":
		return domain.GenderFemale
	case "M":
		return domain.GenderMale
	default:
		return domain.GenderUnknown
	}
}

// countryCache remembers the countries looked up during one import.
type countryCache struct {
	repo  ports.CountryRepository
	cache map[string]domain.Country
}

func (c countryCache) get(ctx context.Context, iso2 string) (domain.Country, error) {
	key := strings.ToUpper(iso2)
	if country, ok := c.cache[key]; ok {
		return country, nil
	}
	country, err := c.repo.GetByISO2(ctx, key)
	if errors.Is(err, ports.ErrCountryNotFound) {
		return domain.Country{}, fmt.Errorf("unrecognized country: %s", iso2)
	}
	if err != nil {
		return domain.Country{}, err
	}
	c.cache[key] = country
	return country, nil
}
