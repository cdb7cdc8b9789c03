package domain

import "github.com/fbraem/kwai/internal/shared/kernel"

// CountryIdentifier identifies a country.
type CountryIdentifier = kernel.IntIdentifier

// Country is a country known by its ISO codes.
type Country struct {
	kernel.Entity[CountryIdentifier]
	ISO2          string
	ISO3          string
	Name          string
	TraceableTime kernel.TraceableTime
}

func (c Country) String() string { return c.ISO2 }
