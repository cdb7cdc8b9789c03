package domain

import (
	"slices"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

// ContactIdentifier identifies contact information.
type ContactIdentifier = kernel.IntIdentifier

// Address is a postal address.
type Address struct {
	Address    string
	PostalCode string
	City       string
	County     string
	Country    Country
}

// Contact holds the ways a person can be contacted.
type Contact struct {
	kernel.Entity[ContactIdentifier]
	Emails        []kernel.EmailAddress
	Tel           string
	Mobile        string
	Address       Address
	Remark        string
	TraceableTime kernel.TraceableTime
}

// Clone copies the contact together with its emails.
func (c Contact) Clone() Contact {
	c.Emails = slices.Clone(c.Emails)
	return c
}
