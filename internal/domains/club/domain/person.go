package domain

import (
	"fmt"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

// PersonIdentifier identifies a person.
type PersonIdentifier = kernel.IntIdentifier

// Gender of a person.
type Gender int

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

// NewGender validates the stored gender value.
func NewGender(value int) (Gender, error) {
	if value < int(GenderUnknown) || value > int(GenderFemale) {
		return GenderUnknown, fmt.Errorf("%w: invalid gender %d", kernel.ErrValidation, value)
	}
	return Gender(value), nil
}

// Birthdate is the date of birth of a person.
type Birthdate struct {
	kernel.Date
}

// Person is a natural person.
type Person struct {
	kernel.Entity[PersonIdentifier]
	Name          kernel.Name
	Gender        Gender
	Birthdate     Birthdate
	Nationality   Country
	Contact       Contact
	Remark        string
	TraceableTime kernel.TraceableTime
}

func (p Person) Clone() Person {
	p.Contact = p.Contact.Clone()
	return p
}
