package kernel

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

// ErrInvalidEmail is returned for malformed email addresses.
var ErrInvalidEmail = fmt.Errorf("%w: invalid email address", ErrValidation)

// EmailAddress is a validated email address.
type EmailAddress struct {
	value string
}

// NewEmailAddress validates raw.
func NewEmailAddress(raw string) (EmailAddress, error) {
	raw = strings.TrimSpace(raw)
	if err := validate.Var(raw, "required,email"); err != nil {
		return EmailAddress{}, fmt.Errorf("%w: %q", ErrInvalidEmail, raw)
	}
	return EmailAddress{value: raw}, nil
}

func (e EmailAddress) String() string { return e.value }
func (e EmailAddress) IsEmpty() bool { return e.value == "" }

// Name of a person.
type Name struct {
	FirstName string
	LastName  string
}

func (n Name) String() string {
	return strings.TrimSpace(n.FirstName + " " + n.LastName)
}

// UniqueID is a generated identifier exposed to the outside world instead of database keys.
type UniqueID struct {
	value uuid.UUID
}

// NewUniqueID generates a random unique id.
func NewUniqueID() UniqueID {
	return UniqueID{value: uuid.New()}
}

// ParseUniqueID parses the textual form of a unique id.
func ParseUniqueID(raw string) (UniqueID, error) {
	value, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return UniqueID{}, fmt.Errorf("%w: invalid unique id %q", ErrValidation, raw)
	}
	return UniqueID{value: value}, nil
}

func (u UniqueID) IsEmpty() bool { return u.value == uuid.Nil }
func (u UniqueID) String() string { return u.value.String() }

// Owner is the user that created or changed an entity.
type Owner struct {
	ID   IntIdentifier
	UUID UniqueID
	Name Name
}

// Password is a bcrypt hashed password.
type Password struct {
	hash string
}

// HashPassword hashes a plain text password.
func HashPassword(plain string) (Password, error) {
	if plain == "" {
		return Password{}, fmt.Errorf("%w: password is required", ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return Password{}, fmt.Errorf("hash password: %w", err)
	}
	return Password{hash: string(hash)}, nil
}

// PasswordFromHash wraps a stored hash.
func PasswordFromHash(hash string) Password {
	return Password{hash: hash}
}

// Verify compares plain with the hash.
func (p Password) Verify(plain string) bool {
	if p.hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(p.hash), []byte(plain)) == nil
}

func (p Password) Hash() string { return p.hash }
