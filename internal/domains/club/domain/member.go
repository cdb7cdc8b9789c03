package domain

import (
	"fmt"
	"strings"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

// MemberIdentifier identifies a member.
type MemberIdentifier = kernel.IntIdentifier

// ErrLicenseRequired is returned for a member without license number.
var ErrLicenseRequired = fmt.Errorf("%w: license number is required", kernel.ErrValidation)

// License is the federation license of a member.
type License struct {
	Number  string
	EndDate kernel.Date
}

// IsExpired reports whether the license end date lies in the past.
func (l License) IsExpired() bool {
	return !l.EndDate.IsEmpty() && kernel.NewTimestamp(l.EndDate.Time().AddDate(0, 0, 1)).IsPast()
}

func (l License) String() string { return l.Number }

// Member is a member of the club.
type Member struct {
	kernel.Entity[MemberIdentifier]
	UUID          kernel.UniqueID
	License       License
	Person        Person
	Remark        string
	Competition   bool
	Active        bool
	TraceableTime kernel.TraceableTime
}

func (m Member) Clone() Member {
	m.Person = m.Person.Clone()
	return m
}

// NewMember creates a new, not yet persisted member.
func NewMember(license License, person Person, active bool) (Member, error) {
	license.Number = strings.TrimSpace(license.Number)
	if license.Number == "" {
		return Member{}, ErrLicenseRequired
	}
	return Member{
		UUID:          kernel.NewUniqueID(),
		License:       license,
		Person:        person,
		Active:        active,
		TraceableTime: kernel.NewTraceableTime(),
	}, nil
}

// MergeImported returns the member updated with the data of an imported member. The
// identity, remark and club specific flags of the existing member are kept.
func (m Member) MergeImported(imported Member) Member {
	contact := kernel.Replace(imported.Person.Contact, func(c *Contact) {
		c.Entity = m.Person.Contact.Entity
		c.Remark = m.Person.Contact.Remark
		c.TraceableTime = m.Person.Contact.TraceableTime.MarkForUpdate()
	})
	person := kernel.Replace(imported.Person, func(p *Person) {
		p.Entity = m.Person.Entity
		p.Remark = m.Person.Remark
		p.Contact = contact
		p.TraceableTime = m.Person.TraceableTime.MarkForUpdate()
	})
	return kernel.Replace(imported, func(merged *Member) {
		merged.Entity = m.Entity
		merged.UUID = m.UUID
		merged.Remark = m.Remark
		merged.Competition = m.Competition
		merged.Active = m.Active
		merged.Person = person
		merged.TraceableTime = m.TraceableTime.MarkForUpdate()
	})
}

// FileUploadIdentifier identifies an upload.
type FileUploadIdentifier = kernel.IntIdentifier

// FileUpload is an uploaded file with members.
type FileUpload struct {
	kernel.Entity[FileUploadIdentifier]
	UUID          kernel.UniqueID
	Filename      string
	Owner         kernel.Owner
	Remark        string
	Preview       bool
	TraceableTime kernel.TraceableTime
}

// NewFileUpload creates the upload record for filename.
func NewFileUpload(filename string, owner kernel.Owner, preview bool) FileUpload {
	return FileUpload{
		UUID:          kernel.NewUniqueID(),
		Filename:      filename,
		Owner:         owner,
		Preview:       preview,
		TraceableTime: kernel.NewTraceableTime(),
	}
}
