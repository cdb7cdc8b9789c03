package sqlstore

import (
	"strings"
	"time"

	"github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	membersTable = database.NewTable("judo_members",
		"id", "uuid", "license", "license_end_date", "person_id", "remark", "competition", "active", "created_at", "updated_at")
	personsTable = database.NewTable("persons",
		"id", "lastname", "firstname", "gender", "birthdate", "remark", "user_id", "contact_id", "nationality_id", "created_at", "updated_at")
	contactsTable = database.NewTable("contacts",
		"id", "email", "tel", "mobile", "address", "postal_code", "city", "county", "country_id", "remark", "created_at", "updated_at")
	countriesTable     = database.NewTable("countries", "id", "iso_2", "iso_3", "name", "created_at", "updated_at")
	nationalitiesTable = countriesTable.As("nationality")
	uploadsTable       = database.NewTable("imports", "id", "uuid", "filename", "remark", "preview", "user_id", "created_at", "updated_at")
	memberUploadsTable = database.NewTable("judo_member_imports", "member_id", "import_id", "created_at")
)

type countryRow struct {
	ID        int64      `gorm:"column:id"`
	ISO2      string     `gorm:"column:iso_2"`
	ISO3      string     `gorm:"column:iso_3"`
	Name      string     `gorm:"column:name"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (r countryRow) Key() int64 { return r.ID }

func newCountryRow(country domain.Country) countryRow {
	return countryRow{
		ID:        country.ID().Value(),
		ISO2:      country.ISO2,
		ISO3:      country.ISO3,
		Name:      country.Name,
		CreatedAt: country.TraceableTime.CreatedAt.Time(),
		UpdatedAt: country.TraceableTime.UpdatedAt.Ptr(),
	}
}

func (r countryRow) toDomain() domain.Country {
	return domain.Country{
		Entity:        kernel.NewEntity(kernel.NewIntIdentifier(r.ID)),
		ISO2:          r.ISO2,
		ISO3:          r.ISO3,
		Name:          r.Name,
		TraceableTime: kernel.TraceableTimeFrom(r.CreatedAt, r.UpdatedAt),
	}
}

type contactRow struct {
	ID         int64      `gorm:"column:id"`
	Email      string     `gorm:"column:email"`
	Tel        string     `gorm:"column:tel"`
	Mobile     string     `gorm:"column:mobile"`
	Address    string     `gorm:"column:address"`
	PostalCode string     `gorm:"column:postal_code"`
	City       string     `gorm:"column:city"`
	County     string     `gorm:"column:county"`
	CountryID  int64      `gorm:"column:country_id"`
	Remark     *string    `gorm:"column:remark"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt  *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (r contactRow) Key() int64 { return r.ID }

// Email addresses are stored in one column, separated by a semicolon.
const emailSeparator = ";"

func newContactRow(contact domain.Contact) contactRow {
	emails := make([]string, 0, len(contact.Emails))
	for _, email := range contact.Emails {
		emails = append(emails, email.String())
	}
	return contactRow{
		ID:         contact.ID().Value(),
		Email:      strings.Join(emails, emailSeparator),
		Tel:        contact.Tel,
		Mobile:     contact.Mobile,
		Address:    contact.Address.Address,
		PostalCode: contact.Address.PostalCode,
		City:       contact.Address.City,
		County:     contact.Address.County,
		CountryID:  contact.Address.Country.ID().Value(),
		Remark:     database.NullString(contact.Remark),
		CreatedAt:  contact.TraceableTime.CreatedAt.Time(),
		UpdatedAt:  contact.TraceableTime.UpdatedAt.Ptr(),
	}
}

func (r contactRow) toDomain(country domain.Country) (domain.Contact, error) {
	var emails []kernel.EmailAddress
	for _, raw := range strings.Split(r.Email, emailSeparator) {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		email, err := kernel.NewEmailAddress(raw)
		if err != nil {
			return domain.Contact{}, err
		}
		emails = append(emails, email)
	}
	return domain.Contact{
		Entity: kernel.NewEntity(kernel.NewIntIdentifier(r.ID)),
		Emails: emails,
		Tel:    r.Tel,
		Mobile: r.Mobile,
		Address: domain.Address{
			Address:    r.Address,
			PostalCode: r.PostalCode,
			City:       r.City,
			County:     r.County,
			Country:    country,
		},
		Remark:        database.StringValue(r.Remark),
		TraceableTime: kernel.TraceableTimeFrom(r.CreatedAt, r.UpdatedAt),
	}, nil
}

type personRow struct {
	ID            int64      `gorm:"column:id"`
	Lastname      string     `gorm:"column:lastname"`
	Firstname     string     `gorm:"column:firstname"`
	Gender        int        `gorm:"column:gender"`
	Birthdate     time.Time  `gorm:"column:birthdate"`
	Remark        *string    `gorm:"column:remark"`
	UserID        *int64     `gorm:"column:user_id"`
	ContactID     int64      `gorm:"column:contact_id"`
	NationalityID int64      `gorm:"column:nationality_id"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt     *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (r personRow) Key() int64 { return r.ID }

func newPersonRow(person domain.Person) personRow {
	return personRow{
		ID:            person.ID().Value(),
		Lastname:      person.Name.LastName,
		Firstname:     person.Name.FirstName,
		Gender:        int(person.Gender),
		Birthdate:     person.Birthdate.Time(),
		Remark:        database.NullString(person.Remark),
		ContactID:     person.Contact.ID().Value(),
		NationalityID: person.Nationality.ID().Value(),
		CreatedAt:     person.TraceableTime.CreatedAt.Time(),
		UpdatedAt:     person.TraceableTime.UpdatedAt.Ptr(),
	}
}

func (r personRow) toDomain(nationality domain.Country, contact domain.Contact) (domain.Person, error) {
	gender, err := domain.NewGender(r.Gender)
	if err != nil {
		return domain.Person{}, err
	}
	return domain.Person{
		Entity:        kernel.NewEntity(kernel.NewIntIdentifier(r.ID)),
		Name:          kernel.Name{FirstName: r.Firstname, LastName: r.Lastname},
		Gender:        gender,
		Birthdate:     domain.Birthdate{Date: kernel.NewDate(r.Birthdate)},
		Nationality:   nationality,
		Contact:       contact,
		Remark:        database.StringValue(r.Remark),
		TraceableTime: kernel.TraceableTimeFrom(r.CreatedAt, r.UpdatedAt),
	}, nil
}

type memberRow struct {
	ID             int64      `gorm:"column:id"`
	UUID           string     `gorm:"column:uuid"`
	License        string     `gorm:"column:license"`
	LicenseEndDate time.Time  `gorm:"column:license_end_date"`
	PersonID       int64      `gorm:"column:person_id"`
	Remark         *string    `gorm:"column:remark"`
	Competition    int        `gorm:"column:competition"`
	Active         int        `gorm:"column:active"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt      *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (r memberRow) Key() int64 { return r.ID }

func newMemberRow(member domain.Member) memberRow {
	return memberRow{
		ID:             member.ID().Value(),
		UUID:           member.UUID.String(),
		License:        member.License.Number,
		LicenseEndDate: member.License.EndDate.Time(),
		PersonID:       member.Person.ID().Value(),
		Remark:         database.NullString(member.Remark),
		Competition:    database.Flag(member.Competition),
		Active:         database.Flag(member.Active),
		CreatedAt:      member.TraceableTime.CreatedAt.Time(),
		UpdatedAt:      member.TraceableTime.UpdatedAt.Ptr(),
	}
}

func (r memberRow) toDomain(person domain.Person) (domain.Member, error) {
	uuid, err := kernel.ParseUniqueID(r.UUID)
	if err != nil {
		return domain.Member{}, err
	}
	return domain.Member{
		Entity:        kernel.NewEntity(kernel.NewIntIdentifier(r.ID)),
		UUID:          uuid,
		License:       domain.License{Number: r.License, EndDate: kernel.NewDate(r.LicenseEndDate)},
		Person:        person,
		Remark:        database.StringValue(r.Remark),
		Competition:   database.IsSet(r.Competition),
		Active:        database.IsSet(r.Active),
		TraceableTime: kernel.TraceableTimeFrom(r.CreatedAt, r.UpdatedAt),
	}, nil
}

// memberQueryRow is one row of the member query: the member with its person, the
// nationality, the contact and the country of the address.
type memberQueryRow struct {
	Member      memberRow  `gorm:"embedded;embeddedPrefix:judo_members_"`
	Person      personRow  `gorm:"embedded;embeddedPrefix:persons_"`
	Nationality countryRow `gorm:"embedded;embeddedPrefix:nationality_"`
	Contact     contactRow `gorm:"embedded;embeddedPrefix:contacts_"`
	Country     countryRow `gorm:"embedded;embeddedPrefix:countries_"`
}

func (r memberQueryRow) toDomain() (domain.Member, error) {
	contact, err := r.Contact.toDomain(r.Country.toDomain())
	if err != nil {
		return domain.Member{}, err
	}
	person, err := r.Person.toDomain(r.Nationality.toDomain(), contact)
	if err != nil {
		return domain.Member{}, err
	}
	return r.Member.toDomain(person)
}

type uploadRow struct {
	ID        int64      `gorm:"column:id"`
	UUID      string     `gorm:"column:uuid"`
	Filename  string     `gorm:"column:filename"`
	Remark    string     `gorm:"column:remark"`
	Preview   int        `gorm:"column:preview"`
	UserID    int64      `gorm:"column:user_id"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (r uploadRow) Key() int64 { return r.ID }

func newUploadRow(upload domain.FileUpload) uploadRow {
	return uploadRow{
		ID:        upload.ID().Value(),
		UUID:      upload.UUID.String(),
		Filename:  upload.Filename,
		Remark:    upload.Remark,
		Preview:   database.Flag(upload.Preview),
		UserID:    upload.Owner.ID.Value(),
		CreatedAt: upload.TraceableTime.CreatedAt.Time(),
		UpdatedAt: upload.TraceableTime.UpdatedAt.Ptr(),
	}
}

type memberUploadRow struct {
	MemberID  int64     `gorm:"column:member_id"`
	ImportID  int64     `gorm:"column:import_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false"`
}
