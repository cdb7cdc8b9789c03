package ports

import (
	"context"
	"fmt"
	"iter"

	"github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	ErrMemberNotFound  = fmt.Errorf("member %w", kernel.ErrNotFound)
	ErrCountryNotFound = fmt.Errorf("country %w", kernel.ErrNotFound)
	// ErrDuplicateMember is returned when the same license appears twice in one upload.
	ErrDuplicateMember = fmt.Errorf("%w: member already uploaded", kernel.ErrDuplicate)
)

// MemberQuery selects members. Every filter returns a new query.
type MemberQuery interface {
	FilterByID(id domain.MemberIdentifier) MemberQuery
	FilterByUUID(uuid kernel.UniqueID) MemberQuery
	FilterByLicense(license string) MemberQuery
	// FilterByLicenseDate keeps members whose license ends in the given month of year.
	FilterByLicenseDate(month, year int) MemberQuery
	FilterByActive() MemberQuery
	Count(ctx context.Context) (int, error)
}

// MemberRepository stores members with their person, contact and nationality.
type MemberRepository interface {
	CreateQuery() MemberQuery
	// Get returns the first member of query or ErrMemberNotFound.
	Get(ctx context.Context, query MemberQuery) (domain.Member, error)
	GetAll(ctx context.Context, query MemberQuery, limit, offset int) iter.Seq2[domain.Member, error]
	Create(ctx context.Context, member domain.Member) (domain.Member, error)
	Update(ctx context.Context, member domain.Member) error
	Delete(ctx context.Context, member domain.Member) error
	// ActivateMembers activates all members saved with the upload.
	ActivateMembers(ctx context.Context, upload domain.FileUpload) error
	// DeactivateMembers deactivates all members not saved with the upload.
	DeactivateMembers(ctx context.Context, upload domain.FileUpload) error
}

// CountryRepository gives access to the known countries.
type CountryRepository interface {
	GetByISO2(ctx context.Context, iso2 string) (domain.Country, error)
	Create(ctx context.Context, country domain.Country) (domain.Country, error)
	Delete(ctx context.Context, country domain.Country) error
}

// FileUploadRepository registers uploads and the members they contain.
type FileUploadRepository interface {
	Create(ctx context.Context, upload domain.FileUpload) (domain.FileUpload, error)
	// SaveMember links member to upload. A license can only be saved once per upload
	// (ErrDuplicateMember).
	SaveMember(ctx context.Context, upload domain.FileUpload, member domain.Member) error
}
