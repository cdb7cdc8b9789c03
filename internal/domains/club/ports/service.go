package ports

import (
	"context"
	"io"

	"github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/shared/kernel"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

// GetMembersCommand is the input of GetMembers.
type GetMembersCommand struct {
	Limit  int
	Offset int
	// Active restricts the result to active members.
	Active          bool
	LicenseEndMonth int
	// LicenseEndYear defaults to the current year when only a month is given.
	LicenseEndYear int
}

// GetMemberCommand is the input of GetMember.
type GetMemberCommand struct {
	UUID string
}

// ImportMembersCommand is the input of ImportMembers.
type ImportMembersCommand struct {
	Filename string
	Content  io.Reader
	Owner    kernel.Owner
	Preview  bool
}

// MemberImportResult is presented for every imported row.
type MemberImportResult struct {
	Upload  domain.FileUpload
	Row     int
	Member  *domain.Member
	Message string
}

// Failed reports whether the row could not be imported.
func (r MemberImportResult) Failed() bool { return r.Member == nil }

// Service defines the club use cases exposed to adapters.
type Service interface {
	GetMembers(ctx context.Context, command GetMembersCommand, p presenter.AsyncPresenter[domain.Member]) error
	GetMember(ctx context.Context, command GetMemberCommand, p presenter.Presenter[domain.Member]) error
	ImportMembers(ctx context.Context, command ImportMembersCommand, p presenter.Presenter[MemberImportResult]) error
}
