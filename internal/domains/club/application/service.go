package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/domains/club/ports"
	"github.com/fbraem/kwai/internal/shared/kernel"
	"github.com/fbraem/kwai/internal/shared/presenter"
	"github.com/fbraem/kwai/internal/shared/uow"
)

var _ ports.Service = (*Service)(nil)

// Service orchestrates the club use cases.
type Service struct {
	members  ports.MemberRepository
	uploads  ports.FileUploadRepository
	importer ports.MemberImporter
	store    ports.UploadStore
	uow      uow.UnitOfWork
	now      func() time.Time
}

// NewService wires the club service. The unit of work is used by imports and must
// commit the rows imported before a failure.
func NewService(
	members ports.MemberRepository,
	uploads ports.FileUploadRepository,
	importer ports.MemberImporter,
	store ports.UploadStore,
	unitOfWork uow.UnitOfWork,
) *Service {
	return &Service{
		members:  members,
		uploads:  uploads,
		importer: importer,
		store:    store,
		uow:      unitOfWork,
		now:      time.Now,
	}
}

// GetMembers presents a page of members.
func (s *Service) GetMembers(ctx context.Context, command ports.GetMembersCommand, p presenter.AsyncPresenter[domain.Member]) error {
	query := s.members.CreateQuery()
	if command.Active {
		query = query.FilterByActive()
	}
	if command.LicenseEndMonth != 0 {
		if command.LicenseEndMonth < 1 || command.LicenseEndMonth > 12 {
			return fmt.Errorf("%w: license end month must be between 1 and 12", ErrInvalidInput)
		}
		year := command.LicenseEndYear
		if year == 0 {
			year = s.now().Year()
		}
		query = query.FilterByLicenseDate(command.LicenseEndMonth, year)
	}
	count, err := query.Count(ctx)
	if err != nil {
		return mapError(err)
	}
	return mapError(p.Present(ctx, presenter.IterableResult[domain.Member]{
		Count:    count,
		Offset:   command.Offset,
		Limit:    command.Limit,
		Iterator: s.members.GetAll(ctx, query, command.Limit, command.Offset),
	}))
}

// GetMember presents the member with the given uuid.
func (s *Service) GetMember(ctx context.Context, command ports.GetMemberCommand, p presenter.Presenter[domain.Member]) error {
	uuid, err := kernel.ParseUniqueID(command.UUID)
	if err != nil {
		return mapError(err)
	}
	member, err := s.members.Get(ctx, s.members.CreateQuery().FilterByUUID(uuid))
	if err != nil {
		return mapError(err)
	}
	p.Present(member)
	return nil
}

// ImportMembers stores the uploaded file and imports its members. Every row is
// presented, failed rows carry a message. Existing members (same license) are
// updated. Unless previewing, the imported members are activated and all other
// members deactivated.
func (s *Service) ImportMembers(ctx context.Context, command ports.ImportMembersCommand, p presenter.Presenter[ports.MemberImportResult]) error {
	content, err := io.ReadAll(command.Content)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	location, err := s.store.Save(ctx, command.Filename, bytes.NewReader(content))
	if err != nil {
		return err
	}
	return mapError(s.uow.Do(ctx, func(ctx context.Context) error {
		upload, err := s.uploads.Create(ctx, domain.NewFileUpload(location, command.Owner, command.Preview))
		if err != nil {
			return err
		}
		seen := make(map[string]struct{})
		for result := range s.importer.Import(ctx, bytes.NewReader(content)) {
			row := ports.MemberImportResult{Upload: upload, Row: result.Row, Message: result.Message}
			if result.Member == nil {
				p.Present(row)
				continue
			}
			license := result.Member.License.Number
			if _, ok := seen[license]; ok {
				row.Message = ports.ErrDuplicateMember.Error()
				p.Present(row)
				continue
			}
			seen[license] = struct{}{}

			member, err := s.importMember(ctx, upload, *result.Member)
			if errors.Is(err, ports.ErrDuplicateMember) {
				row.Message = err.Error()
				p.Present(row)
				continue
			}
			if err != nil {
				return err
			}
			row.Member = &member
			p.Present(row)
		}
		if upload.Preview {
			return nil
		}
		if err := s.members.ActivateMembers(ctx, upload); err != nil {
			return err
		}
		return s.members.DeactivateMembers(ctx, upload)
	}))
}

func (s *Service) importMember(ctx context.Context, upload domain.FileUpload, imported domain.Member) (domain.Member, error) {
	existing, err := s.members.Get(ctx, s.members.CreateQuery().FilterByLicense(imported.License.Number))
	switch {
	case err == nil:
		member := existing.MergeImported(imported)
		if upload.Preview {
			return member, nil
		}
		if err := s.uploads.SaveMember(ctx, upload, member); err != nil {
			return domain.Member{}, err
		}
		return member, s.members.Update(ctx, member)
	case errors.Is(err, ports.ErrMemberNotFound):
		if upload.Preview {
			return imported, nil
		}
		member, err := s.members.Create(ctx, imported)
		if err != nil {
			return domain.Member{}, err
		}
		return member, s.uploads.SaveMember(ctx, upload, member)
	default:
		return domain.Member{}, err
	}
}
