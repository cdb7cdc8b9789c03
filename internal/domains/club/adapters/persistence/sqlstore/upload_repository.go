package sqlstore

import (
	"context"
	"time"

	"github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/domains/club/ports"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var _ ports.FileUploadRepository = (*FileUploadRepository)(nil)

// FileUploadRepository stores uploads in imports and the uploaded members in
// judo_member_imports.
type FileUploadRepository struct {
	db *database.Database
}

func NewFileUploadRepository(db *database.Database) *FileUploadRepository {
	return &FileUploadRepository{db: db}
}

func (r *FileUploadRepository) Create(ctx context.Context, upload domain.FileUpload) (domain.FileUpload, error) {
	id, err := r.db.Insert(ctx, uploadsTable.Name(), ptr(newUploadRow(upload)))
	if err != nil {
		return domain.FileUpload{}, err
	}
	upload.Entity = upload.WithID(kernel.NewIntIdentifier(id))
	return upload, nil
}

// SaveMember links the member to the upload. The license must not be linked to the
// upload yet.
func (r *FileUploadRepository) SaveMember(ctx context.Context, upload domain.FileUpload, member domain.Member) error {
	saved := database.NewQuery(r.db,
		memberUploadsTable.Select().Join(membersTable.Ref(), membersTable.Column("id")+" = "+memberUploadsTable.Column("member_id")),
		memberUploadsTable.Column("member_id"),
	).
		Where(memberUploadsTable.Column("import_id")+" = ?", upload.ID().Value()).
		Where(membersTable.Column("license")+" = ?", member.License.Number)
	count, err := saved.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return ports.ErrDuplicateMember
	}
	_, err = r.db.Insert(ctx, memberUploadsTable.Name(), &memberUploadRow{
		MemberID:  member.ID().Value(),
		ImportID:  upload.ID().Value(),
		CreatedAt: time.Now().UTC(),
	})
	return err
}
