package ports

import (
	"context"
	"io"
	"iter"

	"github.com/fbraem/kwai/internal/domains/club/domain"
)

// ImportResult is the outcome of importing one row. Either Member or Message is set.
type ImportResult struct {
	Row     int
	Member  *domain.Member
	Message string
}

// MemberImporter reads members from an uploaded file.
type MemberImporter interface {
	Import(ctx context.Context, r io.Reader) iter.Seq[ImportResult]
}

// UploadStore keeps the uploaded files.
type UploadStore interface {
	// Save stores the content under name and returns its location.
	Save(ctx context.Context, name string, content io.Reader) (string, error)
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}
