package domain

import "github.com/fbraem/kwai/internal/shared/kernel"

// AuthorIdentifier is the id of the user account of the author.
type AuthorIdentifier = kernel.IntIdentifier

// Author is a user that is allowed to write portal content.
type Author struct {
	kernel.Entity[AuthorIdentifier]
	UUID          kernel.UniqueID
	Name          string
	Remark        string
	Active        bool
	TraceableTime kernel.TraceableTime
}
