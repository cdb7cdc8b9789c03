// Package storage keeps uploaded files on the local filesystem or in an S3 bucket.
package storage

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a stored file does not exist.
var ErrNotFound = errors.New("stored file not found")

// objectName builds a unique, date partitioned name: 2024/06/<uuid>-members.csv.
func objectName(now time.Time, name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" {
		base = "upload"
	}
	return fmt.Sprintf("%04d/%02d/%s-%s", now.Year(), now.Month(), uuid.NewString(), base)
}
