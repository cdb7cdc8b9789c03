// Package domain holds the entities of the portal: applications, news items, pages and authors.
package domain

import (
	"fmt"
	"strings"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

type ApplicationIdentifier = kernel.IntIdentifier

// Application groups content of the portal. Its name is unique and can't be changed.
type Application struct {
	kernel.Entity[ApplicationIdentifier]
	Title            string
	Name             string
	ShortDescription string
	Description      string
	Remark           string
	CanContainNews   bool
	CanContainPages  bool
	CanContainEvents bool
	Weight           int
	TraceableTime    kernel.TraceableTime
}

func (a Application) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: an application needs a title", kernel.ErrValidation)
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: an application needs a name", kernel.ErrValidation)
	}
	return nil
}
