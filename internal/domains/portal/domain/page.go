package domain

import (
	"fmt"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

type PageIdentifier = kernel.IntIdentifier

// Page is static content of an application. Pages with a higher priority come first.
type Page struct {
	kernel.Entity[PageIdentifier]
	Enabled       bool
	Application   Application
	Texts         kernel.Text
	Priority      int
	Remark        string
	TraceableTime kernel.TraceableTime
}

func (p Page) Validate() error {
	if p.Texts.Len() == 0 {
		return ErrTextRequired
	}
	if p.Application.ID().IsEmpty() {
		return fmt.Errorf("%w: a page needs an application", kernel.ErrValidation)
	}
	if !p.Application.CanContainPages {
		return fmt.Errorf("%w: application %s can't contain pages", kernel.ErrValidation, p.Application.Name)
	}
	return nil
}
