package domain

import (
	"fmt"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

type NewsItemIdentifier = kernel.IntIdentifier

// ErrTextRequired is returned for a news item or page without any text.
var ErrTextRequired = fmt.Errorf("%w: at least one text is required", kernel.ErrValidation)

// Promotion puts a news item on the front page. A priority of 0 means the item is not
// promoted. An empty end date promotes the item forever.
type Promotion struct {
	Priority int
	EndDate  kernel.Timestamp
}

// IsActive reports whether the promotion still applies at now.
func (p Promotion) IsActive(now kernel.Timestamp) bool {
	if p.Priority <= 0 {
		return false
	}
	return p.EndDate.IsEmpty() || now.Before(p.EndDate)
}

// NewsItem is a story published within an application. The period holds the publish
// date and the optional end of publication.
type NewsItem struct {
	kernel.Entity[NewsItemIdentifier]
	Enabled       bool
	Promotion     Promotion
	Period        kernel.Period
	Application   Application
	Texts         kernel.Text
	Remark        string
	TraceableTime kernel.TraceableTime
}

// IsPublished reports whether an enabled item is visible at now.
func (n NewsItem) IsPublished(now kernel.Timestamp) bool {
	return n.Enabled && n.Period.Contains(now)
}

func (n NewsItem) Validate() error {
	if n.Texts.Len() == 0 {
		return ErrTextRequired
	}
	if n.Application.ID().IsEmpty() {
		return fmt.Errorf("%w: a news item needs an application", kernel.ErrValidation)
	}
	if !n.Application.CanContainNews {
		return fmt.Errorf("%w: application %s can't contain news", kernel.ErrValidation, n.Application.Name)
	}
	if n.Promotion.Priority < 0 {
		return fmt.Errorf("%w: promotion priority can't be negative", kernel.ErrValidation)
	}
	return nil
}
