package ports

import (
	"context"
	"fmt"
	"iter"

	"github.com/fbraem/kwai/internal/domains/portal/domain"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	ErrApplicationNotFound = fmt.Errorf("application %w", kernel.ErrNotFound)
	ErrNewsItemNotFound    = fmt.Errorf("news item %w", kernel.ErrNotFound)
	ErrPageNotFound        = fmt.Errorf("page %w", kernel.ErrNotFound)
	ErrAuthorNotFound      = fmt.Errorf("author %w", kernel.ErrNotFound)
)

// ApplicationQuery selects applications, ordered by weight and title.
type ApplicationQuery interface {
	FilterByID(id domain.ApplicationIdentifier) ApplicationQuery
	FilterByName(name string) ApplicationQuery
	FilterOnlyNews() ApplicationQuery
	FilterOnlyPages() ApplicationQuery
	FilterOnlyEvents() ApplicationQuery
	Count(ctx context.Context) (int, error)
}

type ApplicationRepository interface {
	CreateQuery() ApplicationQuery
	Get(ctx context.Context, query ApplicationQuery) (domain.Application, error)
	GetAll(ctx context.Context, query ApplicationQuery, limit, offset int) iter.Seq2[domain.Application, error]
	Update(ctx context.Context, application domain.Application) error
}

// NewsItemQuery selects news items. The newest publication comes first unless
// FilterByPromoted is applied: then the highest promotion comes first.
type NewsItemQuery interface {
	FilterByID(id domain.NewsItemIdentifier) NewsItemQuery
	// FilterByPublicationDate keeps the items published in year, or in month of year
	// when month is not 0.
	FilterByPublicationDate(year, month int) NewsItemQuery
	// FilterByPromoted keeps the items with a promotion that has not ended.
	FilterByPromoted() NewsItemQuery
	FilterByApplication(id domain.ApplicationIdentifier) NewsItemQuery
	FilterByApplicationName(name string) NewsItemQuery
	// FilterByActive keeps the enabled items that are published and not yet expired.
	FilterByActive() NewsItemQuery
	// FilterByUser keeps the items with a text written by the user.
	FilterByUser(uuid kernel.UniqueID) NewsItemQuery
	Count(ctx context.Context) (int, error)
}

type NewsItemRepository interface {
	CreateQuery() NewsItemQuery
	Get(ctx context.Context, query NewsItemQuery) (domain.NewsItem, error)
	GetAll(ctx context.Context, query NewsItemQuery, limit, offset int) iter.Seq2[domain.NewsItem, error]
	Create(ctx context.Context, item domain.NewsItem) (domain.NewsItem, error)
	Update(ctx context.Context, item domain.NewsItem) error
	Delete(ctx context.Context, item domain.NewsItem) error
}

// PageQuery selects pages, ordered by priority (highest first).
type PageQuery interface {
	FilterByID(id domain.PageIdentifier) PageQuery
	FilterByApplication(id domain.ApplicationIdentifier) PageQuery
	FilterByApplicationName(name string) PageQuery
	FilterByActive() PageQuery
	FilterByUser(uuid kernel.UniqueID) PageQuery
	Count(ctx context.Context) (int, error)
}

type PageRepository interface {
	CreateQuery() PageQuery
	Get(ctx context.Context, query PageQuery) (domain.Page, error)
	GetAll(ctx context.Context, query PageQuery, limit, offset int) iter.Seq2[domain.Page, error]
	Create(ctx context.Context, page domain.Page) (domain.Page, error)
	Update(ctx context.Context, page domain.Page) error
	Delete(ctx context.Context, page domain.Page) error
}

type AuthorQuery interface {
	FilterByID(id domain.AuthorIdentifier) AuthorQuery
	FilterByUUID(uuid kernel.UniqueID) AuthorQuery
	Count(ctx context.Context) (int, error)
}

type AuthorRepository interface {
	CreateQuery() AuthorQuery
	Get(ctx context.Context, query AuthorQuery) (domain.Author, error)
	GetAll(ctx context.Context, query AuthorQuery, limit, offset int) iter.Seq2[domain.Author, error]
}
