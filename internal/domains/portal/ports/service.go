package ports

import (
	"context"

	"github.com/fbraem/kwai/internal/domains/portal/domain"
	"github.com/fbraem/kwai/internal/shared/kernel"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

type GetApplicationsCommand struct {
	Name   string
	News   bool
	Pages  bool
	Events bool
}

type GetApplicationCommand struct {
	ID int64
}

// UpdateApplicationCommand changes everything of an application except its name.
type UpdateApplicationCommand struct {
	ID               int64
	Title            string
	ShortDescription string
	Description      string
	Remark           string
	Weight           int
	News             bool
	Pages            bool
	Events           bool
}

type TextCommand struct {
	Locale  string
	Format  string
	Title   string
	Summary string
	Content string
}

// GetNewsItemsCommand selects a page of news items. Zero values disable a filter.
type GetNewsItemsCommand struct {
	Limit           int
	Offset          int
	Year            int
	Month           int
	Promoted        bool
	Enabled         bool
	ApplicationID   int64
	ApplicationName string
	UserUUID        string
}

// GetNewsItemCommand reads one news item. With Enabled set, an item that is not
// published is not found.
type GetNewsItemCommand struct {
	ID      int64
	Enabled bool
}

// NewsItemCommand holds the fields of a news item. Dates use the timestamp layout; an
// empty end means the item never expires.
type NewsItemCommand struct {
	Enabled          bool
	Texts            []TextCommand
	ApplicationID    int64
	PublishDate      string
	EndDate          string
	Promotion        int
	PromotionEndDate string
	Remark           string
}

type CreateNewsItemCommand struct {
	NewsItemCommand
	Owner kernel.Owner
}

type UpdateNewsItemCommand struct {
	ID int64
	NewsItemCommand
	Owner kernel.Owner
}

type DeleteNewsItemCommand struct {
	ID int64
}

type GetPagesCommand struct {
	Limit         int
	Offset        int
	ApplicationID int64
	Enabled       bool
	UserUUID      string
}

type GetPageCommand struct {
	ID      int64
	Enabled bool
}

type PageCommand struct {
	Enabled       bool
	Texts         []TextCommand
	ApplicationID int64
	Priority      int
	Remark        string
}

type CreatePageCommand struct {
	PageCommand
	Owner kernel.Owner
}

type UpdatePageCommand struct {
	ID int64
	PageCommand
	Owner kernel.Owner
}

type DeletePageCommand struct {
	ID int64
}

type GetAuthorsCommand struct {
	Limit  int
	Offset int
}

// Service exposes the use cases of the portal.
type Service interface {
	GetApplications(ctx context.Context, command GetApplicationsCommand, p presenter.AsyncPresenter[domain.Application]) error
	GetApplication(ctx context.Context, command GetApplicationCommand, p presenter.Presenter[domain.Application]) error
	UpdateApplication(ctx context.Context, command UpdateApplicationCommand, p presenter.Presenter[domain.Application]) error

	GetNewsItems(ctx context.Context, command GetNewsItemsCommand, p presenter.AsyncPresenter[domain.NewsItem]) error
	GetNewsItem(ctx context.Context, command GetNewsItemCommand, p presenter.Presenter[domain.NewsItem]) error
	CreateNewsItem(ctx context.Context, command CreateNewsItemCommand, p presenter.Presenter[domain.NewsItem]) error
	UpdateNewsItem(ctx context.Context, command UpdateNewsItemCommand, p presenter.Presenter[domain.NewsItem]) error
	DeleteNewsItem(ctx context.Context, command DeleteNewsItemCommand) error

	GetPages(ctx context.Context, command GetPagesCommand, p presenter.AsyncPresenter[domain.Page]) error
	GetPage(ctx context.Context, command GetPageCommand, p presenter.Presenter[domain.Page]) error
	CreatePage(ctx context.Context, command CreatePageCommand, p presenter.Presenter[domain.Page]) error
	UpdatePage(ctx context.Context, command UpdatePageCommand, p presenter.Presenter[domain.Page]) error
	DeletePage(ctx context.Context, command DeletePageCommand) error

	GetAuthors(ctx context.Context, command GetAuthorsCommand, p presenter.AsyncPresenter[domain.Author]) error
}
