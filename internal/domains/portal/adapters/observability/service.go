// Package observability decorates the portal use cases with tracing, logging and metrics.
package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fbraem/kwai/internal/domains/portal/domain"
	"github.com/fbraem/kwai/internal/domains/portal/ports"
	"github.com/fbraem/kwai/internal/platform/observability"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

const tracerName = "github.com/fbraem/kwai/internal/domains/portal"

type Service struct {
	inner ports.Service
	obs   *observability.Decorator
}

func New(inner ports.Service, opts ...observability.Option) ports.Service {
	return &Service{inner: inner, obs: observability.NewDecorator("portal", opts...)}
}

// Instrumented decorates inner with the process instruments.
func Instrumented(inner ports.Service, instruments *observability.Instruments) ports.Service {
	return New(inner, observability.WithInstruments(instruments, tracerName))
}

func (s *Service) GetApplications(ctx context.Context, command ports.GetApplicationsCommand, p presenter.AsyncPresenter[domain.Application]) error {
	return s.obs.Run(ctx, "Service.GetApplications", func(ctx context.Context) error {
		return s.inner.GetApplications(ctx, command, p)
	}, attribute.String("application.name", command.Name))
}

func (s *Service) GetApplication(ctx context.Context, command ports.GetApplicationCommand, p presenter.Presenter[domain.Application]) error {
	return s.obs.Run(ctx, "Service.GetApplication", func(ctx context.Context) error {
		return s.inner.GetApplication(ctx, command, p)
	}, attribute.Int64("application.id", command.ID))
}

func (s *Service) UpdateApplication(ctx context.Context, command ports.UpdateApplicationCommand, p presenter.Presenter[domain.Application]) error {
	return s.obs.Run(ctx, "Service.UpdateApplication", func(ctx context.Context) error {
		return s.inner.UpdateApplication(ctx, command, p)
	}, attribute.Int64("application.id", command.ID))
}

func (s *Service) GetNewsItems(ctx context.Context, command ports.GetNewsItemsCommand, p presenter.AsyncPresenter[domain.NewsItem]) error {
	return s.obs.Run(ctx, "Service.GetNewsItems", func(ctx context.Context) error {
		return s.inner.GetNewsItems(ctx, command, p)
	},
		attribute.Int("limit", command.Limit),
		attribute.Int("offset", command.Offset),
		attribute.Bool("promoted", command.Promoted),
		attribute.Bool("enabled", command.Enabled),
		attribute.Int64("application.id", command.ApplicationID),
	)
}

func (s *Service) GetNewsItem(ctx context.Context, command ports.GetNewsItemCommand, p presenter.Presenter[domain.NewsItem]) error {
	return s.obs.Run(ctx, "Service.GetNewsItem", func(ctx context.Context) error {
		return s.inner.GetNewsItem(ctx, command, p)
	}, attribute.Int64("news_item.id", command.ID))
}

func (s *Service) CreateNewsItem(ctx context.Context, command ports.CreateNewsItemCommand, p presenter.Presenter[domain.NewsItem]) error {
	err := s.obs.Run(ctx, "Service.CreateNewsItem", func(ctx context.Context) error {
		return s.inner.CreateNewsItem(ctx, command, p)
	}, attribute.Int64("application.id", command.ApplicationID), attribute.Int64("user.id", command.Owner.ID.Value()))
	if err == nil {
		s.obs.Count(ctx, "news_items.created", 1)
	}
	return err
}

func (s *Service) UpdateNewsItem(ctx context.Context, command ports.UpdateNewsItemCommand, p presenter.Presenter[domain.NewsItem]) error {
	return s.obs.Run(ctx, "Service.UpdateNewsItem", func(ctx context.Context) error {
		return s.inner.UpdateNewsItem(ctx, command, p)
	}, attribute.Int64("news_item.id", command.ID), attribute.Int64("user.id", command.Owner.ID.Value()))
}

func (s *Service) DeleteNewsItem(ctx context.Context, command ports.DeleteNewsItemCommand) error {
	err := s.obs.Run(ctx, "Service.DeleteNewsItem", func(ctx context.Context) error {
		return s.inner.DeleteNewsItem(ctx, command)
	}, attribute.Int64("news_item.id", command.ID))
	if err == nil {
		s.obs.Count(ctx, "news_items.deleted", 1)
	}
	return err
}

func (s *Service) GetPages(ctx context.Context, command ports.GetPagesCommand, p presenter.AsyncPresenter[domain.Page]) error {
	return s.obs.Run(ctx, "Service.GetPages", func(ctx context.Context) error {
		return s.inner.GetPages(ctx, command, p)
	}, attribute.Int("limit", command.Limit), attribute.Int("offset", command.Offset), attribute.Bool("enabled", command.Enabled))
}

func (s *Service) GetPage(ctx context.Context, command ports.GetPageCommand, p presenter.Presenter[domain.Page]) error {
	return s.obs.Run(ctx, "Service.GetPage", func(ctx context.Context) error {
		return s.inner.GetPage(ctx, command, p)
	}, attribute.Int64("page.id", command.ID))
}

func (s *Service) CreatePage(ctx context.Context, command ports.CreatePageCommand, p presenter.Presenter[domain.Page]) error {
	err := s.obs.Run(ctx, "Service.CreatePage", func(ctx context.Context) error {
		return s.inner.CreatePage(ctx, command, p)
	}, attribute.Int64("application.id", command.ApplicationID), attribute.Int64("user.id", command.Owner.ID.Value()))
	if err == nil {
		s.obs.Count(ctx, "pages.created", 1)
	}
	return err
}

func (s *Service) UpdatePage(ctx context.Context, command ports.UpdatePageCommand, p presenter.Presenter[domain.Page]) error {
	return s.obs.Run(ctx, "Service.UpdatePage", func(ctx context.Context) error {
		return s.inner.UpdatePage(ctx, command, p)
	}, attribute.Int64("page.id", command.ID), attribute.Int64("user.id", command.Owner.ID.Value()))
}

func (s *Service) DeletePage(ctx context.Context, command ports.DeletePageCommand) error {
	err := s.obs.Run(ctx, "Service.DeletePage", func(ctx context.Context) error {
		return s.inner.DeletePage(ctx, command)
	}, attribute.Int64("page.id", command.ID))
	if err == nil {
		s.obs.Count(ctx, "pages.deleted", 1)
	}
	return err
}

func (s *Service) GetAuthors(ctx context.Context, command ports.GetAuthorsCommand, p presenter.AsyncPresenter[domain.Author]) error {
	return s.obs.Run(ctx, "Service.GetAuthors", func(ctx context.Context) error {
		return s.inner.GetAuthors(ctx, command, p)
	}, attribute.Int("limit", command.Limit), attribute.Int("offset", command.Offset))
}
