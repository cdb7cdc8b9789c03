// Package application implements the use cases of the portal.
package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/fbraem/kwai/internal/domains/portal/domain"
	"github.com/fbraem/kwai/internal/domains/portal/ports"
	"github.com/fbraem/kwai/internal/shared/kernel"
	"github.com/fbraem/kwai/internal/shared/presenter"
	"github.com/fbraem/kwai/internal/shared/uow"
)

var _ ports.Service = (*Service)(nil)

type Service struct {
	applications ports.ApplicationRepository
	news         ports.NewsItemRepository
	pages        ports.PageRepository
	authors      ports.AuthorRepository
	uow          uow.UnitOfWork
}

func NewService(
	applications ports.ApplicationRepository,
	news ports.NewsItemRepository,
	pages ports.PageRepository,
	authors ports.AuthorRepository,
	unitOfWork uow.UnitOfWork,
) *Service {
	return &Service{applications: applications, news: news, pages: pages, authors: authors, uow: unitOfWork}
}

func (s *Service) GetApplications(ctx context.Context, command ports.GetApplicationsCommand, p presenter.AsyncPresenter[domain.Application]) error {
	query := s.applications.CreateQuery()
	if command.Name != "" {
		query = query.FilterByName(command.Name)
	}
	if command.News {
		query = query.FilterOnlyNews()
	}
	if command.Pages {
		query = query.FilterOnlyPages()
	}
	if command.Events {
		query = query.FilterOnlyEvents()
	}
	count, err := query.Count(ctx)
	if err != nil {
		return mapError(err)
	}
	return mapError(p.Present(ctx, presenter.IterableResult[domain.Application]{
		Count:    count,
		Iterator: s.applications.GetAll(ctx, query, 0, 0),
	}))
}

func (s *Service) GetApplication(ctx context.Context, command ports.GetApplicationCommand, p presenter.Presenter[domain.Application]) error {
	application, err := s.application(ctx, command.ID)
	if err != nil {
		return mapError(err)
	}
	p.Present(application)
	return nil
}

func (s *Service) UpdateApplication(ctx context.Context, command ports.UpdateApplicationCommand, p presenter.Presenter[domain.Application]) error {
	var application domain.Application
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		current, err := s.application(ctx, command.ID)
		if err != nil {
			return err
		}
		application = kernel.Replace(current, func(a *domain.Application) {
			a.Title = command.Title
			a.ShortDescription = command.ShortDescription
			a.Description = command.Description
			a.Remark = command.Remark
			a.Weight = command.Weight
			a.CanContainNews = command.News
			a.CanContainPages = command.Pages
			a.CanContainEvents = command.Events
			a.TraceableTime = a.TraceableTime.MarkForUpdate()
		})
		if err := application.Validate(); err != nil {
			return err
		}
		return s.applications.Update(ctx, application)
	})
	if err != nil {
		return mapError(err)
	}
	p.Present(application)
	return nil
}

func (s *Service) GetAuthors(ctx context.Context, command ports.GetAuthorsCommand, p presenter.AsyncPresenter[domain.Author]) error {
	query := s.authors.CreateQuery()
	count, err := query.Count(ctx)
	if err != nil {
		return mapError(err)
	}
	return mapError(p.Present(ctx, presenter.IterableResult[domain.Author]{
		Count:    count,
		Offset:   command.Offset,
		Limit:    command.Limit,
		Iterator: s.authors.GetAll(ctx, query, command.Limit, command.Offset),
	}))
}

func (s *Service) application(ctx context.Context, id int64) (domain.Application, error) {
	if id <= 0 {
		return domain.Application{}, ports.ErrApplicationNotFound
	}
	return s.applications.Get(ctx, s.applications.CreateQuery().FilterByID(kernel.NewIntIdentifier(id)))
}

// referencedApplication loads the application a news item or page refers to. An
// unknown application is invalid input.
func (s *Service) referencedApplication(ctx context.Context, id int64) (domain.Application, error) {
	application, err := s.application(ctx, id)
	if errors.Is(err, ports.ErrApplicationNotFound) {
		return domain.Application{}, fmt.Errorf("%w: application %d does not exist", ErrInvalidInput, id)
	}
	return application, err
}

// buildText converts the commands to translations written by author. A translation
// that replaces an existing locale keeps its creation time.
func buildText(current kernel.Text, commands []ports.TextCommand, author kernel.Owner) (kernel.Text, error) {
	translations := make([]kernel.LocaleText, 0, len(commands))
	for _, command := range commands {
		locale, err := kernel.ParseLocale(command.Locale)
		if err != nil {
			return kernel.Text{}, err
		}
		format, err := kernel.ParseDocumentFormat(command.Format)
		if err != nil {
			return kernel.Text{}, err
		}
		translation := kernel.LocaleText{
			Locale:        locale,
			Format:        format,
			Title:         command.Title,
			Summary:       command.Summary,
			Content:       command.Content,
			Author:        author,
			TraceableTime: kernel.NewTraceableTime(),
		}
		if existing, ok := current.Translation(locale); ok {
			translation.TraceableTime = existing.TraceableTime.MarkForUpdate()
		}
		translations = append(translations, translation)
	}
	return kernel.NewText(translations...), nil
}

func parseUserUUID(raw string) (kernel.UniqueID, bool, error) {
	if raw == "" {
		return kernel.UniqueID{}, false, nil
	}
	uuid, err := kernel.ParseUniqueID(raw)
	if err != nil {
		return kernel.UniqueID{}, false, err
	}
	return uuid, true, nil
}
