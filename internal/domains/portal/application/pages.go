package application

import (
	"context"

	"github.com/fbraem/kwai/internal/domains/portal/domain"
	"github.com/fbraem/kwai/internal/domains/portal/ports"
	"github.com/fbraem/kwai/internal/shared/kernel"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

func (s *Service) GetPages(ctx context.Context, command ports.GetPagesCommand, p presenter.AsyncPresenter[domain.Page]) error {
	query := s.pages.CreateQuery()
	if command.ApplicationID > 0 {
		query = query.FilterByApplication(kernel.NewIntIdentifier(command.ApplicationID))
	}
	if command.Enabled {
		query = query.FilterByActive()
	}
	uuid, ok, err := parseUserUUID(command.UserUUID)
	if err != nil {
		return mapError(err)
	}
	if ok {
		query = query.FilterByUser(uuid)
	}
	count, err := query.Count(ctx)
	if err != nil {
		return mapError(err)
	}
	return mapError(p.Present(ctx, presenter.IterableResult[domain.Page]{
		Count:    count,
		Offset:   command.Offset,
		Limit:    command.Limit,
		Iterator: s.pages.GetAll(ctx, query, command.Limit, command.Offset),
	}))
}

func (s *Service) GetPage(ctx context.Context, command ports.GetPageCommand, p presenter.Presenter[domain.Page]) error {
	if command.ID <= 0 {
		return ports.ErrPageNotFound
	}
	query := s.pages.CreateQuery().FilterByID(kernel.NewIntIdentifier(command.ID))
	if command.Enabled {
		query = query.FilterByActive()
	}
	page, err := s.pages.Get(ctx, query)
	if err != nil {
		return mapError(err)
	}
	p.Present(page)
	return nil
}

func (s *Service) CreatePage(ctx context.Context, command ports.CreatePageCommand, p presenter.Presenter[domain.Page]) error {
	var page domain.Page
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		page, err = s.buildPage(ctx, domain.Page{TraceableTime: kernel.NewTraceableTime()}, command.PageCommand, command.Owner)
		if err != nil {
			return err
		}
		page, err = s.pages.Create(ctx, page)
		return err
	})
	if err != nil {
		return mapError(err)
	}
	p.Present(page)
	return nil
}

func (s *Service) UpdatePage(ctx context.Context, command ports.UpdatePageCommand, p presenter.Presenter[domain.Page]) error {
	var page domain.Page
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		current, err := s.page(ctx, command.ID)
		if err != nil {
			return err
		}
		current.TraceableTime = current.TraceableTime.MarkForUpdate()
		if page, err = s.buildPage(ctx, current, command.PageCommand, command.Owner); err != nil {
			return err
		}
		return s.pages.Update(ctx, page)
	})
	if err != nil {
		return mapError(err)
	}
	p.Present(page)
	return nil
}

func (s *Service) DeletePage(ctx context.Context, command ports.DeletePageCommand) error {
	return mapError(s.uow.Do(ctx, func(ctx context.Context) error {
		page, err := s.page(ctx, command.ID)
		if err != nil {
			return err
		}
		return s.pages.Delete(ctx, page)
	}))
}

func (s *Service) buildPage(ctx context.Context, page domain.Page, command ports.PageCommand, owner kernel.Owner) (domain.Page, error) {
	var err error
	if page.Texts, err = buildText(page.Texts, command.Texts, owner); err != nil {
		return domain.Page{}, err
	}
	if page.Application, err = s.referencedApplication(ctx, command.ApplicationID); err != nil {
		return domain.Page{}, err
	}
	page.Enabled = command.Enabled
	page.Priority = command.Priority
	page.Remark = command.Remark
	if err := page.Validate(); err != nil {
		return domain.Page{}, err
	}
	return page, nil
}

func (s *Service) page(ctx context.Context, id int64) (domain.Page, error) {
	if id <= 0 {
		return domain.Page{}, ports.ErrPageNotFound
	}
	return s.pages.Get(ctx, s.pages.CreateQuery().FilterByID(kernel.NewIntIdentifier(id)))
}
