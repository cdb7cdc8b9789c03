package application

import (
	"context"

	"github.com/fbraem/kwai/internal/domains/portal/domain"
	"github.com/fbraem/kwai/internal/domains/portal/ports"
	"github.com/fbraem/kwai/internal/shared/kernel"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

func (s *Service) GetNewsItems(ctx context.Context, command ports.GetNewsItemsCommand, p presenter.AsyncPresenter[domain.NewsItem]) error {
	query := s.news.CreateQuery()
	if command.Year > 0 {
		query = query.FilterByPublicationDate(command.Year, command.Month)
	}
	if command.Promoted {
		query = query.FilterByPromoted()
	}
	if command.Enabled {
		query = query.FilterByActive()
	}
	if command.ApplicationID > 0 {
		query = query.FilterByApplication(kernel.NewIntIdentifier(command.ApplicationID))
	}
	if command.ApplicationName != "" {
		query = query.FilterByApplicationName(command.ApplicationName)
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
	return mapError(p.Present(ctx, presenter.IterableResult[domain.NewsItem]{
		Count:    count,
		Offset:   command.Offset,
		Limit:    command.Limit,
		Iterator: s.news.GetAll(ctx, query, command.Limit, command.Offset),
	}))
}

func (s *Service) GetNewsItem(ctx context.Context, command ports.GetNewsItemCommand, p presenter.Presenter[domain.NewsItem]) error {
	if command.ID <= 0 {
		return ports.ErrNewsItemNotFound
	}
	query := s.news.CreateQuery().FilterByID(kernel.NewIntIdentifier(command.ID))
	if command.Enabled {
		query = query.FilterByActive()
	}
	item, err := s.news.Get(ctx, query)
	if err != nil {
		return mapError(err)
	}
	p.Present(item)
	return nil
}

func (s *Service) CreateNewsItem(ctx context.Context, command ports.CreateNewsItemCommand, p presenter.Presenter[domain.NewsItem]) error {
	var item domain.NewsItem
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		item, err = s.buildNewsItem(ctx, domain.NewsItem{TraceableTime: kernel.NewTraceableTime()}, command.NewsItemCommand, command.Owner)
		if err != nil {
			return err
		}
		item, err = s.news.Create(ctx, item)
		return err
	})
	if err != nil {
		return mapError(err)
	}
	p.Present(item)
	return nil
}

func (s *Service) UpdateNewsItem(ctx context.Context, command ports.UpdateNewsItemCommand, p presenter.Presenter[domain.NewsItem]) error {
	var item domain.NewsItem
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		current, err := s.newsItem(ctx, command.ID)
		if err != nil {
			return err
		}
		current.TraceableTime = current.TraceableTime.MarkForUpdate()
		if item, err = s.buildNewsItem(ctx, current, command.NewsItemCommand, command.Owner); err != nil {
			return err
		}
		return s.news.Update(ctx, item)
	})
	if err != nil {
		return mapError(err)
	}
	p.Present(item)
	return nil
}

func (s *Service) DeleteNewsItem(ctx context.Context, command ports.DeleteNewsItemCommand) error {
	return mapError(s.uow.Do(ctx, func(ctx context.Context) error {
		item, err := s.newsItem(ctx, command.ID)
		if err != nil {
			return err
		}
		return s.news.Delete(ctx, item)
	}))
}

// buildNewsItem applies command on item. A promotion end date is ignored for an item
// that is not promoted.
func (s *Service) buildNewsItem(ctx context.Context, item domain.NewsItem, command ports.NewsItemCommand, owner kernel.Owner) (domain.NewsItem, error) {
	publish, err := kernel.ParseTimestamp(command.PublishDate)
	if err != nil {
		return domain.NewsItem{}, err
	}
	end, err := kernel.ParseTimestamp(command.EndDate)
	if err != nil {
		return domain.NewsItem{}, err
	}
	if item.Period, err = kernel.NewPeriod(publish, end); err != nil {
		return domain.NewsItem{}, err
	}

	item.Promotion = domain.Promotion{Priority: command.Promotion}
	if command.Promotion > 0 {
		if item.Promotion.EndDate, err = kernel.ParseTimestamp(command.PromotionEndDate); err != nil {
			return domain.NewsItem{}, err
		}
	}

	if item.Texts, err = buildText(item.Texts, command.Texts, owner); err != nil {
		return domain.NewsItem{}, err
	}
	if item.Application, err = s.referencedApplication(ctx, command.ApplicationID); err != nil {
		return domain.NewsItem{}, err
	}
	item.Enabled = command.Enabled
	item.Remark = command.Remark

	if err := item.Validate(); err != nil {
		return domain.NewsItem{}, err
	}
	return item, nil
}

func (s *Service) newsItem(ctx context.Context, id int64) (domain.NewsItem, error) {
	if id <= 0 {
		return domain.NewsItem{}, ports.ErrNewsItemNotFound
	}
	return s.news.Get(ctx, s.news.CreateQuery().FilterByID(kernel.NewIntIdentifier(id)))
}
