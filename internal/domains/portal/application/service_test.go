package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/domains/portal/adapters/persistence/sqlstore"
	"github.com/fbraem/kwai/internal/domains/portal/application"
	"github.com/fbraem/kwai/internal/domains/portal/domain"
	"github.com/fbraem/kwai/internal/domains/portal/ports"
	"github.com/fbraem/kwai/internal/domains/portal/portaltest"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/platform/database/databasetest"
	"github.com/fbraem/kwai/internal/shared/kernel"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

type fixture struct {
	db      *database.Database
	owner   kernel.Owner
	service *application.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := databasetest.NewSQLite(t)
	return fixture{
		db:    db,
		owner: databasetest.CreateOwner(t, db, "editor@kwai.test", kernel.Name{FirstName: "Ed", LastName: "Itor"}),
		service: application.NewService(
			sqlstore.NewApplicationRepository(db),
			sqlstore.NewNewsItemRepository(db),
			sqlstore.NewPageRepository(db),
			sqlstore.NewAuthorRepository(db),
			database.NewUnitOfWork(db),
		),
	}
}

func newsCommand(applicationID int64, publish string) ports.NewsItemCommand {
	return ports.NewsItemCommand{
		Enabled:       true,
		Texts:         []ports.TextCommand{{Locale: "nl", Format: "md", Title: "Kampioen", Summary: "Goud in Gent"}},
		ApplicationID: applicationID,
		PublishDate:   publish,
	}
}

func (f fixture) createNewsItem(t *testing.T, command ports.NewsItemCommand) domain.NewsItem {
	t.Helper()
	var created presenter.Single[domain.NewsItem]
	require.NoError(t, f.service.CreateNewsItem(context.Background(),
		ports.CreateNewsItemCommand{NewsItemCommand: command, Owner: f.owner}, &created))
	item, ok := created.Value()
	require.True(t, ok)
	return item
}

func (f fixture) newsItems(t *testing.T, command ports.GetNewsItemsCommand) (int, []domain.NewsItem) {
	t.Helper()
	var list presenter.List[domain.NewsItem]
	require.NoError(t, f.service.GetNewsItems(context.Background(), command, &list))
	return list.Count, list.Items
}

func TestCreateAndGetNewsItem(t *testing.T) {
	f := newFixture(t)
	app := portaltest.CreateApplication(t, f.db, "club")

	command := newsCommand(app.ID().Value(), "2024-02-01 10:00:00")
	command.Promotion = 2
	command.PromotionEndDate = "2099-01-01 00:00:00"
	item := f.createNewsItem(t, command)
	require.False(t, item.ID().IsEmpty())

	var got presenter.Single[domain.NewsItem]
	require.NoError(t, f.service.GetNewsItem(context.Background(), ports.GetNewsItemCommand{ID: item.ID().Value()}, &got))
	loaded, _ := got.Value()
	require.Equal(t, "club", loaded.Application.Name)
	require.Equal(t, 2, loaded.Promotion.Priority)
	require.Equal(t, "2099-01-01 00:00:00", loaded.Promotion.EndDate.String())
	require.True(t, loaded.Period.IsEndless())
	text, ok := loaded.Texts.Translation(kernel.LocaleNL)
	require.True(t, ok)
	require.Equal(t, "Kampioen", text.Title)
	require.Equal(t, f.owner.UUID, text.Author.UUID)
}

func TestCreateNewsItemForUnknownApplication(t *testing.T) {
	f := newFixture(t)
	var created presenter.Single[domain.NewsItem]
	err := f.service.CreateNewsItem(context.Background(),
		ports.CreateNewsItemCommand{NewsItemCommand: newsCommand(42, "2024-02-01 10:00:00"), Owner: f.owner}, &created)
	require.ErrorIs(t, err, application.ErrInvalidInput)
	require.NotErrorIs(t, err, kernel.ErrNotFound)
}

func TestCreateNewsItemRequiresNewsApplication(t *testing.T) {
	f := newFixture(t)
	app := portaltest.CreateApplication(t, f.db, "pages_only")
	var updated presenter.Single[domain.Application]
	require.NoError(t, f.service.UpdateApplication(context.Background(), ports.UpdateApplicationCommand{
		ID: app.ID().Value(), Title: app.Title, ShortDescription: app.ShortDescription, Pages: true,
	}, &updated))

	var created presenter.Single[domain.NewsItem]
	err := f.service.CreateNewsItem(context.Background(),
		ports.CreateNewsItemCommand{NewsItemCommand: newsCommand(app.ID().Value(), "2024-02-01 10:00:00"), Owner: f.owner}, &created)
	require.ErrorIs(t, err, application.ErrInvalidInput)
}

func TestGetNewsItemsFilters(t *testing.T) {
	f := newFixture(t)
	club := portaltest.CreateApplication(t, f.db, "club")
	youth := portaltest.CreateApplication(t, f.db, "youth")

	promoted := newsCommand(club.ID().Value(), "2024-02-01 10:00:00")
	promoted.Promotion = 1
	f.createNewsItem(t, promoted)
	expired := newsCommand(club.ID().Value(), "2024-03-01 10:00:00")
	expired.Promotion = 5
	expired.PromotionEndDate = "2024-03-02 00:00:00"
	f.createNewsItem(t, expired)
	disabled := newsCommand(youth.ID().Value(), "2023-12-24 10:00:00")
	disabled.Enabled = false
	f.createNewsItem(t, disabled)

	count, items := f.newsItems(t, ports.GetNewsItemsCommand{})
	require.Equal(t, 3, count)
	require.Equal(t, "2024-03-01 10:00:00", items[0].Period.Start().String())

	count, _ = f.newsItems(t, ports.GetNewsItemsCommand{Year: 2024})
	require.Equal(t, 2, count)
	count, _ = f.newsItems(t, ports.GetNewsItemsCommand{Year: 2024, Month: 3})
	require.Equal(t, 1, count)

	count, items = f.newsItems(t, ports.GetNewsItemsCommand{Promoted: true})
	require.Equal(t, 1, count)
	require.Equal(t, 1, items[0].Promotion.Priority)

	count, _ = f.newsItems(t, ports.GetNewsItemsCommand{Enabled: true})
	require.Equal(t, 2, count)
	count, _ = f.newsItems(t, ports.GetNewsItemsCommand{ApplicationName: "youth"})
	require.Equal(t, 1, count)
	count, _ = f.newsItems(t, ports.GetNewsItemsCommand{ApplicationID: club.ID().Value()})
	require.Equal(t, 2, count)
	count, _ = f.newsItems(t, ports.GetNewsItemsCommand{UserUUID: f.owner.UUID.String()})
	require.Equal(t, 3, count)
	count, _ = f.newsItems(t, ports.GetNewsItemsCommand{UserUUID: kernel.NewUniqueID().String()})
	require.Zero(t, count)
}

func TestGetNewsItemsPagesOnItems(t *testing.T) {
	f := newFixture(t)
	app := portaltest.CreateApplication(t, f.db, "club")
	for _, day := range []string{"01", "02", "03"} {
		command := newsCommand(app.ID().Value(), "2024-02-"+day+" 10:00:00")
		command.Texts = append(command.Texts, ports.TextCommand{Locale: "en", Format: "md", Title: "Champion"})
		f.createNewsItem(t, command)
	}

	count, items := f.newsItems(t, ports.GetNewsItemsCommand{Limit: 2, Offset: 1})
	require.Equal(t, 3, count)
	require.Len(t, items, 2)
	require.Equal(t, "2024-02-02 10:00:00", items[0].Period.Start().String())
	require.Equal(t, 2, items[0].Texts.Len())
}

func TestUpdateNewsItemKeepsTextCreation(t *testing.T) {
	f := newFixture(t)
	app := portaltest.CreateApplication(t, f.db, "club")
	item := f.createNewsItem(t, newsCommand(app.ID().Value(), "2024-02-01 10:00:00"))
	original, _ := item.Texts.Translation(kernel.LocaleNL)

	command := newsCommand(app.ID().Value(), "2024-02-01 10:00:00")
	command.Texts[0].Title = "Europees kampioen"
	command.EndDate = "2024-12-31 00:00:00"
	var updated presenter.Single[domain.NewsItem]
	require.NoError(t, f.service.UpdateNewsItem(context.Background(),
		ports.UpdateNewsItemCommand{ID: item.ID().Value(), NewsItemCommand: command, Owner: f.owner}, &updated))

	var got presenter.Single[domain.NewsItem]
	require.NoError(t, f.service.GetNewsItem(context.Background(), ports.GetNewsItemCommand{ID: item.ID().Value()}, &got))
	loaded, _ := got.Value()
	text, _ := loaded.Texts.Translation(kernel.LocaleNL)
	require.Equal(t, "Europees kampioen", text.Title)
	require.Equal(t, original.TraceableTime.CreatedAt, text.TraceableTime.CreatedAt)
	require.False(t, text.TraceableTime.UpdatedAt.IsEmpty())
	require.Equal(t, "2024-12-31 00:00:00", loaded.Period.End().String())
	require.False(t, loaded.TraceableTime.UpdatedAt.IsEmpty())
}

func TestDeleteNewsItem(t *testing.T) {
	f := newFixture(t)
	app := portaltest.CreateApplication(t, f.db, "club")
	item := f.createNewsItem(t, newsCommand(app.ID().Value(), "2024-02-01 10:00:00"))

	require.NoError(t, f.service.DeleteNewsItem(context.Background(), ports.DeleteNewsItemCommand{ID: item.ID().Value()}))
	var got presenter.Single[domain.NewsItem]
	err := f.service.GetNewsItem(context.Background(), ports.GetNewsItemCommand{ID: item.ID().Value()}, &got)
	require.ErrorIs(t, err, ports.ErrNewsItemNotFound)
	require.ErrorIs(t, f.service.DeleteNewsItem(context.Background(), ports.DeleteNewsItemCommand{ID: item.ID().Value()}), kernel.ErrNotFound)
}

func TestPagesLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := portaltest.CreateApplication(t, f.db, "club")
	command := ports.PageCommand{
		Enabled:       true,
		Texts:         []ports.TextCommand{{Locale: "nl", Format: "html", Title: "Over ons", Content: "<p>Sinds 1969</p>"}},
		ApplicationID: app.ID().Value(),
		Priority:      1,
	}
	var created presenter.Single[domain.Page]
	require.NoError(t, f.service.CreatePage(ctx, ports.CreatePageCommand{PageCommand: command, Owner: f.owner}, &created))
	first, _ := created.Value()

	command.Priority = 5
	command.Enabled = false
	command.Texts[0].Title = "Contact"
	require.NoError(t, f.service.CreatePage(ctx, ports.CreatePageCommand{PageCommand: command, Owner: f.owner}, &created))

	var list presenter.List[domain.Page]
	require.NoError(t, f.service.GetPages(ctx, ports.GetPagesCommand{}, &list))
	require.Equal(t, 2, list.Count)
	require.Equal(t, 5, list.Items[0].Priority)

	list = presenter.List[domain.Page]{}
	require.NoError(t, f.service.GetPages(ctx, ports.GetPagesCommand{Enabled: true, ApplicationID: app.ID().Value()}, &list))
	require.Equal(t, 1, list.Count)
	require.Equal(t, first.ID(), list.Items[0].ID())

	command.Enabled = true
	var updated presenter.Single[domain.Page]
	require.NoError(t, f.service.UpdatePage(ctx, ports.UpdatePageCommand{ID: first.ID().Value(), PageCommand: command, Owner: f.owner}, &updated))
	page, _ := updated.Value()
	require.Equal(t, 5, page.Priority)

	require.NoError(t, f.service.DeletePage(ctx, ports.DeletePageCommand{ID: first.ID().Value()}))
	var got presenter.Single[domain.Page]
	require.ErrorIs(t, f.service.GetPage(ctx, ports.GetPageCommand{ID: first.ID().Value()}, &got), ports.ErrPageNotFound)
}

func TestUpdateApplicationKeepsName(t *testing.T) {
	f := newFixture(t)
	app := portaltest.CreateApplication(t, f.db, "club")

	var updated presenter.Single[domain.Application]
	require.NoError(t, f.service.UpdateApplication(context.Background(), ports.UpdateApplicationCommand{
		ID: app.ID().Value(), Title: "Our club", ShortDescription: "News of the club", Weight: 3, News: true,
	}, &updated))

	var got presenter.Single[domain.Application]
	require.NoError(t, f.service.GetApplication(context.Background(), ports.GetApplicationCommand{ID: app.ID().Value()}, &got))
	loaded, _ := got.Value()
	require.Equal(t, "club", loaded.Name)
	require.Equal(t, "Our club", loaded.Title)
	require.Equal(t, 3, loaded.Weight)
	require.True(t, loaded.CanContainNews)
	require.False(t, loaded.CanContainPages)

	err := f.service.UpdateApplication(context.Background(), ports.UpdateApplicationCommand{ID: app.ID().Value()}, &updated)
	require.ErrorIs(t, err, application.ErrInvalidInput)
}

func TestGetApplicationsFilters(t *testing.T) {
	f := newFixture(t)
	portaltest.CreateApplication(t, f.db, "club")
	events := portaltest.CreateApplication(t, f.db, "events")
	var updated presenter.Single[domain.Application]
	require.NoError(t, f.service.UpdateApplication(context.Background(), ports.UpdateApplicationCommand{
		ID: events.ID().Value(), Title: "Events", Events: true,
	}, &updated))

	var list presenter.List[domain.Application]
	require.NoError(t, f.service.GetApplications(context.Background(), ports.GetApplicationsCommand{News: true}, &list))
	require.Equal(t, 1, list.Count)
	require.Equal(t, "club", list.Items[0].Name)

	list = presenter.List[domain.Application]{}
	require.NoError(t, f.service.GetApplications(context.Background(), ports.GetApplicationsCommand{Name: "events"}, &list))
	require.Equal(t, 1, list.Count)
}

func TestGetAuthors(t *testing.T) {
	f := newFixture(t)
	portaltest.CreateAuthor(t, f.db, f.owner)

	var list presenter.List[domain.Author]
	require.NoError(t, f.service.GetAuthors(context.Background(), ports.GetAuthorsCommand{}, &list))
	require.Equal(t, 1, list.Count)
	require.Equal(t, f.owner.UUID, list.Items[0].UUID)
	require.Equal(t, "Ed Itor", list.Items[0].Name)
}
