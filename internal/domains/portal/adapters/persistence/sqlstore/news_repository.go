package sqlstore

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/fbraem/kwai/internal/domains/portal/domain"
	"github.com/fbraem/kwai/internal/domains/portal/ports"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	_ ports.NewsItemQuery      = newsItemQuery{}
	_ ports.NewsItemRepository = (*NewsItemRepository)(nil)
)

type newsItemQuery struct {
	query database.Query
	now   func() time.Time
}

// newNewsItemQuery pages on news items joined with their application. The detail
// statement adds a row per text. Items without a text are left out of both
// statements.
func newNewsItemQuery(db *database.Database, now func() time.Time) newsItemQuery {
	onApplication := applicationsTable.Column("id") + " = " + newsItemsTable.Column("application_id")
	columns := append(newsItemsTable.Aliases(), applicationsTable.Aliases()...)
	columns = append(columns, newsContentsTable.Aliases()...)
	columns = append(columns, usersTable.Aliases()...)
	detail := newsItemsTable.Select().
		Join(applicationsTable.Ref(), onApplication).
		Join(newsContentsTable.Ref(), newsContentsTable.Column("news_id")+" = "+newsItemsTable.Column("id")).
		Join(usersTable.Ref(), usersTable.Column("id")+" = "+newsContentsTable.Column("user_id")).
		Columns(columns...)
	withText := newsContentsTable.Select().Columns(newsContentsTable.Column("news_id"))
	filter := newsItemsTable.Select().
		Join(applicationsTable.Ref(), onApplication).
		Where(newsItemsTable.Column("id")+" IN (?)", withText)
	query := database.NewQuery(db, filter, newsItemsTable.Column("id")).
		WithDetail(detail, newsItemsTable.Column("id")).
		OrderBy(newsItemsTable.Column("publish_date") + " DESC")
	return newsItemQuery{query: query, now: now}
}

func (q newsItemQuery) with(query database.Query) newsItemQuery {
	return newsItemQuery{query: query, now: q.now}
}

func (q newsItemQuery) where(sql string, args ...any) newsItemQuery {
	return q.with(q.query.Where(sql, args...))
}

func (q newsItemQuery) FilterByID(id domain.NewsItemIdentifier) ports.NewsItemQuery {
	return q.where(newsItemsTable.Column("id")+" = ?", id.Value())
}

func (q newsItemQuery) FilterByPublicationDate(year, month int) ports.NewsItemQuery {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	if month > 0 {
		start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
	}
	column := newsItemsTable.Column("publish_date")
	return q.where(column+" >= ? AND "+column+" < ?", start, end)
}

func (q newsItemQuery) FilterByPromoted() ports.NewsItemQuery {
	endDate := newsItemsTable.Column("promotion_end_date")
	filtered := q.query.
		Where(newsItemsTable.Column("promotion")+" > ?", 0).
		Where("("+endDate+" IS NULL OR "+endDate+" > ?)", q.now()).
		OrderBy(newsItemsTable.Column("promotion")+" DESC", newsItemsTable.Column("publish_date")+" DESC")
	return q.with(filtered)
}

func (q newsItemQuery) FilterByApplication(id domain.ApplicationIdentifier) ports.NewsItemQuery {
	return q.where(applicationsTable.Column("id")+" = ?", id.Value())
}

func (q newsItemQuery) FilterByApplicationName(name string) ports.NewsItemQuery {
	return q.where(applicationsTable.Column("name")+" = ?", name)
}

func (q newsItemQuery) FilterByActive() ports.NewsItemQuery {
	now := q.now()
	endDate := newsItemsTable.Column("end_date")
	filtered := q.query.
		Where(newsItemsTable.Column("enabled")+" = ?", 1).
		Where(newsItemsTable.Column("publish_date")+" <= ?", now).
		Where("("+endDate+" IS NULL OR "+endDate+" > ?)", now)
	return q.with(filtered)
}

func (q newsItemQuery) FilterByUser(uuid kernel.UniqueID) ports.NewsItemQuery {
	written := newsContentsTable.Select().
		Join(usersTable.Ref(), usersTable.Column("id")+" = "+newsContentsTable.Column("user_id")).
		Columns(newsContentsTable.Column("news_id")).
		Where(usersTable.Column("uuid")+" = ?", uuid.String())
	return q.where(newsItemsTable.Column("id")+" IN (?)", written)
}

func (q newsItemQuery) Count(ctx context.Context) (int, error) {
	count, err := q.query.Count(ctx)
	return int(count), err
}

// NewsItemRepository stores news items in news_stories and their texts in news_contents.
type NewsItemRepository struct {
	db  *database.Database
	now func() time.Time
}

func NewNewsItemRepository(db *database.Database) *NewsItemRepository {
	return &NewsItemRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *NewsItemRepository) CreateQuery() ports.NewsItemQuery {
	return newNewsItemQuery(r.db, r.now)
}

func (r *NewsItemRepository) Get(ctx context.Context, query ports.NewsItemQuery) (domain.NewsItem, error) {
	for item, err := range r.GetAll(ctx, query, 1, 0) {
		return item, err
	}
	return domain.NewsItem{}, ports.ErrNewsItemNotFound
}

func (r *NewsItemRepository) GetAll(ctx context.Context, query ports.NewsItemQuery, limit, offset int) iter.Seq2[domain.NewsItem, error] {
	q, ok := query.(newsItemQuery)
	if !ok {
		return func(yield func(domain.NewsItem, error) bool) {
			yield(domain.NewsItem{}, fmt.Errorf("unsupported news item query %T", query))
		}
	}
	groups := database.Group(database.Fetch[newsItemQueryRow](ctx, q.query, limit, offset), func(row newsItemQueryRow) int64 {
		return row.NewsItem.ID
	})
	return database.Map(groups, newsItemFromRows)
}

func (r *NewsItemRepository) Create(ctx context.Context, item domain.NewsItem) (domain.NewsItem, error) {
	if item.Texts.Len() == 0 {
		return domain.NewsItem{}, domain.ErrTextRequired
	}
	err := r.db.Transaction(ctx, func(ctx context.Context) error {
		id, err := r.db.Insert(ctx, newsItemsTable.Name(), ptr(newNewsItemRow(item)))
		if err != nil {
			return err
		}
		item.Entity = item.WithID(kernel.NewIntIdentifier(id))
		return r.insertTexts(ctx, item)
	})
	if err != nil {
		return domain.NewsItem{}, err
	}
	return item, nil
}

// Update replaces the texts of the news item.
func (r *NewsItemRepository) Update(ctx context.Context, item domain.NewsItem) error {
	if item.Texts.Len() == 0 {
		return domain.ErrTextRequired
	}
	return r.db.Transaction(ctx, func(ctx context.Context) error {
		if err := r.db.Update(ctx, newsItemsTable.Name(), byID(item.ID()), ptr(newNewsItemRow(item))); err != nil {
			return err
		}
		if err := r.db.Delete(ctx, newsContentsTable.Name(), byNewsItem(item.ID())); err != nil {
			return err
		}
		return r.insertTexts(ctx, item)
	})
}

func (r *NewsItemRepository) Delete(ctx context.Context, item domain.NewsItem) error {
	return r.db.Transaction(ctx, func(ctx context.Context) error {
		if err := r.db.Delete(ctx, newsContentsTable.Name(), byNewsItem(item.ID())); err != nil {
			return err
		}
		return r.db.Delete(ctx, newsItemsTable.Name(), byID(item.ID()))
	})
}

func (r *NewsItemRepository) insertTexts(ctx context.Context, item domain.NewsItem) error {
	contents := newNewsContentRows(item)
	if len(contents) == 0 {
		return nil
	}
	_, err := r.db.Insert(ctx, newsContentsTable.Name(), &contents)
	return err
}

func byNewsItem(id domain.NewsItemIdentifier) database.Predicate {
	return database.Where("news_id = ?", id.Value())
}
