package sqlstore

import (
	"context"
	"fmt"
	"iter"

	"github.com/fbraem/kwai/internal/domains/portal/domain"
	"github.com/fbraem/kwai/internal/domains/portal/ports"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	_ ports.PageQuery      = pageQuery{}
	_ ports.PageRepository = (*PageRepository)(nil)
)

type pageQuery struct {
	query database.Query
}

// newPageQuery pages on pages that have at least one text.
func newPageQuery(db *database.Database) pageQuery {
	onApplication := applicationsTable.Column("id") + " = " + pagesTable.Column("application_id")
	columns := append(pagesTable.Aliases(), applicationsTable.Aliases()...)
	columns = append(columns, pageContentsTable.Aliases()...)
	columns = append(columns, usersTable.Aliases()...)
	detail := pagesTable.Select().
		Join(applicationsTable.Ref(), onApplication).
		Join(pageContentsTable.Ref(), pageContentsTable.Column("page_id")+" = "+pagesTable.Column("id")).
		Join(usersTable.Ref(), usersTable.Column("id")+" = "+pageContentsTable.Column("user_id")).
		Columns(columns...)
	withText := pageContentsTable.Select().Columns(pageContentsTable.Column("page_id"))
	filter := pagesTable.Select().
		Join(applicationsTable.Ref(), onApplication).
		Where(pagesTable.Column("id")+" IN (?)", withText)
	query := database.NewQuery(db, filter, pagesTable.Column("id")).
		WithDetail(detail, pagesTable.Column("id")).
		OrderBy(pagesTable.Column("priority") + " DESC")
	return pageQuery{query: query}
}

func (q pageQuery) where(sql string, args ...any) pageQuery {
	return pageQuery{query: q.query.Where(sql, args...)}
}

func (q pageQuery) FilterByID(id domain.PageIdentifier) ports.PageQuery {
	return q.where(pagesTable.Column("id")+" = ?", id.Value())
}

func (q pageQuery) FilterByApplication(id domain.ApplicationIdentifier) ports.PageQuery {
	return q.where(applicationsTable.Column("id")+" = ?", id.Value())
}

func (q pageQuery) FilterByApplicationName(name string) ports.PageQuery {
	return q.where(applicationsTable.Column("name")+" = ?", name)
}

func (q pageQuery) FilterByActive() ports.PageQuery {
	return q.where(pagesTable.Column("enabled")+" = ?", 1)
}

func (q pageQuery) FilterByUser(uuid kernel.UniqueID) ports.PageQuery {
	written := pageContentsTable.Select().
		Join(usersTable.Ref(), usersTable.Column("id")+" = "+pageContentsTable.Column("user_id")).
		Columns(pageContentsTable.Column("page_id")).
		Where(usersTable.Column("uuid")+" = ?", uuid.String())
	return q.where(pagesTable.Column("id")+" IN (?)", written)
}

func (q pageQuery) Count(ctx context.Context) (int, error) {
	count, err := q.query.Count(ctx)
	return int(count), err
}

// PageRepository stores pages in the pages table and their texts in page_contents.
type PageRepository struct {
	db *database.Database
}

func NewPageRepository(db *database.Database) *PageRepository {
	return &PageRepository{db: db}
}

func (r *PageRepository) CreateQuery() ports.PageQuery {
	return newPageQuery(r.db)
}

func (r *PageRepository) Get(ctx context.Context, query ports.PageQuery) (domain.Page, error) {
	for page, err := range r.GetAll(ctx, query, 1, 0) {
		return page, err
	}
	return domain.Page{}, ports.ErrPageNotFound
}

func (r *PageRepository) GetAll(ctx context.Context, query ports.PageQuery, limit, offset int) iter.Seq2[domain.Page, error] {
	q, ok := query.(pageQuery)
	if !ok {
		return func(yield func(domain.Page, error) bool) {
			yield(domain.Page{}, fmt.Errorf("unsupported page query %T", query))
		}
	}
	groups := database.Group(database.Fetch[pageQueryRow](ctx, q.query, limit, offset), func(row pageQueryRow) int64 {
		return row.Page.ID
	})
	return database.Map(groups, pageFromRows)
}

func (r *PageRepository) Create(ctx context.Context, page domain.Page) (domain.Page, error) {
	if page.Texts.Len() == 0 {
		return domain.Page{}, domain.ErrTextRequired
	}
	err := r.db.Transaction(ctx, func(ctx context.Context) error {
		id, err := r.db.Insert(ctx, pagesTable.Name(), ptr(newPageRow(page)))
		if err != nil {
			return err
		}
		page.Entity = page.WithID(kernel.NewIntIdentifier(id))
		return r.insertTexts(ctx, page)
	})
	if err != nil {
		return domain.Page{}, err
	}
	return page, nil
}

func (r *PageRepository) Update(ctx context.Context, page domain.Page) error {
	if page.Texts.Len() == 0 {
		return domain.ErrTextRequired
	}
	return r.db.Transaction(ctx, func(ctx context.Context) error {
		if err := r.db.Update(ctx, pagesTable.Name(), byID(page.ID()), ptr(newPageRow(page))); err != nil {
			return err
		}
		if err := r.db.Delete(ctx, pageContentsTable.Name(), byPage(page.ID())); err != nil {
			return err
		}
		return r.insertTexts(ctx, page)
	})
}

func (r *PageRepository) Delete(ctx context.Context, page domain.Page) error {
	return r.db.Transaction(ctx, func(ctx context.Context) error {
		if err := r.db.Delete(ctx, pageContentsTable.Name(), byPage(page.ID())); err != nil {
			return err
		}
		return r.db.Delete(ctx, pagesTable.Name(), byID(page.ID()))
	})
}

func (r *PageRepository) insertTexts(ctx context.Context, page domain.Page) error {
	contents := newPageContentRows(page)
	if len(contents) == 0 {
		return nil
	}
	_, err := r.db.Insert(ctx, pageContentsTable.Name(), &contents)
	return err
}

func byPage(id domain.PageIdentifier) database.Predicate {
	return database.Where("page_id = ?", id.Value())
}
