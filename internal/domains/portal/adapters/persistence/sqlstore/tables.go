package sqlstore

import (
	"fmt"
	"time"

	"github.com/fbraem/kwai/internal/domains/portal/domain"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	applicationsTable = database.NewTable("applications",
		"id", "title", "name", "short_description", "description", "remark", "news", "pages", "events",
		"weight", "created_at", "updated_at")
	newsItemsTable = database.NewTable("news_stories",
		"id", "enabled", "promotion", "promotion_end_date", "publish_date", "end_date", "remark",
		"application_id", "created_at", "updated_at")
	newsContentsTable = database.NewTable("news_contents",
		"news_id", "locale", "format", "title", "content", "summary", "user_id", "created_at", "updated_at")
	pagesTable = database.NewTable("pages",
		"id", "enabled", "remark", "application_id", "priority", "created_at", "updated_at")
	pageContentsTable = database.NewTable("page_contents",
		"page_id", "locale", "format", "title", "content", "summary", "user_id", "created_at", "updated_at")
	authorsTable = database.NewTable("authors", "user_id", "name", "remark", "active", "created_at", "updated_at")
	usersTable   = database.NewTable("users", "id", "uuid", "first_name", "last_name")
)

type ownerColumns struct {
	ID        int64  `gorm:"column:id"`
	UUID      string `gorm:"column:uuid"`
	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
}

func (c ownerColumns) toDomain() (kernel.Owner, error) {
	uuid, err := kernel.ParseUniqueID(c.UUID)
	if err != nil {
		return kernel.Owner{}, fmt.Errorf("user %d: %w", c.ID, err)
	}
	return kernel.Owner{
		ID:   kernel.NewIntIdentifier(c.ID),
		UUID: uuid,
		Name: kernel.Name{FirstName: c.FirstName, LastName: c.LastName},
	}, nil
}

type applicationRow struct {
	ID               int64      `gorm:"column:id"`
	Title            string     `gorm:"column:title"`
	Name             string     `gorm:"column:name"`
	ShortDescription string     `gorm:"column:short_description"`
	Description      *string    `gorm:"column:description"`
	Remark           *string    `gorm:"column:remark"`
	News             int        `gorm:"column:news"`
	Pages            int        `gorm:"column:pages"`
	Events           int        `gorm:"column:events"`
	Weight           int        `gorm:"column:weight"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt        *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (r applicationRow) Key() int64 { return r.ID }

func newApplicationRow(application domain.Application) applicationRow {
	return applicationRow{
		ID:               application.ID().Value(),
		Title:            application.Title,
		Name:             application.Name,
		ShortDescription: application.ShortDescription,
		Description:      database.NullString(application.Description),
		Remark:           database.NullString(application.Remark),
		News:             database.Flag(application.CanContainNews),
		Pages:            database.Flag(application.CanContainPages),
		Events:           database.Flag(application.CanContainEvents),
		Weight:           application.Weight,
		CreatedAt:        application.TraceableTime.CreatedAt.Time(),
		UpdatedAt:        application.TraceableTime.UpdatedAt.Ptr(),
	}
}

func (r applicationRow) toDomain() (domain.Application, error) {
	return domain.Application{
		Entity:           kernel.NewEntity(kernel.NewIntIdentifier(r.ID)),
		Title:            r.Title,
		Name:             r.Name,
		ShortDescription: r.ShortDescription,
		Description:      database.StringValue(r.Description),
		Remark:           database.StringValue(r.Remark),
		CanContainNews:   database.IsSet(r.News),
		CanContainPages:  database.IsSet(r.Pages),
		CanContainEvents: database.IsSet(r.Events),
		Weight:           r.Weight,
		TraceableTime:    kernel.TraceableTimeFrom(r.CreatedAt, r.UpdatedAt),
	}, nil
}

// textColumns are the columns shared by news_contents and page_contents. Rows
// hold them in an exported field tagged embedded; gorm ignores unexported embeds.
type textColumns struct {
	Locale    string     `gorm:"column:locale"`
	Format    string     `gorm:"column:format"`
	Title     string     `gorm:"column:title"`
	Content   string     `gorm:"column:content"`
	Summary   string     `gorm:"column:summary"`
	UserID    int64      `gorm:"column:user_id"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func newTextColumns(text kernel.LocaleText) textColumns {
	return textColumns{
		Locale:    string(text.Locale),
		Format:    string(text.Format),
		Title:     text.Title,
		Content:   text.Content,
		Summary:   text.Summary,
		UserID:    text.Author.ID.Value(),
		CreatedAt: text.TraceableTime.CreatedAt.Time(),
		UpdatedAt: text.TraceableTime.UpdatedAt.Ptr(),
	}
}

func (c textColumns) toDomain(author kernel.Owner) (kernel.LocaleText, error) {
	locale, err := kernel.ParseLocale(c.Locale)
	if err != nil {
		return kernel.LocaleText{}, err
	}
	format, err := kernel.ParseDocumentFormat(c.Format)
	if err != nil {
		return kernel.LocaleText{}, err
	}
	return kernel.LocaleText{
		Locale:        locale,
		Format:        format,
		Title:         c.Title,
		Content:       c.Content,
		Summary:       c.Summary,
		Author:        author,
		TraceableTime: kernel.TraceableTimeFrom(c.CreatedAt, c.UpdatedAt),
	}, nil
}

// textFromRows collects the translations of one entity, a row per translation.
func textFromRows[R any](rows []R, columns func(R) (textColumns, ownerColumns)) (kernel.Text, error) {
	translations := make([]kernel.LocaleText, 0, len(rows))
	for _, row := range rows {
		text, owner := columns(row)
		author, err := owner.toDomain()
		if err != nil {
			return kernel.Text{}, err
		}
		translation, err := text.toDomain(author)
		if err != nil {
			return kernel.Text{}, err
		}
		translations = append(translations, translation)
	}
	return kernel.NewText(translations...), nil
}

type newsItemRow struct {
	ID               int64      `gorm:"column:id"`
	Enabled          int        `gorm:"column:enabled"`
	Promotion        int        `gorm:"column:promotion"`
	PromotionEndDate *time.Time `gorm:"column:promotion_end_date"`
	PublishDate      time.Time  `gorm:"column:publish_date"`
	EndDate          *time.Time `gorm:"column:end_date"`
	Remark           *string    `gorm:"column:remark"`
	ApplicationID    int64      `gorm:"column:application_id"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt        *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (r newsItemRow) Key() int64 { return r.ID }

func newNewsItemRow(item domain.NewsItem) newsItemRow {
	return newsItemRow{
		ID:               item.ID().Value(),
		Enabled:          database.Flag(item.Enabled),
		Promotion:        item.Promotion.Priority,
		PromotionEndDate: item.Promotion.EndDate.Ptr(),
		PublishDate:      item.Period.Start().Time(),
		EndDate:          item.Period.End().Ptr(),
		Remark:           database.NullString(item.Remark),
		ApplicationID:    item.Application.ID().Value(),
		CreatedAt:        item.TraceableTime.CreatedAt.Time(),
		UpdatedAt:        item.TraceableTime.UpdatedAt.Ptr(),
	}
}

type newsContentRow struct {
	NewsID int64       `gorm:"column:news_id"`
	Text   textColumns `gorm:"embedded"`
}

func newNewsContentRows(item domain.NewsItem) []newsContentRow {
	rows := make([]newsContentRow, 0, item.Texts.Len())
	for _, text := range item.Texts.All() {
		rows = append(rows, newsContentRow{NewsID: item.ID().Value(), Text: newTextColumns(text)})
	}
	return rows
}

type newsItemQueryRow struct {
	NewsItem    newsItemRow    `gorm:"embedded;embeddedPrefix:news_stories_"`
	Application applicationRow `gorm:"embedded;embeddedPrefix:applications_"`
	Content     newsContentRow `gorm:"embedded;embeddedPrefix:news_contents_"`
	Author      ownerColumns   `gorm:"embedded;embeddedPrefix:users_"`
}

func newsItemFromRows(rows []newsItemQueryRow) (domain.NewsItem, error) {
	row := rows[0].NewsItem
	period, err := kernel.NewPeriod(kernel.NewTimestamp(row.PublishDate), kernel.TimestampFromPtr(row.EndDate))
	if err != nil {
		return domain.NewsItem{}, fmt.Errorf("news item %d: %w", row.ID, err)
	}
	application, err := rows[0].Application.toDomain()
	if err != nil {
		return domain.NewsItem{}, err
	}
	texts, err := textFromRows(rows, func(r newsItemQueryRow) (textColumns, ownerColumns) {
		return r.Content.Text, r.Author
	})
	if err != nil {
		return domain.NewsItem{}, err
	}
	return domain.NewsItem{
		Entity:  kernel.NewEntity(kernel.NewIntIdentifier(row.ID)),
		Enabled: database.IsSet(row.Enabled),
		Promotion: domain.Promotion{
			Priority: row.Promotion,
			EndDate:  kernel.TimestampFromPtr(row.PromotionEndDate),
		},
		Period:        period,
		Application:   application,
		Texts:         texts,
		Remark:        database.StringValue(row.Remark),
		TraceableTime: kernel.TraceableTimeFrom(row.CreatedAt, row.UpdatedAt),
	}, nil
}

type pageRow struct {
	ID            int64      `gorm:"column:id"`
	Enabled       int        `gorm:"column:enabled"`
	Remark        *string    `gorm:"column:remark"`
	ApplicationID int64      `gorm:"column:application_id"`
	Priority      int        `gorm:"column:priority"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt     *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (r pageRow) Key() int64 { return r.ID }

func newPageRow(page domain.Page) pageRow {
	return pageRow{
		ID:            page.ID().Value(),
		Enabled:       database.Flag(page.Enabled),
		Remark:        database.NullString(page.Remark),
		ApplicationID: page.Application.ID().Value(),
		Priority:      page.Priority,
		CreatedAt:     page.TraceableTime.CreatedAt.Time(),
		UpdatedAt:     page.TraceableTime.UpdatedAt.Ptr(),
	}
}

type pageContentRow struct {
	PageID int64       `gorm:"column:page_id"`
	Text   textColumns `gorm:"embedded"`
}

func newPageContentRows(page domain.Page) []pageContentRow {
	rows := make([]pageContentRow, 0, page.Texts.Len())
	for _, text := range page.Texts.All() {
		rows = append(rows, pageContentRow{PageID: page.ID().Value(), Text: newTextColumns(text)})
	}
	return rows
}

type pageQueryRow struct {
	Page        pageRow        `gorm:"embedded;embeddedPrefix:pages_"`
	Application applicationRow `gorm:"embedded;embeddedPrefix:applications_"`
	Content     pageContentRow `gorm:"embedded;embeddedPrefix:page_contents_"`
	Author      ownerColumns   `gorm:"embedded;embeddedPrefix:users_"`
}

func pageFromRows(rows []pageQueryRow) (domain.Page, error) {
	row := rows[0].Page
	application, err := rows[0].Application.toDomain()
	if err != nil {
		return domain.Page{}, err
	}
	texts, err := textFromRows(rows, func(r pageQueryRow) (textColumns, ownerColumns) {
		return r.Content.Text, r.Author
	})
	if err != nil {
		return domain.Page{}, err
	}
	return domain.Page{
		Entity:        kernel.NewEntity(kernel.NewIntIdentifier(row.ID)),
		Enabled:       database.IsSet(row.Enabled),
		Application:   application,
		Texts:         texts,
		Priority:      row.Priority,
		Remark:        database.StringValue(row.Remark),
		TraceableTime: kernel.TraceableTimeFrom(row.CreatedAt, row.UpdatedAt),
	}, nil
}

type authorRow struct {
	UserID    int64      `gorm:"column:user_id"`
	Name      string     `gorm:"column:name"`
	Remark    *string    `gorm:"column:remark"`
	Active    int        `gorm:"column:active"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

type authorQueryRow struct {
	Author authorRow    `gorm:"embedded;embeddedPrefix:authors_"`
	User   ownerColumns `gorm:"embedded;embeddedPrefix:users_"`
}

func (r authorQueryRow) toDomain() (domain.Author, error) {
	uuid, err := kernel.ParseUniqueID(r.User.UUID)
	if err != nil {
		return domain.Author{}, fmt.Errorf("author %d: %w", r.Author.UserID, err)
	}
	return domain.Author{
		Entity:        kernel.NewEntity(kernel.NewIntIdentifier(r.Author.UserID)),
		UUID:          uuid,
		Name:          r.Author.Name,
		Remark:        database.StringValue(r.Author.Remark),
		Active:        database.IsSet(r.Author.Active),
		TraceableTime: kernel.TraceableTimeFrom(r.Author.CreatedAt, r.Author.UpdatedAt),
	}, nil
}

func byID(id kernel.IntIdentifier) database.Predicate {
	return database.Where("id = ?", id.Value())
}

func ptr[T any](value T) *T {
	return &value
}
