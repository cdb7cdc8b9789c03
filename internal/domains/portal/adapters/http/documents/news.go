package documents

import (
	"github.com/fbraem/kwai/internal/domains/portal/domain"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

type PromotionAttributes struct {
	Priority int              `json:"priority"`
	EndDate  kernel.Timestamp `json:"end_date"`
}

// NewsItemAttributes has an empty end_date for a news item that never expires.
type NewsItemAttributes struct {
	Enabled     bool                     `json:"enabled"`
	PublishDate kernel.Timestamp         `json:"publish_date"`
	EndDate     kernel.Timestamp         `json:"end_date"`
	Promotion   PromotionAttributes      `json:"promotion"`
	Texts       []jsonapi.TextAttributes `json:"texts"`
	Remark      string                   `json:"remark"`
}

type NewsItemDocument = jsonapi.Document[NewsItemAttributes]

func NewNewsItemResource(item domain.NewsItem) jsonapi.Resource[NewsItemAttributes] {
	return jsonapi.Resource[NewsItemAttributes]{
		Type: NewsItemType,
		ID:   item.ID().String(),
		Attributes: NewsItemAttributes{
			Enabled:     item.Enabled,
			PublishDate: item.Period.Start(),
			EndDate:     item.Period.End(),
			Promotion: PromotionAttributes{
				Priority: item.Promotion.Priority,
				EndDate:  item.Promotion.EndDate,
			},
			Texts:  jsonapi.NewTextAttributes(item.Texts),
			Remark: item.Remark,
		},
		Meta: jsonapi.NewResourceMeta(item.TraceableTime),
	}.Relate("application", jsonapi.ToOne(NewApplicationResource(item.Application).Ref()))
}

// NewNewsItemDocument includes the application of the news item.
func NewNewsItemDocument(item domain.NewsItem) NewsItemDocument {
	document := jsonapi.NewDocument(NewNewsItemResource(item))
	document.Include(NewApplicationResource(item.Application))
	return document
}

func NewNewsItemPresenter() *jsonapi.DocumentPresenter[domain.NewsItem, NewsItemAttributes] {
	return jsonapi.NewDocumentPresenter(NewNewsItemDocument)
}

func NewNewsItemsPresenter() *jsonapi.CollectionPresenter[domain.NewsItem, NewsItemAttributes] {
	return jsonapi.NewCollectionPresenter(NewNewsItemDocument)
}
