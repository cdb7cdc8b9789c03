package documents

import (
	"github.com/fbraem/kwai/internal/domains/portal/domain"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
)

type PageAttributes struct {
	Enabled  bool                     `json:"enabled"`
	Priority int                      `json:"priority"`
	Texts    []jsonapi.TextAttributes `json:"texts"`
	Remark   string                   `json:"remark"`
}

type PageDocument = jsonapi.Document[PageAttributes]

func NewPageResource(page domain.Page) jsonapi.Resource[PageAttributes] {
	return jsonapi.Resource[PageAttributes]{
		Type: PageType,
		ID:   page.ID().String(),
		Attributes: PageAttributes{
			Enabled:  page.Enabled,
			Priority: page.Priority,
			Texts:    jsonapi.NewTextAttributes(page.Texts),
			Remark:   page.Remark,
		},
		Meta: jsonapi.NewResourceMeta(page.TraceableTime),
	}.Relate("application", jsonapi.ToOne(NewApplicationResource(page.Application).Ref()))
}

func NewPageDocument(page domain.Page) PageDocument {
	document := jsonapi.NewDocument(NewPageResource(page))
	document.Include(NewApplicationResource(page.Application))
	return document
}

func NewPagePresenter() *jsonapi.DocumentPresenter[domain.Page, PageAttributes] {
	return jsonapi.NewDocumentPresenter(NewPageDocument)
}

func NewPagesPresenter() *jsonapi.CollectionPresenter[domain.Page, PageAttributes] {
	return jsonapi.NewCollectionPresenter(NewPageDocument)
}
