// Package documents converts portal entities to JSON:API documents.
package documents

import (
	"github.com/fbraem/kwai/internal/domains/portal/domain"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
)

const (
	ApplicationType = "applications"
	NewsItemType    = "news_items"
	PageType        = "pages"
	AuthorType      = "authors"
)

type ApplicationAttributes struct {
	Title            string `json:"title"`
	Name             string `json:"name"`
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
	Remark           string `json:"remark"`
	News             bool   `json:"news"`
	Pages            bool   `json:"pages"`
	Events           bool   `json:"events"`
	Weight           int    `json:"weight"`
}

type ApplicationDocument = jsonapi.Document[ApplicationAttributes]

func NewApplicationResource(application domain.Application) jsonapi.Resource[ApplicationAttributes] {
	return jsonapi.Resource[ApplicationAttributes]{
		Type: ApplicationType,
		ID:   application.ID().String(),
		Attributes: ApplicationAttributes{
			Title:            application.Title,
			Name:             application.Name,
			ShortDescription: application.ShortDescription,
			Description:      application.Description,
			Remark:           application.Remark,
			News:             application.CanContainNews,
			Pages:            application.CanContainPages,
			Events:           application.CanContainEvents,
			Weight:           application.Weight,
		},
		Meta: jsonapi.NewResourceMeta(application.TraceableTime),
	}
}

func NewApplicationDocument(application domain.Application) ApplicationDocument {
	return jsonapi.NewDocument(NewApplicationResource(application))
}

func NewApplicationPresenter() *jsonapi.DocumentPresenter[domain.Application, ApplicationAttributes] {
	return jsonapi.NewDocumentPresenter(NewApplicationDocument)
}

func NewApplicationsPresenter() *jsonapi.CollectionPresenter[domain.Application, ApplicationAttributes] {
	return jsonapi.NewCollectionPresenter(NewApplicationDocument)
}
