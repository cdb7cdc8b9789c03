package documents

import (
	"github.com/fbraem/kwai/internal/domains/portal/domain"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
)

type AuthorAttributes struct {
	Name   string `json:"name"`
	Remark string `json:"remark"`
	Active bool   `json:"active"`
}

type AuthorDocument = jsonapi.Document[AuthorAttributes]

// NewAuthorResource uses the unique id of the user, never its database key.
func NewAuthorResource(author domain.Author) jsonapi.Resource[AuthorAttributes] {
	return jsonapi.Resource[AuthorAttributes]{
		Type: AuthorType,
		ID:   author.UUID.String(),
		Attributes: AuthorAttributes{
			Name:   author.Name,
			Remark: author.Remark,
			Active: author.Active,
		},
		Meta: jsonapi.NewResourceMeta(author.TraceableTime),
	}
}

func NewAuthorDocument(author domain.Author) AuthorDocument {
	return jsonapi.NewDocument(NewAuthorResource(author))
}

func NewAuthorsPresenter() *jsonapi.CollectionPresenter[domain.Author, AuthorAttributes] {
	return jsonapi.NewCollectionPresenter(NewAuthorDocument)
}
