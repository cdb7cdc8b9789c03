package jsonapi

import (
	"context"

	"github.com/fbraem/kwai/internal/shared/presenter"
)

// DocumentPresenter turns one entity into a document.
type DocumentPresenter[T, A any] struct {
	build    func(T) Document[A]
	document Document[A]
}

// NewDocumentPresenter creates a presenter using build to create the document.
func NewDocumentPresenter[T, A any](build func(T) Document[A]) *DocumentPresenter[T, A] {
	return &DocumentPresenter[T, A]{build: build}
}

func (p *DocumentPresenter[T, A]) Present(entity T) {
	p.document = p.build(entity)
}

// Document returns the presented document.
func (p *DocumentPresenter[T, A]) Document() Document[A] {
	return p.document
}

// CollectionPresenter drains a page of entities into a collection document.
type CollectionPresenter[T, A any] struct {
	build    func(T) Document[A]
	document Document[A]
}

// NewCollectionPresenter creates a presenter using build for every entity.
func NewCollectionPresenter[T, A any](build func(T) Document[A]) *CollectionPresenter[T, A] {
	return &CollectionPresenter[T, A]{build: build}
}

func (p *CollectionPresenter[T, A]) Present(ctx context.Context, result presenter.IterableResult[T]) error {
	document := NewCollection[A](Meta{Count: result.Count, Offset: result.Offset, Limit: result.Limit})
	if result.Iterator != nil {
		for entity, err := range result.Iterator {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			document.Merge(p.build(entity))
		}
	}
	p.document = document
	return nil
}

// Document returns the presented document.
func (p *CollectionPresenter[T, A]) Document() Document[A] {
	return p.document
}

var (
	_ presenter.Presenter[struct{}]      = (*DocumentPresenter[struct{}, struct{}])(nil)
	_ presenter.AsyncPresenter[struct{}] = (*CollectionPresenter[struct{}, struct{}])(nil)
)
