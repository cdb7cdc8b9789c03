// Package presenter decouples use cases from the representation of their results.
package presenter

import (
	"context"
	"iter"
)

// Presenter receives a single result of a use case.
type Presenter[T any] interface {
	Present(result T)
}

// AsyncPresenter receives a page of a collection. Presenting drains the iterator.
type AsyncPresenter[T any] interface {
	Present(ctx context.Context, result IterableResult[T]) error
}

// IterableResult is a page of a collection. Count is the number of entities matching
// the request regardless of Offset and Limit. A Limit of 0 means no limit was requested.
type IterableResult[T any] struct {
	Count    int
	Offset   int
	Limit    int
	Iterator iter.Seq2[T, error]
}

// Single stores the presented value.
type Single[T any] struct {
	value     T
	presented bool
}

func (s *Single[T]) Present(result T) {
	s.value = result
	s.presented = true
}

// Value returns the presented value. ok is false when nothing was presented.
func (s *Single[T]) Value() (value T, ok bool) {
	return s.value, s.presented
}

// List drains a page into a slice.
type List[T any] struct {
	Count  int
	Offset int
	Limit  int
	Items  []T
}

func (l *List[T]) Present(ctx context.Context, result IterableResult[T]) error {
	l.Count, l.Offset, l.Limit, l.Items = result.Count, result.Offset, result.Limit, nil
	if result.Iterator == nil {
		return nil
	}
	for item, err := range result.Iterator {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		l.Items = append(l.Items, item)
	}
	return nil
}

// Func adapts a function to Presenter.
type Func[T any] func(result T)

func (f Func[T]) Present(result T) { f(result) }
