// Package uow declares the unit of work the application services bracket their
// writes with. database.UnitOfWork implements it.
package uow

import "context"

// UnitOfWork runs fn as one atomic piece of work. fn must use the context it receives.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Func adapts a function to UnitOfWork.
type Func func(ctx context.Context, fn func(ctx context.Context) error) error

func (f Func) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}

// None runs the work directly. Used by tests with in-memory repositories.
var None = Func(func(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
})
