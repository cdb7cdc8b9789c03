package errors

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

// ValidationMapper lists the fields rejected by the request binding.
func ValidationMapper(err error) (ProblemDetail, bool) {
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return ProblemDetail{}, false
	}
	fields := make([]FieldError, 0, len(invalid))
	for _, fieldErr := range invalid {
		fields = append(fields, FieldError{Field: fieldName(fieldErr.Namespace()), Rule: fieldErr.Tag()})
	}
	return ErrValidation.WithDetail("the request contains invalid fields").WithFieldErrors(fields...), true
}

// fieldName drops the struct name validator puts in front of the field path.
func fieldName(namespace string) string {
	if _, field, ok := strings.Cut(namespace, "."); ok {
		return field
	}
	return namespace
}

// KernelMapper maps the error kinds of the shared kernel. Every domain error wraps
// one of them.
func KernelMapper(err error) (ProblemDetail, bool) {
	switch {
	case errors.Is(err, kernel.ErrNotFound):
		return ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, kernel.ErrValidation):
		return ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, kernel.ErrDuplicate):
		return ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, kernel.ErrUnprocessable):
		return ErrUnprocessable.WithDetail(err.Error()), true
	case errors.Is(err, kernel.ErrAuthentication):
		return ErrUnauthorized.WithDetail(err.Error()), true
	case errors.Is(err, kernel.ErrForbidden):
		return ErrForbidden.WithDetail(err.Error()), true
	}
	return ProblemDetail{}, false
}

// DomainResponder is used by all handlers. Anything the mappers don't recognise is
// answered with an internal error.
var DomainResponder = NewChainedResponder(ValidationMapper, KernelMapper)
