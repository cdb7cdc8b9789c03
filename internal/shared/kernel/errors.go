package kernel

import "errors"

// Error categories shared by all bounded contexts. Aggregate specific errors wrap
// one of these so the transport layer can translate them without knowing the aggregate.
var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrDuplicate      = errors.New("duplicate")
	ErrUnprocessable  = errors.New("unprocessable")
	ErrAuthentication = errors.New("authentication failed")
	ErrForbidden      = errors.New("forbidden")
)
