// Package errors translates use case failures into RFC 7807 problem responses.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail is the body of every failed API request.
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	// Errors lists the rejected fields of a validation problem.
	Errors []FieldError `json:"errors,omitempty"`
}

// FieldError names a request field and the rule it broke.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func (p ProblemDetail) Error() string {
	if p.Detail == "" {
		return p.Title
	}
	return fmt.Sprintf("%s: %s", p.Title, p.Detail)
}

// WithDetail returns a copy explaining this occurrence.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithFieldErrors returns a copy listing the rejected fields.
func (p ProblemDetail) WithFieldErrors(fields ...FieldError) ProblemDetail {
	p.Errors = append(append([]FieldError(nil), p.Errors...), fields...)
	return p
}

func problem(slug, title string, status int) ProblemDetail {
	return ProblemDetail{Type: "/problems/" + slug, Title: title, Status: status}
}

var (
	ErrBadRequest    = problem("bad-request", "Bad Request", http.StatusBadRequest)
	ErrUnauthorized  = problem("unauthorized", "Unauthorized", http.StatusUnauthorized)
	ErrForbidden     = problem("forbidden", "Forbidden", http.StatusForbidden)
	ErrNotFound      = problem("not-found", "Resource Not Found", http.StatusNotFound)
	ErrConflict      = problem("conflict", "Conflict", http.StatusConflict)
	ErrValidation    = problem("validation-error", "Validation Error", http.StatusUnprocessableEntity)
	ErrUnprocessable = problem("unprocessable-entity", "Unprocessable Entity", http.StatusUnprocessableEntity)
	ErrInternal      = problem("internal-error", "Internal Server Error", http.StatusInternalServerError)
)
