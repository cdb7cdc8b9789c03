package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type of a problem response.
const ContentTypeProblemJSON = "application/problem+json"

// Responder writes problem responses.
type Responder struct{}

// Respond writes problem and fills in the request path as the instance.
func (Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError answers with err when it is a ProblemDetail and with an internal
// error otherwise. The message of an unknown error can hold SQL, so it is only
// attached to the gin context.
func (r Responder) RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	_ = c.Error(err)
	r.Respond(c, ErrInternal.WithDetail("an unexpected error occurred"))
}

func (r Responder) BadRequest(c *gin.Context, detail string) {
	r.Respond(c, ErrBadRequest.WithDetail(detail))
}

// ErrorMapper converts an error it recognises.
type ErrorMapper func(err error) (ProblemDetail, bool)

// ChainedResponder asks its mappers in order before falling back to Responder.
type ChainedResponder struct {
	Responder
	mappers []ErrorMapper
}

func NewChainedResponder(mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{mappers: mappers}
}

func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	r.Responder.RespondError(c, err)
}
