// Package authn carries the authenticated user of a request.
package authn

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

// Principal is the authenticated user.
type Principal struct {
	Owner kernel.Owner
	Admin bool
	// TokenID is the identifier of the access token used for the request.
	TokenID string
}

type principalKey struct{}

const ginKey = "kwai.principal"

// WithPrincipal returns a context carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal carried by ctx.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// Set stores p on the gin context and on the request context.
func Set(c *gin.Context, p Principal) {
	c.Set(ginKey, p)
	c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), p))
}

// Get returns the principal of the request, set by the authentication middleware.
func Get(c *gin.Context) (Principal, bool) {
	value, ok := c.Get(ginKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := value.(Principal)
	return p, ok
}
