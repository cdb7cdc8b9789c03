package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/platform/security"
	"github.com/fbraem/kwai/internal/shared/authn"
	apierrors "github.com/fbraem/kwai/internal/shared/errors"
)

// Authenticator turns the access token of a request into an authn.Principal. The
// token is read from the access_token cookie or from an Authorization bearer header.
type Authenticator struct {
	service ports.Service
	codec   *security.TokenCodec
}

func NewAuthenticator(service ports.Service, codec *security.TokenCodec) *Authenticator {
	return &Authenticator{service: service, codec: codec}
}

// RequireLogin refuses requests without a valid access token.
func (a *Authenticator) RequireLogin(c *gin.Context) {
	principal, ok := a.authenticate(c)
	if !ok {
		apierrors.DomainResponder.Respond(c, apierrors.ErrUnauthorized.WithDetail("a valid access token is required"))
		c.Abort()
		return
	}
	authn.Set(c, principal)
	c.Next()
}

// Identify sets the principal when the request carries a valid access token and
// lets anonymous requests through.
func (a *Authenticator) Identify(c *gin.Context) {
	if principal, ok := a.authenticate(c); ok {
		authn.Set(c, principal)
	}
	c.Next()
}

func (a *Authenticator) authenticate(c *gin.Context) (authn.Principal, bool) {
	raw := bearerToken(c)
	if raw == "" {
		raw, _ = c.Cookie(accessTokenCookie)
	}
	if raw == "" {
		return authn.Principal{}, false
	}
	claims, err := a.codec.ParseAccess(raw)
	if err != nil {
		return authn.Principal{}, false
	}
	token, err := a.service.VerifyAccessToken(c.Request.Context(), ports.VerifyAccessTokenCommand{Identifier: claims.ID})
	if err != nil {
		return authn.Principal{}, false
	}
	return authn.Principal{
		Owner:   token.User.Owner(),
		Admin:   token.User.Admin,
		TokenID: token.Identifier.String(),
	}, true
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
