// Package handlers exposes the identity use cases over HTTP.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/platform/security"
	apierrors "github.com/fbraem/kwai/internal/shared/errors"
)

const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"
	// loginCookie can be read by scripts to know that a user is logged in.
	loginCookie = "kwai"
)

// CookieOptions controls the cookies holding the tokens.
type CookieOptions struct {
	Domain string
	Secure bool
}

// AuthHandler serves /auth. Tokens are returned in the body and as HttpOnly cookies.
type AuthHandler struct {
	service ports.Service
	codec   *security.TokenCodec
	cookies CookieOptions
}

func NewAuthHandler(service ports.Service, codec *security.TokenCodec, cookies CookieOptions) *AuthHandler {
	return &AuthHandler{service: service, codec: codec, cookies: cookies}
}

// Register adds the routes to group. Managing invitations and users needs a login.
func (h *AuthHandler) Register(group *gin.RouterGroup, requireLogin gin.HandlerFunc) {
	auth := group.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
	auth.POST("/access_token", h.RenewAccessToken)
	auth.POST("/recover", h.Recover)
	auth.POST("/reset", h.Reset)

	invitations := &InvitationHandler{service: h.service}
	auth.GET("/invitations", requireLogin, invitations.GetUserInvitations)
	auth.POST("/invitations", requireLogin, invitations.CreateUserInvitation)
	auth.GET("/invitations/:uuid", invitations.GetUserInvitation)
	auth.DELETE("/invitations/:uuid", requireLogin, invitations.DeleteUserInvitation)
	auth.POST("/invitations/:uuid/accept", invitations.AcceptUserInvitation)
	auth.POST("/invitations/:uuid/recreate", requireLogin, invitations.RecreateUserInvitation)

	users := &UserHandler{service: h.service}
	auth.GET("/users", requireLogin, users.GetUserAccounts)
	auth.POST("/revoked_users", requireLogin, users.RevokeUser)
	auth.DELETE("/revoked_users/:uuid", requireLogin, users.EnactUser)
}

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// TokenResponse is the body of a successful login or token renewal.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Expiration   string `json:"expiration"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		apierrors.DomainResponder.Respond(c, apierrors.ErrUnauthorized.WithDetail("username and password are required"))
		return
	}
	refresh, err := h.service.AuthenticateUser(c.Request.Context(), ports.AuthenticateUserCommand{
		Email:     form.Username,
		Password:  form.Password,
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	h.respondTokens(c, refresh)
}

func (h *AuthHandler) RenewAccessToken(c *gin.Context) {
	claims, ok := h.refreshClaims(c)
	if !ok {
		return
	}
	refresh, err := h.service.RefreshAccessToken(c.Request.Context(), ports.RefreshAccessTokenCommand{
		Identifier: claims.ID,
		ClientIP:   c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	h.respondTokens(c, refresh)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := h.refreshClaims(c)
	if !ok {
		return
	}
	if err := h.service.Logout(c.Request.Context(), ports.LogoutCommand{Identifier: claims.ID}); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	h.clearCookies(c)
	c.Status(http.StatusOK)
}

// Recover always answers 200, so the response doesn't reveal whether the email
// belongs to a user.
func (h *AuthHandler) Recover(c *gin.Context) {
	email := c.PostForm("email")
	if err := h.service.RecoverUser(c.Request.Context(), ports.RecoverUserCommand{Email: email}); err != nil {
		_ = c.Error(err)
	}
	c.Status(http.StatusOK)
}

type resetForm struct {
	UUID     string `form:"uuid" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (h *AuthHandler) Reset(c *gin.Context) {
	var form resetForm
	if err := c.ShouldBind(&form); err != nil {
		apierrors.DomainResponder.BadRequest(c, "uuid and password are required")
		return
	}
	if err := h.service.ResetPassword(c.Request.Context(), ports.ResetPasswordCommand{UUID: form.UUID, Password: form.Password}); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// refreshClaims reads the refresh token from the form or from its cookie.
func (h *AuthHandler) refreshClaims(c *gin.Context) (security.Claims, bool) {
	raw := c.PostForm(refreshTokenCookie)
	if raw == "" {
		raw, _ = c.Cookie(refreshTokenCookie)
	}
	if raw == "" {
		apierrors.DomainResponder.Respond(c, apierrors.ErrUnauthorized.WithDetail("a refresh token is required"))
		return security.Claims{}, false
	}
	claims, err := h.codec.ParseRefresh(raw)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return security.Claims{}, false
	}
	return claims, true
}

func (h *AuthHandler) respondTokens(c *gin.Context, refresh domain.RefreshToken) {
	now := time.Now()
	access := refresh.AccessToken
	accessJWT, err := h.codec.SignAccess(security.Claims{
		ID:        access.Identifier.String(),
		Subject:   access.User.UUID.String(),
		IssuedAt:  now,
		ExpiresAt: access.Expiration.Time(),
	})
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	refreshJWT, err := h.codec.SignRefresh(security.Claims{
		ID:        refresh.Identifier.String(),
		IssuedAt:  now,
		ExpiresAt: refresh.Expiration.Time(),
	})
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, accessJWT, maxAge(access.Expiration.Time()), "/", h.cookies.Domain, h.cookies.Secure, true)
	c.SetCookie(refreshTokenCookie, refreshJWT, maxAge(refresh.Expiration.Time()), "/", h.cookies.Domain, h.cookies.Secure, true)
	c.SetCookie(loginCookie, "Y", maxAge(refresh.Expiration.Time()), "/", h.cookies.Domain, h.cookies.Secure, false)
	c.JSON(http.StatusOK, TokenResponse{
		AccessToken:  accessJWT,
		RefreshToken: refreshJWT,
		Expiration:   access.Expiration.String(),
	})
}

func (h *AuthHandler) clearCookies(c *gin.Context) {
	for _, name := range []string{accessTokenCookie, refreshTokenCookie, loginCookie} {
		c.SetCookie(name, "", -1, "/", h.cookies.Domain, h.cookies.Secure, name != loginCookie)
	}
}

func maxAge(expiration time.Time) int {
	return int(time.Until(expiration).Seconds())
}
