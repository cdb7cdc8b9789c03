// Package security signs and verifies the JSON web tokens handed to browsers.
package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

// ErrInvalidToken is returned for tokens that are malformed, expired or signed with another secret.
var ErrInvalidToken = fmt.Errorf("%w: invalid token", kernel.ErrAuthentication)

// Claims are the registered claims kwai puts in a token. ID holds the identifier
// of the stored access or refresh token.
type Claims struct {
	ID        string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenCodec signs access tokens and refresh tokens with separate HS256 secrets.
type TokenCodec struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewTokenCodec(accessSecret, refreshSecret string) (*TokenCodec, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("jwt secrets are required")
	}
	return &TokenCodec{accessSecret: []byte(accessSecret), refreshSecret: []byte(refreshSecret)}, nil
}

func (c *TokenCodec) SignAccess(claims Claims) (string, error) {
	return sign(claims, c.accessSecret)
}

func (c *TokenCodec) SignRefresh(claims Claims) (string, error) {
	return sign(claims, c.refreshSecret)
}

func (c *TokenCodec) ParseAccess(raw string) (Claims, error) {
	return parse(raw, c.accessSecret)
}

func (c *TokenCodec) ParseRefresh(raw string) (Claims, error) {
	return parse(raw, c.refreshSecret)
}

func sign(claims Claims, secret []byte) (string, error) {
	registered := jwt.RegisteredClaims{
		ID:        claims.ID,
		Subject:   claims.Subject,
		IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, registered).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func parse(raw string, secret []byte) (Claims, error) {
	var registered jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(raw, &registered, func(token *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if registered.ID == "" {
		return Claims{}, fmt.Errorf("%w: missing jti", ErrInvalidToken)
	}
	claims := Claims{ID: registered.ID, Subject: registered.Subject}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}
	claims.ExpiresAt = registered.ExpiresAt.Time
	return claims, nil
}
