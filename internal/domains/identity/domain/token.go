package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

// TokenIdentifier is the random value stored with a token and carried as jti in the JWT.
type TokenIdentifier string

// NewTokenIdentifier generates 40 random bytes as hexadecimal text.
func NewTokenIdentifier() TokenIdentifier {
	buf := make([]byte, 40)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("token identifier: %v", err))
	}
	return TokenIdentifier(hex.EncodeToString(buf))
}

func (t TokenIdentifier) String() string { return string(t) }

type AccessTokenIdentifier = kernel.IntIdentifier

type AccessToken struct {
	kernel.Entity[AccessTokenIdentifier]
	Identifier TokenIdentifier
	Expiration kernel.Timestamp
	User       UserAccount
	Revoked    bool
	kernel.TraceableTime
}

func NewAccessToken(user UserAccount, expiry time.Duration) AccessToken {
	return AccessToken{
		Identifier:    NewTokenIdentifier(),
		Expiration:    kernel.Now().Add(expiry),
		User:          user,
		TraceableTime: kernel.NewTraceableTime(),
	}
}

func (t AccessToken) IsExpired() bool {
	return t.Expiration.IsPast()
}

func (t AccessToken) Revoke() AccessToken {
	return kernel.Replace(t, func(token *AccessToken) {
		token.Revoked = true
		token.TraceableTime = token.MarkForUpdate()
	})
}

// Renew gives the token a new identifier and expiration.
func (t AccessToken) Renew(expiry time.Duration) AccessToken {
	return kernel.Replace(t, func(token *AccessToken) {
		token.Identifier = NewTokenIdentifier()
		token.Expiration = kernel.Now().Add(expiry)
		token.TraceableTime = token.MarkForUpdate()
	})
}

type RefreshTokenIdentifier = kernel.IntIdentifier

// RefreshToken allows a client to get a new access token without logging in again.
type RefreshToken struct {
	kernel.Entity[RefreshTokenIdentifier]
	Identifier  TokenIdentifier
	Expiration  kernel.Timestamp
	AccessToken AccessToken
	Revoked     bool
	kernel.TraceableTime
}

func NewRefreshToken(access AccessToken, expiry time.Duration) RefreshToken {
	return RefreshToken{
		Identifier:    NewTokenIdentifier(),
		Expiration:    kernel.Now().Add(expiry),
		AccessToken:   access,
		TraceableTime: kernel.NewTraceableTime(),
	}
}

func (t RefreshToken) IsExpired() bool {
	return t.Expiration.IsPast()
}

// Revoke revokes the refresh token and its access token.
func (t RefreshToken) Revoke() RefreshToken {
	return kernel.Replace(t, func(token *RefreshToken) {
		token.Revoked = true
		token.AccessToken = token.AccessToken.Revoke()
		token.TraceableTime = token.MarkForUpdate()
	})
}

// Renew renews the refresh token together with its access token.
func (t RefreshToken) Renew(refreshExpiry, accessExpiry time.Duration) RefreshToken {
	return kernel.Replace(t, func(token *RefreshToken) {
		token.Identifier = NewTokenIdentifier()
		token.Expiration = kernel.Now().Add(refreshExpiry)
		token.AccessToken = token.AccessToken.Renew(accessExpiry)
		token.TraceableTime = token.MarkForUpdate()
	})
}
