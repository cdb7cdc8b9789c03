package security_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/platform/security"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

func newCodec(t *testing.T) *security.TokenCodec {
	t.Helper()
	codec, err := security.NewTokenCodec("access-secret", "refresh-secret")
	require.NoError(t, err)
	return codec
}

func TestAccessTokenRoundTrip(t *testing.T) {
	codec := newCodec(t)
	now := time.Now().Truncate(time.Second)
	signed, err := codec.SignAccess(security.Claims{ID: "abc", Subject: "user", IssuedAt: now, ExpiresAt: now.Add(time.Hour)})
	require.NoError(t, err)

	claims, err := codec.ParseAccess(signed)
	require.NoError(t, err)
	require.Equal(t, "abc", claims.ID)
	require.Equal(t, "user", claims.Subject)
	require.True(t, claims.ExpiresAt.Equal(now.Add(time.Hour)))
}

func TestRefreshSecretIsNotAccepted(t *testing.T) {
	codec := newCodec(t)
	now := time.Now()
	signed, err := codec.SignRefresh(security.Claims{ID: "abc", IssuedAt: now, ExpiresAt: now.Add(time.Hour)})
	require.NoError(t, err)

	_, err = codec.ParseAccess(signed)
	require.ErrorIs(t, err, kernel.ErrAuthentication)
	_, err = codec.ParseRefresh(signed)
	require.NoError(t, err)
}

func TestExpiredToken(t *testing.T) {
	codec := newCodec(t)
	past := time.Now().Add(-2 * time.Hour)
	signed, err := codec.SignAccess(security.Claims{ID: "abc", IssuedAt: past, ExpiresAt: past.Add(time.Hour)})
	require.NoError(t, err)

	_, err = codec.ParseAccess(signed)
	require.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestMissingSecrets(t *testing.T) {
	_, err := security.NewTokenCodec("", "refresh")
	require.Error(t, err)
}
