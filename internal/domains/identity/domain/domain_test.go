package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

func account(t *testing.T) domain.UserAccount {
	t.Helper()
	password, err := kernel.HashPassword("hajime")
	require.NoError(t, err)
	email, err := kernel.NewEmailAddress("jigoro@kwai.test")
	require.NoError(t, err)
	return domain.UserAccount{
		UUID:     kernel.NewUniqueID(),
		Email:    email,
		Name:     kernel.Name{FirstName: "Jigoro", LastName: "Kano"},
		Password: password,
	}
}

func TestLoginRecordsAttempts(t *testing.T) {
	user := account(t)

	failed, ok := user.Login("matte")
	require.False(t, ok)
	require.False(t, failed.LastUnsuccessfulLogin.IsEmpty())
	require.True(t, failed.LastLogin.IsEmpty())

	succeeded, ok := user.Login("hajime")
	require.True(t, ok)
	require.False(t, succeeded.LastLogin.IsEmpty())
	require.True(t, user.LastLogin.IsEmpty())
}

func TestRevokedAccountCannotLogin(t *testing.T) {
	user := account(t)
	user.Revoked = true
	_, ok := user.Login("hajime")
	require.False(t, ok)

	_, err := user.ResetPassword(kernel.PasswordFromHash("x"))
	require.ErrorIs(t, err, kernel.ErrForbidden)
}

func TestRevokeAndEnactAccount(t *testing.T) {
	user := account(t)
	revoked := user.Revoke()
	require.True(t, revoked.Revoked)
	require.False(t, user.Revoked)
	_, ok := revoked.Login("hajime")
	require.False(t, ok)

	enacted := revoked.Enact()
	require.False(t, enacted.Revoked)
	_, ok = enacted.Login("hajime")
	require.True(t, ok)
}

func TestRefreshTokenRenewAndRevoke(t *testing.T) {
	access := domain.NewAccessToken(account(t), time.Hour)
	refresh := domain.NewRefreshToken(access, 24*time.Hour)
	require.Len(t, refresh.Identifier.String(), 80)

	renewed := refresh.Renew(48*time.Hour, 2*time.Hour)
	require.NotEqual(t, refresh.Identifier, renewed.Identifier)
	require.NotEqual(t, refresh.AccessToken.Identifier, renewed.AccessToken.Identifier)
	require.True(t, refresh.Expiration.Before(renewed.Expiration))

	revoked := renewed.Revoke()
	require.True(t, revoked.Revoked)
	require.True(t, revoked.AccessToken.Revoked)
	require.False(t, renewed.Revoked)
}

func TestInvitationConfirm(t *testing.T) {
	invitation := domain.UserInvitation{UUID: kernel.NewUniqueID(), ExpiredAt: kernel.Now().Add(time.Hour)}
	confirmed, err := invitation.Confirm()
	require.NoError(t, err)
	require.True(t, confirmed.IsConfirmed())

	_, err = confirmed.Confirm()
	require.ErrorIs(t, err, kernel.ErrUnprocessable)

	expired := domain.UserInvitation{UUID: kernel.NewUniqueID(), ExpiredAt: kernel.Now().Add(-time.Hour)}
	_, err = expired.Confirm()
	require.ErrorIs(t, err, kernel.ErrUnprocessable)
	require.ErrorIs(t, expired.CanMail(), kernel.ErrUnprocessable)

	_, err = invitation.Revoke().Confirm()
	require.ErrorIs(t, err, kernel.ErrUnprocessable)
	require.False(t, invitation.Revoked)
}

func TestRecoveryMailOnlyOnce(t *testing.T) {
	recovery := domain.UserRecovery{UUID: kernel.NewUniqueID(), ExpiredAt: kernel.Now().Add(time.Hour)}
	require.NoError(t, recovery.CanMail())
	require.ErrorIs(t, recovery.MarkMailed().CanMail(), kernel.ErrUnprocessable)
}
