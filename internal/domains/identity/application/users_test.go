package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/domains/identity/adapters/persistence/sqlstore"
	"github.com/fbraem/kwai/internal/domains/identity/application"
	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/shared/kernel"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

func (f fixture) logs(t *testing.T, email string) []domain.UserLog {
	t.Helper()
	var logs []domain.UserLog
	for log, err := range sqlstore.NewUserLogRepository(f.db).GetByEmail(context.Background(), email, 0, 0) {
		require.NoError(t, err)
		logs = append(logs, log)
	}
	return logs
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	account, err := f.service.CreateUser(ctx, ports.CreateUserCommand{
		Email:     "kyuzo@kwai.test",
		FirstName: "Kyuzo",
		LastName:  "Mifune",
		Password:  "Kuki-nage",
		Remark:    "created from the command line",
	})
	require.NoError(t, err)
	require.False(t, account.ID().IsEmpty())
	require.False(t, account.Admin)

	_, err = f.service.AuthenticateUser(ctx, ports.AuthenticateUserCommand{Email: "kyuzo@kwai.test", Password: "Kuki-nage"})
	require.NoError(t, err)

	_, err = f.service.CreateUser(ctx, ports.CreateUserCommand{
		Email: "kyuzo@kwai.test", FirstName: "Kyuzo", LastName: "Mifune", Password: "other",
	})
	require.ErrorIs(t, err, kernel.ErrUnprocessable)

	_, err = f.service.CreateUser(ctx, ports.CreateUserCommand{Email: "ippon@kwai.test", FirstName: "Ippon", Password: "x"})
	require.ErrorIs(t, err, application.ErrInvalidInput)
	_, err = f.service.CreateUser(ctx, ports.CreateUserCommand{Email: "nope", FirstName: "N", LastName: "O", Password: "x"})
	require.ErrorIs(t, err, kernel.ErrValidation)
}

func TestRevokeUserInvalidatesTokens(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	refresh, err := f.service.AuthenticateUser(ctx, ports.AuthenticateUserCommand{Email: "jigoro@kwai.test", Password: "Hajime!"})
	require.NoError(t, err)

	var revoked presenter.Single[domain.UserAccount]
	require.NoError(t, f.service.RevokeUser(ctx, ports.RevokeUserCommand{UUID: f.admin.UUID.String()}, &revoked))
	account, ok := revoked.Value()
	require.True(t, ok)
	require.True(t, account.Revoked)

	token, err := sqlstore.NewRefreshTokenRepository(f.db).GetByIdentifier(ctx, refresh.Identifier)
	require.NoError(t, err)
	require.True(t, token.Revoked)
	require.True(t, token.AccessToken.Revoked)

	_, err = f.service.VerifyAccessToken(ctx, ports.VerifyAccessTokenCommand{Identifier: refresh.AccessToken.Identifier.String()})
	require.ErrorIs(t, err, application.ErrInvalidToken)
	_, err = f.service.RefreshAccessToken(ctx, ports.RefreshAccessTokenCommand{Identifier: refresh.Identifier.String()})
	require.ErrorIs(t, err, application.ErrInvalidToken)
	_, err = f.service.AuthenticateUser(ctx, ports.AuthenticateUserCommand{Email: "jigoro@kwai.test", Password: "Hajime!"})
	require.ErrorIs(t, err, application.ErrInvalidCredentials)

	var enacted presenter.Single[domain.UserAccount]
	require.NoError(t, f.service.EnactUser(ctx, ports.EnactUserCommand{UUID: f.admin.UUID.String()}, &enacted))
	account, ok = enacted.Value()
	require.True(t, ok)
	require.False(t, account.Revoked)

	// Enacting doesn't bring back the revoked tokens.
	_, err = f.service.RefreshAccessToken(ctx, ports.RefreshAccessTokenCommand{Identifier: refresh.Identifier.String()})
	require.ErrorIs(t, err, application.ErrInvalidToken)
	_, err = f.service.AuthenticateUser(ctx, ports.AuthenticateUserCommand{Email: "jigoro@kwai.test", Password: "Hajime!"})
	require.NoError(t, err)

	err = f.service.RevokeUser(ctx, ports.RevokeUserCommand{UUID: kernel.NewUniqueID().String()}, &revoked)
	require.ErrorIs(t, err, ports.ErrUserAccountNotFound)
	err = f.service.EnactUser(ctx, ports.EnactUserCommand{UUID: "not-a-uuid"}, &enacted)
	require.ErrorIs(t, err, kernel.ErrNotFound)
}

func TestLoginsAreLogged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	client := func(command ports.AuthenticateUserCommand) ports.AuthenticateUserCommand {
		command.ClientIP = "192.0.2.10"
		command.UserAgent = "kwai-test"
		return command
	}

	_, err := f.service.AuthenticateUser(ctx, client(ports.AuthenticateUserCommand{Email: "jigoro@kwai.test", Password: "wrong"}))
	require.ErrorIs(t, err, application.ErrInvalidCredentials)
	_, err = f.service.AuthenticateUser(ctx, client(ports.AuthenticateUserCommand{Email: "nobody@kwai.test", Password: "wrong"}))
	require.ErrorIs(t, err, application.ErrInvalidCredentials)
	refresh, err := f.service.AuthenticateUser(ctx, client(ports.AuthenticateUserCommand{Email: "jigoro@kwai.test", Password: "Hajime!"}))
	require.NoError(t, err)

	logs := f.logs(t, "jigoro@kwai.test")
	require.Len(t, logs, 2)
	require.True(t, logs[0].Success)
	require.Equal(t, refresh.ID(), logs[0].RefreshToken)
	require.Equal(t, "192.0.2.10", logs[0].ClientIP)
	require.Equal(t, "kwai-test", logs[0].UserAgent)
	require.False(t, logs[1].Success)
	require.Equal(t, "invalid password", logs[1].Remark)
	require.True(t, logs[1].RefreshToken.IsEmpty())

	unknown := f.logs(t, "nobody@kwai.test")
	require.Len(t, unknown, 1)
	require.Equal(t, "unknown user", unknown[0].Remark)

	require.NoError(t, f.service.Logout(ctx, ports.LogoutCommand{Identifier: refresh.Identifier.String()}))
	_, err = f.service.RefreshAccessToken(ctx, ports.RefreshAccessTokenCommand{Identifier: refresh.Identifier.String()})
	require.ErrorIs(t, err, application.ErrInvalidToken)
	logs = f.logs(t, "jigoro@kwai.test")
	require.Len(t, logs, 3)
	require.False(t, logs[0].Success)
	require.Equal(t, "refresh token is revoked", logs[0].Remark)
}

func TestRecreateUserInvitation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	original := f.invite(t, "kyuzo@kwai.test")

	var recreated presenter.Single[domain.UserInvitation]
	require.NoError(t, f.service.RecreateUserInvitation(ctx, ports.RecreateUserInvitationCommand{
		UUID:   original.UUID.String(),
		Remark: "second try",
		Owner:  f.admin.Owner(),
	}, &recreated))
	invitation, ok := recreated.Value()
	require.True(t, ok)
	require.NotEqual(t, original.UUID, invitation.UUID)
	require.Equal(t, original.Email, invitation.Email)
	require.Equal(t, original.Name, invitation.Name)
	require.Equal(t, "second try", invitation.Remark)
	require.False(t, invitation.Revoked)

	require.Len(t, f.publisher.events, 2)
	require.Equal(t, invitation.UUID.String(), f.publisher.events[1].UUID)

	var found presenter.Single[domain.UserInvitation]
	require.NoError(t, f.service.GetUserInvitation(ctx, ports.GetUserInvitationCommand{UUID: original.UUID.String()}, &found))
	revoked, _ := found.Value()
	require.True(t, revoked.Revoked)

	// The new invitation is pending, so the original can't be recreated twice.
	err := f.service.RecreateUserInvitation(ctx, ports.RecreateUserInvitationCommand{
		UUID: original.UUID.String(), Owner: f.admin.Owner(),
	}, &recreated)
	require.ErrorIs(t, err, kernel.ErrUnprocessable)
	require.Len(t, f.publisher.events, 2)
}

func TestRecreateInvitationOfExistingUserIsRefused(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	original := f.invite(t, "kyuzo@kwai.test")
	_, err := f.service.CreateUser(ctx, ports.CreateUserCommand{
		Email: "kyuzo@kwai.test", FirstName: "Kyuzo", LastName: "Mifune", Password: "Kuki-nage",
	})
	require.NoError(t, err)

	var recreated presenter.Single[domain.UserInvitation]
	err = f.service.RecreateUserInvitation(ctx, ports.RecreateUserInvitationCommand{
		UUID: original.UUID.String(), Owner: f.admin.Owner(),
	}, &recreated)
	require.ErrorIs(t, err, kernel.ErrUnprocessable)
}
