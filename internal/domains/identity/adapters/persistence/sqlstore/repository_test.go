package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/domains/identity/adapters/persistence/sqlstore"
	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/domains/identity/identitytest"
	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/platform/database/databasetest"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

func TestUserAccountRepository(t *testing.T) {
	ctx := context.Background()
	db := databasetest.New(t)
	account := identitytest.CreateUserAccount(t, db, "jigoro@kwai.test", "Hajime!", true)
	repo := sqlstore.NewUserAccountRepository(db)

	email, err := kernel.NewEmailAddress("jigoro@kwai.test")
	require.NoError(t, err)
	found, err := repo.Get(ctx, repo.CreateQuery().FilterByEmail(email))
	require.NoError(t, err)
	require.Equal(t, account.UUID, found.UUID)
	require.True(t, found.Admin)
	require.True(t, found.Password.Verify("Hajime!"))

	found, ok := found.Login("wrong")
	require.False(t, ok)
	require.NoError(t, repo.Update(ctx, found))

	found, err = repo.Get(ctx, repo.CreateQuery().FilterByUUID(account.UUID))
	require.NoError(t, err)
	require.False(t, found.LastUnsuccessfulLogin.IsEmpty())

	_, err = repo.Get(ctx, repo.CreateQuery().FilterByUUID(kernel.NewUniqueID()))
	require.ErrorIs(t, err, ports.ErrUserAccountNotFound)
	require.ErrorIs(t, err, kernel.ErrNotFound)

	count, err := repo.CreateQuery().Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestTokenRepositories(t *testing.T) {
	ctx := context.Background()
	db := databasetest.New(t)
	account := identitytest.CreateUserAccount(t, db, "jigoro@kwai.test", "Hajime!", false)
	accessTokens := sqlstore.NewAccessTokenRepository(db)
	refreshTokens := sqlstore.NewRefreshTokenRepository(db)

	access, err := accessTokens.Create(ctx, domain.NewAccessToken(account, time.Hour))
	require.NoError(t, err)
	refresh, err := refreshTokens.Create(ctx, domain.NewRefreshToken(access, 24*time.Hour))
	require.NoError(t, err)

	loaded, err := refreshTokens.GetByIdentifier(ctx, refresh.Identifier)
	require.NoError(t, err)
	require.Equal(t, access.Identifier, loaded.AccessToken.Identifier)
	require.Equal(t, account.UUID, loaded.AccessToken.User.UUID)

	loaded = loaded.Revoke()
	require.NoError(t, refreshTokens.Update(ctx, loaded))
	require.NoError(t, accessTokens.Update(ctx, loaded.AccessToken))

	revoked, err := accessTokens.GetByIdentifier(ctx, access.Identifier)
	require.NoError(t, err)
	require.True(t, revoked.Revoked)

	// The access token is kept as long as its refresh token exists.
	purged, err := accessTokens.Purge(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.Zero(t, purged)

	purged, err = refreshTokens.Purge(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.EqualValues(t, 1, purged)
	purged, err = accessTokens.Purge(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.EqualValues(t, 1, purged)

	_, err = accessTokens.GetByIdentifier(ctx, access.Identifier)
	require.ErrorIs(t, err, ports.ErrAccessTokenNotFound)
}

func TestUserInvitationRepository(t *testing.T) {
	ctx := context.Background()
	db := databasetest.New(t)
	inviter := identitytest.CreateUserAccount(t, db, "jigoro@kwai.test", "Hajime!", true)
	repo := sqlstore.NewUserInvitationRepository(db)
	email, err := kernel.NewEmailAddress("kyuzo@kwai.test")
	require.NoError(t, err)

	invitation, err := repo.Create(ctx, domain.UserInvitation{
		UUID:          kernel.NewUniqueID(),
		Email:         email,
		Name:          kernel.Name{FirstName: "Kyuzo", LastName: "Mifune"},
		ExpiredAt:     kernel.Now().Add(7 * 24 * time.Hour),
		InvitedBy:     inviter.Owner(),
		TraceableTime: kernel.NewTraceableTime(),
	})
	require.NoError(t, err)

	active := repo.CreateQuery().FilterByEmail(email).FilterActive().FilterNotExpired(time.Now().UTC())
	count, err := active.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	found, err := repo.Get(ctx, repo.CreateQuery().FilterByUUID(invitation.UUID))
	require.NoError(t, err)
	require.Equal(t, inviter.UUID, found.InvitedBy.UUID)
	require.Equal(t, "Jigoro Kano", found.InvitedBy.Name.String())

	confirmed, err := found.Confirm()
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, confirmed))
	count, err = active.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	require.NoError(t, repo.Delete(ctx, confirmed))
	_, err = repo.Get(ctx, repo.CreateQuery().FilterByID(invitation.ID()))
	require.ErrorIs(t, err, ports.ErrUserInvitationNotFound)
}

func TestUserRecoveryRepository(t *testing.T) {
	ctx := context.Background()
	db := databasetest.New(t)
	account := identitytest.CreateUserAccount(t, db, "jigoro@kwai.test", "Hajime!", false)
	repo := sqlstore.NewUserRecoveryRepository(db)

	recovery, err := repo.Create(ctx, domain.UserRecovery{
		UUID:          kernel.NewUniqueID(),
		User:          account,
		ExpiredAt:     kernel.Now().Add(2 * time.Hour),
		TraceableTime: kernel.NewTraceableTime(),
	})
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, recovery.MarkMailed()))
	found, err := repo.GetByUUID(ctx, recovery.UUID)
	require.NoError(t, err)
	require.True(t, found.IsMailed())
	require.Equal(t, account.Email, found.User.Email)

	_, err = repo.GetByUUID(ctx, kernel.NewUniqueID())
	require.ErrorIs(t, err, ports.ErrUserRecoveryNotFound)
}

func TestRevokeTokensByUser(t *testing.T) {
	ctx := context.Background()
	db := databasetest.New(t)
	jigoro := identitytest.CreateUserAccount(t, db, "jigoro@kwai.test", "Hajime!", false)
	kyuzo := identitytest.CreateUserAccount(t, db, "kyuzo@kwai.test", "Kuki-nage", false)
	accessTokens := sqlstore.NewAccessTokenRepository(db)
	refreshTokens := sqlstore.NewRefreshTokenRepository(db)

	issue := func(user domain.UserAccount) domain.RefreshToken {
		access, err := accessTokens.Create(ctx, domain.NewAccessToken(user, time.Hour))
		require.NoError(t, err)
		refresh, err := refreshTokens.Create(ctx, domain.NewRefreshToken(access, 24*time.Hour))
		require.NoError(t, err)
		return refresh
	}
	first, second, other := issue(jigoro), issue(jigoro), issue(kyuzo)

	require.NoError(t, accessTokens.RevokeByUser(ctx, jigoro))
	require.NoError(t, refreshTokens.RevokeByUser(ctx, jigoro))

	for _, token := range []domain.RefreshToken{first, second} {
		loaded, err := refreshTokens.GetByIdentifier(ctx, token.Identifier)
		require.NoError(t, err)
		require.True(t, loaded.Revoked)
		require.True(t, loaded.AccessToken.Revoked)
		require.False(t, loaded.TraceableTime.UpdatedAt.IsEmpty())
	}
	loaded, err := refreshTokens.GetByIdentifier(ctx, other.Identifier)
	require.NoError(t, err)
	require.False(t, loaded.Revoked)
	require.False(t, loaded.AccessToken.Revoked)
}

func TestUserLogRepository(t *testing.T) {
	ctx := context.Background()
	db := databasetest.New(t)
	account := identitytest.CreateUserAccount(t, db, "jigoro@kwai.test", "Hajime!", false)
	access, err := sqlstore.NewAccessTokenRepository(db).Create(ctx, domain.NewAccessToken(account, time.Hour))
	require.NoError(t, err)
	refresh, err := sqlstore.NewRefreshTokenRepository(db).Create(ctx, domain.NewRefreshToken(access, time.Hour))
	require.NoError(t, err)
	repo := sqlstore.NewUserLogRepository(db)
	client := domain.Client{IP: "2001:db8::1", UserAgent: "kwai-test"}

	failed, err := repo.Create(ctx, domain.NewFailedLogin("jigoro@kwai.test", client, "invalid password"))
	require.NoError(t, err)
	require.False(t, failed.ID().IsEmpty())
	_, err = repo.Create(ctx, domain.NewSuccessfulLogin("jigoro@kwai.test", refresh, client))
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.NewFailedLogin("nobody@kwai.test", client, "unknown user"))
	require.NoError(t, err)

	var logs []domain.UserLog
	for log, err := range repo.GetByEmail(ctx, "jigoro@kwai.test", 0, 0) {
		require.NoError(t, err)
		logs = append(logs, log)
	}
	require.Len(t, logs, 2)
	require.True(t, logs[0].Success)
	require.Equal(t, refresh.ID(), logs[0].RefreshToken)
	require.Equal(t, "2001:db8::1", logs[0].ClientIP)
	require.Empty(t, logs[0].Remark)
	require.False(t, logs[1].Success)
	require.True(t, logs[1].RefreshToken.IsEmpty())
	require.Equal(t, "invalid password", logs[1].Remark)
	require.Equal(t, "kwai-test", logs[1].UserAgent)
}
