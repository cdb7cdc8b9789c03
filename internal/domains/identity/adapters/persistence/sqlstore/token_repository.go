package sqlstore

import (
	"context"
	"time"

	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	_ ports.AccessTokenRepository  = (*AccessTokenRepository)(nil)
	_ ports.RefreshTokenRepository = (*RefreshTokenRepository)(nil)
)

// AccessTokenRepository stores access tokens in oauth_access_tokens.
type AccessTokenRepository struct {
	db *database.Database
}

func NewAccessTokenRepository(db *database.Database) *AccessTokenRepository {
	return &AccessTokenRepository{db: db}
}

func (r *AccessTokenRepository) GetByIdentifier(ctx context.Context, identifier domain.TokenIdentifier) (domain.AccessToken, error) {
	columns := append(accessTokensTable.Aliases(), usersTable.Aliases()...)
	filter := accessTokensTable.Select().
		Join(usersTable.Ref(), usersTable.Column("id")+" = "+accessTokensTable.Column("user_id")).
		Columns(columns...).
		Where(accessTokensTable.Column("identifier")+" = ?", identifier.String())
	row, ok, err := database.FetchOne[accessTokenQueryRow](ctx, database.NewQuery(r.db, filter, accessTokensTable.Column("id")))
	if err != nil {
		return domain.AccessToken{}, err
	}
	if !ok {
		return domain.AccessToken{}, ports.ErrAccessTokenNotFound
	}
	return row.toDomain()
}

func (r *AccessTokenRepository) Create(ctx context.Context, token domain.AccessToken) (domain.AccessToken, error) {
	id, err := r.db.Insert(ctx, accessTokensTable.Name(), ptr(newAccessTokenRow(token)))
	if err != nil {
		return domain.AccessToken{}, err
	}
	token.Entity = token.WithID(kernel.NewIntIdentifier(id))
	return token, nil
}

func (r *AccessTokenRepository) Update(ctx context.Context, token domain.AccessToken) error {
	return r.db.Update(ctx, accessTokensTable.Name(), byID(token.ID()), ptr(newAccessTokenRow(token)))
}

func (r *AccessTokenRepository) RevokeByUser(ctx context.Context, user domain.UserAccount) error {
	return r.db.Execute(ctx, "UPDATE "+accessTokensTable.Name()+" SET revoked = ?, updated_at = ? WHERE user_id = ?",
		1, kernel.Now().Time(), user.ID().Value())
}

func (r *AccessTokenRepository) Purge(ctx context.Context, before time.Time) (int64, error) {
	referenced := refreshTokensTable.Select().Columns(refreshTokensTable.Column("access_token_id"))
	return r.db.DeleteCount(ctx, accessTokensTable.Name(), database.Where(
		"(expiration < ? OR revoked = ?) AND id NOT IN (?)", before, 1, referenced,
	))
}

// RefreshTokenRepository stores refresh tokens in oauth_refresh_tokens.
type RefreshTokenRepository struct {
	db *database.Database
}

func NewRefreshTokenRepository(db *database.Database) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) GetByIdentifier(ctx context.Context, identifier domain.TokenIdentifier) (domain.RefreshToken, error) {
	columns := append(refreshTokensTable.Aliases(), accessTokensTable.Aliases()...)
	columns = append(columns, usersTable.Aliases()...)
	filter := refreshTokensTable.Select().
		Join(accessTokensTable.Ref(), accessTokensTable.Column("id")+" = "+refreshTokensTable.Column("access_token_id")).
		Join(usersTable.Ref(), usersTable.Column("id")+" = "+accessTokensTable.Column("user_id")).
		Columns(columns...).
		Where(refreshTokensTable.Column("identifier")+" = ?", identifier.String())
	row, ok, err := database.FetchOne[refreshTokenQueryRow](ctx, database.NewQuery(r.db, filter, refreshTokensTable.Column("id")))
	if err != nil {
		return domain.RefreshToken{}, err
	}
	if !ok {
		return domain.RefreshToken{}, ports.ErrRefreshTokenNotFound
	}
	return row.toDomain()
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token domain.RefreshToken) (domain.RefreshToken, error) {
	id, err := r.db.Insert(ctx, refreshTokensTable.Name(), ptr(newRefreshTokenRow(token)))
	if err != nil {
		return domain.RefreshToken{}, err
	}
	token.Entity = token.WithID(kernel.NewIntIdentifier(id))
	return token, nil
}

func (r *RefreshTokenRepository) Update(ctx context.Context, token domain.RefreshToken) error {
	return r.db.Update(ctx, refreshTokensTable.Name(), byID(token.ID()), ptr(newRefreshTokenRow(token)))
}

// RevokeByUser revokes the refresh tokens issued with an access token of the user.
func (r *RefreshTokenRepository) RevokeByUser(ctx context.Context, user domain.UserAccount) error {
	owned := accessTokensTable.Select().
		Columns(accessTokensTable.Column("id")).
		Where(accessTokensTable.Column("user_id")+" = ?", user.ID().Value())
	return r.db.Execute(ctx, "UPDATE "+refreshTokensTable.Name()+" SET revoked = ?, updated_at = ? WHERE access_token_id IN (?)",
		1, kernel.Now().Time(), owned)
}

func (r *RefreshTokenRepository) Purge(ctx context.Context, before time.Time) (int64, error) {
	return r.db.DeleteCount(ctx, refreshTokensTable.Name(), database.Where("expiration < ? OR revoked = ?", before, 1))
}
