// Package ports defines the contracts of the identity context.
package ports

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	ErrUserAccountNotFound    = fmt.Errorf("user account %w", kernel.ErrNotFound)
	ErrAccessTokenNotFound    = fmt.Errorf("access token %w", kernel.ErrNotFound)
	ErrRefreshTokenNotFound   = fmt.Errorf("refresh token %w", kernel.ErrNotFound)
	ErrUserInvitationNotFound = fmt.Errorf("user invitation %w", kernel.ErrNotFound)
	ErrUserRecoveryNotFound   = fmt.Errorf("user recovery %w", kernel.ErrNotFound)
)

type UserAccountQuery interface {
	FilterByID(id domain.UserAccountIdentifier) UserAccountQuery
	FilterByUUID(uuid kernel.UniqueID) UserAccountQuery
	FilterByEmail(email kernel.EmailAddress) UserAccountQuery
	Count(ctx context.Context) (int, error)
}

type UserAccountRepository interface {
	CreateQuery() UserAccountQuery
	Get(ctx context.Context, query UserAccountQuery) (domain.UserAccount, error)
	GetAll(ctx context.Context, query UserAccountQuery, limit, offset int) iter.Seq2[domain.UserAccount, error]
	Create(ctx context.Context, account domain.UserAccount) (domain.UserAccount, error)
	Update(ctx context.Context, account domain.UserAccount) error
}

// AccessTokenRepository loads tokens together with their user account.
type AccessTokenRepository interface {
	GetByIdentifier(ctx context.Context, identifier domain.TokenIdentifier) (domain.AccessToken, error)
	Create(ctx context.Context, token domain.AccessToken) (domain.AccessToken, error)
	Update(ctx context.Context, token domain.AccessToken) error
	// RevokeByUser revokes every access token of the user.
	RevokeByUser(ctx context.Context, user domain.UserAccount) error
	// Purge removes the tokens that expired before the given time or are revoked.
	// Access tokens still referenced by a refresh token are kept.
	Purge(ctx context.Context, before time.Time) (int64, error)
}

type RefreshTokenRepository interface {
	GetByIdentifier(ctx context.Context, identifier domain.TokenIdentifier) (domain.RefreshToken, error)
	Create(ctx context.Context, token domain.RefreshToken) (domain.RefreshToken, error)
	Update(ctx context.Context, token domain.RefreshToken) error
	RevokeByUser(ctx context.Context, user domain.UserAccount) error
	Purge(ctx context.Context, before time.Time) (int64, error)
}

type UserInvitationQuery interface {
	FilterByID(id domain.UserInvitationIdentifier) UserInvitationQuery
	FilterByUUID(uuid kernel.UniqueID) UserInvitationQuery
	FilterByEmail(email kernel.EmailAddress) UserInvitationQuery
	// FilterActive keeps the invitations that are not revoked and not yet accepted.
	FilterActive() UserInvitationQuery
	FilterNotExpired(now time.Time) UserInvitationQuery
	Count(ctx context.Context) (int, error)
}

type UserInvitationRepository interface {
	CreateQuery() UserInvitationQuery
	Get(ctx context.Context, query UserInvitationQuery) (domain.UserInvitation, error)
	GetAll(ctx context.Context, query UserInvitationQuery, limit, offset int) iter.Seq2[domain.UserInvitation, error]
	Create(ctx context.Context, invitation domain.UserInvitation) (domain.UserInvitation, error)
	Update(ctx context.Context, invitation domain.UserInvitation) error
	Delete(ctx context.Context, invitation domain.UserInvitation) error
}

type UserRecoveryRepository interface {
	GetByUUID(ctx context.Context, uuid kernel.UniqueID) (domain.UserRecovery, error)
	Create(ctx context.Context, recovery domain.UserRecovery) (domain.UserRecovery, error)
	Update(ctx context.Context, recovery domain.UserRecovery) error
}

type UserLogRepository interface {
	Create(ctx context.Context, log domain.UserLog) (domain.UserLog, error)
}

// EventPublisher hands domain events to whoever processes them.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}
