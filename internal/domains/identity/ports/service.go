package ports

import (
	"context"
	"time"

	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/shared/kernel"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

// AuthenticateUserCommand and RefreshAccessTokenCommand carry the client so the
// attempt can be written to the user log.
type AuthenticateUserCommand struct {
	Email     string
	Password  string
	ClientIP  string
	UserAgent string
}

// RefreshAccessTokenCommand and LogoutCommand carry the identifier of a refresh token.
type RefreshAccessTokenCommand struct {
	Identifier string
	ClientIP   string
	UserAgent  string
}

type LogoutCommand struct {
	Identifier string
}

type VerifyAccessTokenCommand struct {
	Identifier string
}

type InviteUserCommand struct {
	Email     string
	FirstName string
	LastName  string
	Remark    string
	// ExpirationDays defaults to 7.
	ExpirationDays int
	Owner          kernel.Owner
}

// RecreateUserInvitationCommand revokes the invitation with UUID and sends a new one
// to the same person.
type RecreateUserInvitationCommand struct {
	UUID           string
	Remark         string
	ExpirationDays int
	Owner          kernel.Owner
}

type GetUserInvitationsCommand struct {
	Limit  int
	Offset int
}

type GetUserInvitationCommand struct {
	UUID string
}

type DeleteUserInvitationCommand struct {
	UUID string
}

type AcceptUserInvitationCommand struct {
	UUID      string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Remark    string
}

type RecoverUserCommand struct {
	Email string
}

type ResetPasswordCommand struct {
	UUID     string
	Password string
}

type GetUserAccountsCommand struct {
	Limit  int
	Offset int
}

type RevokeUserCommand struct {
	UUID string
}

type EnactUserCommand struct {
	UUID string
}

type CreateUserCommand struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	Remark    string
}

type MailUserInvitationCommand struct {
	UUID string
}

type MailUserRecoveryCommand struct {
	UUID string
}

type PurgeTokensCommand struct {
	// Before removes tokens that expired before this time. Zero means now.
	Before time.Time
}

type PurgeTokensResult struct {
	AccessTokens  int64
	RefreshTokens int64
}

// Service exposes the identity use cases to the adapters.
type Service interface {
	AuthenticateUser(ctx context.Context, command AuthenticateUserCommand) (domain.RefreshToken, error)
	RefreshAccessToken(ctx context.Context, command RefreshAccessTokenCommand) (domain.RefreshToken, error)
	Logout(ctx context.Context, command LogoutCommand) error
	VerifyAccessToken(ctx context.Context, command VerifyAccessTokenCommand) (domain.AccessToken, error)

	InviteUser(ctx context.Context, command InviteUserCommand, p presenter.Presenter[domain.UserInvitation]) error
	GetUserInvitations(ctx context.Context, command GetUserInvitationsCommand, p presenter.AsyncPresenter[domain.UserInvitation]) error
	GetUserInvitation(ctx context.Context, command GetUserInvitationCommand, p presenter.Presenter[domain.UserInvitation]) error
	DeleteUserInvitation(ctx context.Context, command DeleteUserInvitationCommand) error
	RecreateUserInvitation(ctx context.Context, command RecreateUserInvitationCommand, p presenter.Presenter[domain.UserInvitation]) error
	AcceptUserInvitation(ctx context.Context, command AcceptUserInvitationCommand, p presenter.Presenter[domain.UserAccount]) error

	RecoverUser(ctx context.Context, command RecoverUserCommand) error
	ResetPassword(ctx context.Context, command ResetPasswordCommand) error

	GetUserAccounts(ctx context.Context, command GetUserAccountsCommand, p presenter.AsyncPresenter[domain.UserAccount]) error
	CreateUser(ctx context.Context, command CreateUserCommand) (domain.UserAccount, error)
	RevokeUser(ctx context.Context, command RevokeUserCommand, p presenter.Presenter[domain.UserAccount]) error
	EnactUser(ctx context.Context, command EnactUserCommand, p presenter.Presenter[domain.UserAccount]) error

	MailUserInvitation(ctx context.Context, command MailUserInvitationCommand) error
	MailUserRecovery(ctx context.Context, command MailUserRecoveryCommand) error
	PurgeTokens(ctx context.Context, command PurgeTokensCommand) (PurgeTokensResult, error)
}
