// Package observability decorates the identity use cases with tracing, logging and
// metrics. Credentials and tokens are never recorded.
package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/platform/observability"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

const tracerName = "github.com/fbraem/kwai/internal/domains/identity"

type Service struct {
	inner ports.Service
	obs   *observability.Decorator
}

func New(inner ports.Service, opts ...observability.Option) ports.Service {
	return &Service{inner: inner, obs: observability.NewDecorator("identity", opts...)}
}

// Instrumented decorates inner with the process instruments.
func Instrumented(inner ports.Service, instruments *observability.Instruments) ports.Service {
	return New(inner, observability.WithInstruments(instruments, tracerName))
}

func (s *Service) AuthenticateUser(ctx context.Context, command ports.AuthenticateUserCommand) (domain.RefreshToken, error) {
	var token domain.RefreshToken
	err := s.obs.Run(ctx, "Service.AuthenticateUser", func(ctx context.Context) error {
		var err error
		token, err = s.inner.AuthenticateUser(ctx, command)
		return err
	})
	if err != nil {
		s.obs.Count(ctx, "logins.failed", 1)
		return token, err
	}
	s.obs.Count(ctx, "logins.succeeded", 1)
	return token, nil
}

func (s *Service) RefreshAccessToken(ctx context.Context, command ports.RefreshAccessTokenCommand) (domain.RefreshToken, error) {
	var token domain.RefreshToken
	err := s.obs.Run(ctx, "Service.RefreshAccessToken", func(ctx context.Context) error {
		var err error
		token, err = s.inner.RefreshAccessToken(ctx, command)
		return err
	})
	return token, err
}

func (s *Service) Logout(ctx context.Context, command ports.LogoutCommand) error {
	return s.obs.Run(ctx, "Service.Logout", func(ctx context.Context) error {
		return s.inner.Logout(ctx, command)
	})
}

func (s *Service) VerifyAccessToken(ctx context.Context, command ports.VerifyAccessTokenCommand) (domain.AccessToken, error) {
	var token domain.AccessToken
	err := s.obs.Run(ctx, "Service.VerifyAccessToken", func(ctx context.Context) error {
		var err error
		token, err = s.inner.VerifyAccessToken(ctx, command)
		return err
	})
	return token, err
}

func (s *Service) InviteUser(ctx context.Context, command ports.InviteUserCommand, p presenter.Presenter[domain.UserInvitation]) error {
	err := s.obs.Run(ctx, "Service.InviteUser", func(ctx context.Context) error {
		return s.inner.InviteUser(ctx, command, p)
	}, attribute.Int64("user.id", command.Owner.ID.Value()))
	if err == nil {
		s.obs.Count(ctx, "user_invitations.created", 1)
	}
	return err
}

func (s *Service) RecreateUserInvitation(ctx context.Context, command ports.RecreateUserInvitationCommand, p presenter.Presenter[domain.UserInvitation]) error {
	err := s.obs.Run(ctx, "Service.RecreateUserInvitation", func(ctx context.Context) error {
		return s.inner.RecreateUserInvitation(ctx, command, p)
	}, attribute.String("user_invitation.uuid", command.UUID), attribute.Int64("user.id", command.Owner.ID.Value()))
	if err == nil {
		s.obs.Count(ctx, "user_invitations.created", 1)
	}
	return err
}

func (s *Service) GetUserInvitations(ctx context.Context, command ports.GetUserInvitationsCommand, p presenter.AsyncPresenter[domain.UserInvitation]) error {
	return s.obs.Run(ctx, "Service.GetUserInvitations", func(ctx context.Context) error {
		return s.inner.GetUserInvitations(ctx, command, p)
	}, attribute.Int("limit", command.Limit), attribute.Int("offset", command.Offset))
}

func (s *Service) GetUserInvitation(ctx context.Context, command ports.GetUserInvitationCommand, p presenter.Presenter[domain.UserInvitation]) error {
	return s.obs.Run(ctx, "Service.GetUserInvitation", func(ctx context.Context) error {
		return s.inner.GetUserInvitation(ctx, command, p)
	}, attribute.String("user_invitation.uuid", command.UUID))
}

func (s *Service) DeleteUserInvitation(ctx context.Context, command ports.DeleteUserInvitationCommand) error {
	return s.obs.Run(ctx, "Service.DeleteUserInvitation", func(ctx context.Context) error {
		return s.inner.DeleteUserInvitation(ctx, command)
	}, attribute.String("user_invitation.uuid", command.UUID))
}

func (s *Service) AcceptUserInvitation(ctx context.Context, command ports.AcceptUserInvitationCommand, p presenter.Presenter[domain.UserAccount]) error {
	err := s.obs.Run(ctx, "Service.AcceptUserInvitation", func(ctx context.Context) error {
		return s.inner.AcceptUserInvitation(ctx, command, p)
	}, attribute.String("user_invitation.uuid", command.UUID))
	if err == nil {
		s.obs.Count(ctx, "user_accounts.created", 1)
	}
	return err
}

func (s *Service) RecoverUser(ctx context.Context, command ports.RecoverUserCommand) error {
	return s.obs.Run(ctx, "Service.RecoverUser", func(ctx context.Context) error {
		return s.inner.RecoverUser(ctx, command)
	})
}

func (s *Service) ResetPassword(ctx context.Context, command ports.ResetPasswordCommand) error {
	return s.obs.Run(ctx, "Service.ResetPassword", func(ctx context.Context) error {
		return s.inner.ResetPassword(ctx, command)
	}, attribute.String("user_recovery.uuid", command.UUID))
}

func (s *Service) GetUserAccounts(ctx context.Context, command ports.GetUserAccountsCommand, p presenter.AsyncPresenter[domain.UserAccount]) error {
	return s.obs.Run(ctx, "Service.GetUserAccounts", func(ctx context.Context) error {
		return s.inner.GetUserAccounts(ctx, command, p)
	}, attribute.Int("limit", command.Limit), attribute.Int("offset", command.Offset))
}

func (s *Service) CreateUser(ctx context.Context, command ports.CreateUserCommand) (domain.UserAccount, error) {
	var account domain.UserAccount
	err := s.obs.Run(ctx, "Service.CreateUser", func(ctx context.Context) error {
		var err error
		account, err = s.inner.CreateUser(ctx, command)
		return err
	})
	if err == nil {
		s.obs.Count(ctx, "user_accounts.created", 1)
	}
	return account, err
}

func (s *Service) RevokeUser(ctx context.Context, command ports.RevokeUserCommand, p presenter.Presenter[domain.UserAccount]) error {
	err := s.obs.Run(ctx, "Service.RevokeUser", func(ctx context.Context) error {
		return s.inner.RevokeUser(ctx, command, p)
	}, attribute.String("user.uuid", command.UUID))
	if err == nil {
		s.obs.Count(ctx, "user_accounts.revoked", 1)
	}
	return err
}

func (s *Service) EnactUser(ctx context.Context, command ports.EnactUserCommand, p presenter.Presenter[domain.UserAccount]) error {
	return s.obs.Run(ctx, "Service.EnactUser", func(ctx context.Context) error {
		return s.inner.EnactUser(ctx, command, p)
	}, attribute.String("user.uuid", command.UUID))
}

func (s *Service) MailUserInvitation(ctx context.Context, command ports.MailUserInvitationCommand) error {
	err := s.obs.Run(ctx, "Service.MailUserInvitation", func(ctx context.Context) error {
		return s.inner.MailUserInvitation(ctx, command)
	}, attribute.String("user_invitation.uuid", command.UUID))
	if err == nil {
		s.obs.Count(ctx, "mails.sent", 1)
	}
	return err
}

func (s *Service) MailUserRecovery(ctx context.Context, command ports.MailUserRecoveryCommand) error {
	err := s.obs.Run(ctx, "Service.MailUserRecovery", func(ctx context.Context) error {
		return s.inner.MailUserRecovery(ctx, command)
	}, attribute.String("user_recovery.uuid", command.UUID))
	if err == nil {
		s.obs.Count(ctx, "mails.sent", 1)
	}
	return err
}

func (s *Service) PurgeTokens(ctx context.Context, command ports.PurgeTokensCommand) (ports.PurgeTokensResult, error) {
	var result ports.PurgeTokensResult
	err := s.obs.Run(ctx, "Service.PurgeTokens", func(ctx context.Context) error {
		var err error
		result, err = s.inner.PurgeTokens(ctx, command)
		return err
	})
	if err == nil {
		s.obs.Count(ctx, "access_tokens.purged", result.AccessTokens)
		s.obs.Count(ctx, "refresh_tokens.purged", result.RefreshTokens)
	}
	return result, err
}
