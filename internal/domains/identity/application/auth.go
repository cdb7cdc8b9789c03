package application

import (
	"context"
	"errors"
	"time"

	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

// AuthenticateUser checks the credentials and creates a new refresh token with its
// access token. Every attempt is written to the user log. Failed attempts are also
// recorded on the account.
func (s *Service) AuthenticateUser(ctx context.Context, command ports.AuthenticateUserCommand) (domain.RefreshToken, error) {
	client := domain.Client{IP: command.ClientIP, UserAgent: command.UserAgent}
	email, err := kernel.NewEmailAddress(command.Email)
	if err != nil {
		return domain.RefreshToken{}, s.refuseLogin(ctx, command.Email, client, "invalid email address")
	}
	account, err := s.repos.Users.Get(ctx, s.repos.Users.CreateQuery().FilterByEmail(email))
	if errors.Is(err, ports.ErrUserAccountNotFound) {
		return domain.RefreshToken{}, s.refuseLogin(ctx, command.Email, client, "unknown user")
	}
	if err != nil {
		return domain.RefreshToken{}, err
	}

	account, ok := account.Login(command.Password)
	if !ok {
		// The failed attempt is stored even though the login fails.
		if err := s.repos.Users.Update(ctx, account); err != nil {
			return domain.RefreshToken{}, err
		}
		remark := "invalid password"
		if account.Revoked {
			remark = "user is revoked"
		}
		return domain.RefreshToken{}, s.refuseLogin(ctx, command.Email, client, remark)
	}

	var refresh domain.RefreshToken
	err = s.uow.Do(ctx, func(ctx context.Context) error {
		if err := s.repos.Users.Update(ctx, account); err != nil {
			return err
		}
		access, err := s.repos.AccessTokens.Create(ctx, domain.NewAccessToken(account, s.accessExpiry))
		if err != nil {
			return err
		}
		if refresh, err = s.repos.RefreshTokens.Create(ctx, domain.NewRefreshToken(access, s.refreshExpiry)); err != nil {
			return err
		}
		_, err = s.repos.UserLogs.Create(ctx, domain.NewSuccessfulLogin(command.Email, refresh, client))
		return err
	})
	return refresh, mapError(err)
}

// RefreshAccessToken renews a valid refresh token and its access token. A token of
// a revoked user is revoked as well.
func (s *Service) RefreshAccessToken(ctx context.Context, command ports.RefreshAccessTokenCommand) (domain.RefreshToken, error) {
	client := domain.Client{IP: command.ClientIP, UserAgent: command.UserAgent}
	current, err := s.repos.RefreshTokens.GetByIdentifier(ctx, domain.TokenIdentifier(command.Identifier))
	if err != nil {
		return domain.RefreshToken{}, mapError(tokenError(err))
	}
	if remark := refusal(current); remark != "" {
		return domain.RefreshToken{}, s.refuseRefresh(ctx, current, client, remark)
	}

	refresh := current.Renew(s.refreshExpiry, s.accessExpiry)
	err = s.uow.Do(ctx, func(ctx context.Context) error {
		if err := s.repos.AccessTokens.Update(ctx, refresh.AccessToken); err != nil {
			return err
		}
		if err := s.repos.RefreshTokens.Update(ctx, refresh); err != nil {
			return err
		}
		_, err := s.repos.UserLogs.Create(ctx, domain.NewSuccessfulLogin(refresh.AccessToken.User.Email.String(), refresh, client))
		return err
	})
	if err != nil {
		return domain.RefreshToken{}, mapError(err)
	}
	return refresh, nil
}

// refuseLogin logs a failed login and returns the error for the caller.
func (s *Service) refuseLogin(ctx context.Context, email string, client domain.Client, remark string) error {
	if _, err := s.repos.UserLogs.Create(ctx, domain.NewFailedLogin(email, client, remark)); err != nil {
		return err
	}
	return ErrInvalidCredentials
}

func (s *Service) refuseRefresh(ctx context.Context, token domain.RefreshToken, client domain.Client, remark string) error {
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		if token.AccessToken.User.Revoked && !token.Revoked {
			revoked := token.Revoke()
			if err := s.repos.AccessTokens.Update(ctx, revoked.AccessToken); err != nil {
				return err
			}
			if err := s.repos.RefreshTokens.Update(ctx, revoked); err != nil {
				return err
			}
		}
		_, err := s.repos.UserLogs.Create(ctx, domain.NewFailedLogin(token.AccessToken.User.Email.String(), client, remark))
		return err
	})
	if err != nil {
		return mapError(err)
	}
	return ErrInvalidToken
}

// Logout revokes the refresh token and its access token.
func (s *Service) Logout(ctx context.Context, command ports.LogoutCommand) error {
	return mapError(s.uow.Do(ctx, func(ctx context.Context) error {
		current, err := s.repos.RefreshTokens.GetByIdentifier(ctx, domain.TokenIdentifier(command.Identifier))
		if err != nil {
			return tokenError(err)
		}
		revoked := current.Revoke()
		if err := s.repos.AccessTokens.Update(ctx, revoked.AccessToken); err != nil {
			return err
		}
		return s.repos.RefreshTokens.Update(ctx, revoked)
	}))
}

// VerifyAccessToken returns the access token when it can still be used.
func (s *Service) VerifyAccessToken(ctx context.Context, command ports.VerifyAccessTokenCommand) (domain.AccessToken, error) {
	token, err := s.repos.AccessTokens.GetByIdentifier(ctx, domain.TokenIdentifier(command.Identifier))
	if err != nil {
		return domain.AccessToken{}, tokenError(err)
	}
	if token.Revoked || token.IsExpired() || token.User.Revoked {
		return domain.AccessToken{}, ErrInvalidToken
	}
	return token, nil
}

// PurgeTokens removes expired and revoked tokens. Refresh tokens go first, so their
// access tokens can be removed in the same run.
func (s *Service) PurgeTokens(ctx context.Context, command ports.PurgeTokensCommand) (ports.PurgeTokensResult, error) {
	before := command.Before
	if before.IsZero() {
		before = time.Now()
	}
	before = before.UTC()

	var result ports.PurgeTokensResult
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		if result.RefreshTokens, err = s.repos.RefreshTokens.Purge(ctx, before); err != nil {
			return err
		}
		result.AccessTokens, err = s.repos.AccessTokens.Purge(ctx, before)
		return err
	})
	return result, mapError(err)
}

// refusal returns why token can't be renewed, or "" when it can.
func refusal(token domain.RefreshToken) string {
	switch {
	case token.AccessToken.User.Revoked:
		return "user is revoked"
	case token.Revoked:
		return "refresh token is revoked"
	case token.IsExpired():
		return "refresh token is expired"
	}
	return ""
}
