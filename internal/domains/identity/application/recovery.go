package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

// RecoverUser starts a password recovery. Unknown addresses are ignored so the
// caller can't find out which users exist.
func (s *Service) RecoverUser(ctx context.Context, command ports.RecoverUserCommand) error {
	email, err := kernel.NewEmailAddress(command.Email)
	if err != nil {
		return mapError(err)
	}
	account, err := s.repos.Users.Get(ctx, s.repos.Users.CreateQuery().FilterByEmail(email))
	if errors.Is(err, ports.ErrUserAccountNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if account.Revoked {
		return fmt.Errorf("%w: user account %s is revoked", kernel.ErrUnprocessable, account.UUID)
	}

	recovery, err := s.repos.Recoveries.Create(ctx, domain.UserRecovery{
		UUID:          kernel.NewUniqueID(),
		User:          account,
		ExpiredAt:     kernel.Now().Add(s.recoveryExpiry),
		TraceableTime: kernel.NewTraceableTime(),
	})
	if err != nil {
		return mapError(err)
	}
	if err := s.publisher.Publish(ctx, domain.UserRecoveryCreated(recovery)); err != nil {
		return fmt.Errorf("publish user recovery %s: %w", recovery.UUID, err)
	}
	return nil
}

// ResetPassword sets a new password with an unused, unexpired recovery.
func (s *Service) ResetPassword(ctx context.Context, command ports.ResetPasswordCommand) error {
	password, err := kernel.HashPassword(command.Password)
	if err != nil {
		return mapError(err)
	}
	return mapError(s.uow.Do(ctx, func(ctx context.Context) error {
		recovery, err := s.recovery(ctx, command.UUID)
		if err != nil {
			return err
		}
		if recovery, err = recovery.Confirm(); err != nil {
			return err
		}
		account, err := recovery.User.ResetPassword(password)
		if err != nil {
			return err
		}
		if err := s.repos.Users.Update(ctx, account); err != nil {
			return err
		}
		return s.repos.Recoveries.Update(ctx, recovery)
	}))
}

func (s *Service) recovery(ctx context.Context, raw string) (domain.UserRecovery, error) {
	uuid, err := kernel.ParseUniqueID(raw)
	if err != nil {
		return domain.UserRecovery{}, ports.ErrUserRecoveryNotFound
	}
	return s.repos.Recoveries.GetByUUID(ctx, uuid)
}
