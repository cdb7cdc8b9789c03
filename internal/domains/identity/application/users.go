package application

import (
	"context"
	"strings"

	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/shared/kernel"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

func (s *Service) GetUserAccounts(ctx context.Context, command ports.GetUserAccountsCommand, p presenter.AsyncPresenter[domain.UserAccount]) error {
	query := s.repos.Users.CreateQuery()
	count, err := query.Count(ctx)
	if err != nil {
		return mapError(err)
	}
	return mapError(p.Present(ctx, presenter.IterableResult[domain.UserAccount]{
		Count:    count,
		Offset:   command.Offset,
		Limit:    command.Limit,
		Iterator: s.repos.Users.GetAll(ctx, query, command.Limit, command.Offset),
	}))
}

// CreateUser creates an account without an invitation. It is used to create the
// first administrator from the command line.
func (s *Service) CreateUser(ctx context.Context, command ports.CreateUserCommand) (domain.UserAccount, error) {
	email, err := kernel.NewEmailAddress(command.Email)
	if err != nil {
		return domain.UserAccount{}, mapError(err)
	}
	password, err := kernel.HashPassword(command.Password)
	if err != nil {
		return domain.UserAccount{}, mapError(err)
	}
	account := domain.UserAccount{
		UUID:          kernel.NewUniqueID(),
		Email:         email,
		Name:          kernel.Name{FirstName: strings.TrimSpace(command.FirstName), LastName: strings.TrimSpace(command.LastName)},
		Remark:        command.Remark,
		Password:      password,
		TraceableTime: kernel.NewTraceableTime(),
	}
	if err := account.Validate(); err != nil {
		return domain.UserAccount{}, mapError(err)
	}
	err = s.uow.Do(ctx, func(ctx context.Context) error {
		if err := s.ensureUnknownEmail(ctx, email); err != nil {
			return err
		}
		account, err = s.repos.Users.Create(ctx, account)
		return err
	})
	if err != nil {
		return domain.UserAccount{}, mapError(err)
	}
	return account, nil
}

// RevokeUser blocks an account and revokes all of its tokens, which logs the user
// out everywhere.
func (s *Service) RevokeUser(ctx context.Context, command ports.RevokeUserCommand, p presenter.Presenter[domain.UserAccount]) error {
	var account domain.UserAccount
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		current, err := s.userAccount(ctx, command.UUID)
		if err != nil {
			return err
		}
		account = current.Revoke()
		if err := s.repos.Users.Update(ctx, account); err != nil {
			return err
		}
		if err := s.repos.AccessTokens.RevokeByUser(ctx, account); err != nil {
			return err
		}
		return s.repos.RefreshTokens.RevokeByUser(ctx, account)
	})
	if err != nil {
		return mapError(err)
	}
	p.Present(account)
	return nil
}

// EnactUser lifts the revocation of an account. Revoked tokens stay revoked.
func (s *Service) EnactUser(ctx context.Context, command ports.EnactUserCommand, p presenter.Presenter[domain.UserAccount]) error {
	var account domain.UserAccount
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		current, err := s.userAccount(ctx, command.UUID)
		if err != nil {
			return err
		}
		account = current.Enact()
		return s.repos.Users.Update(ctx, account)
	})
	if err != nil {
		return mapError(err)
	}
	p.Present(account)
	return nil
}

func (s *Service) userAccount(ctx context.Context, raw string) (domain.UserAccount, error) {
	uuid, err := kernel.ParseUniqueID(raw)
	if err != nil {
		return domain.UserAccount{}, ports.ErrUserAccountNotFound
	}
	return s.repos.Users.Get(ctx, s.repos.Users.CreateQuery().FilterByUUID(uuid))
}
