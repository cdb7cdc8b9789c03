package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/shared/kernel"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

// InviteUser stores an invitation and publishes UserInvitationCreated once it is
// committed. An email that already belongs to a user or to a pending invitation is
// refused.
func (s *Service) InviteUser(ctx context.Context, command ports.InviteUserCommand, p presenter.Presenter[domain.UserInvitation]) error {
	email, err := kernel.NewEmailAddress(command.Email)
	if err != nil {
		return mapError(err)
	}
	days := command.ExpirationDays
	if days <= 0 {
		days = DefaultInvitationDays
	}
	invitation := domain.UserInvitation{
		UUID:          kernel.NewUniqueID(),
		Email:         email,
		Name:          kernel.Name{FirstName: strings.TrimSpace(command.FirstName), LastName: strings.TrimSpace(command.LastName)},
		ExpiredAt:     kernel.Now().Add(time.Duration(days) * 24 * time.Hour),
		Remark:        command.Remark,
		InvitedBy:     command.Owner,
		TraceableTime: kernel.NewTraceableTime(),
	}
	if err := invitation.Validate(); err != nil {
		return mapError(err)
	}

	err = s.uow.Do(ctx, func(ctx context.Context) error {
		if err := s.ensureInvitable(ctx, email); err != nil {
			return err
		}
		invitation, err = s.repos.Invitations.Create(ctx, invitation)
		return err
	})
	if err != nil {
		return mapError(err)
	}
	if err := s.publisher.Publish(ctx, domain.UserInvitationCreated(invitation)); err != nil {
		return fmt.Errorf("publish user invitation %s: %w", invitation.UUID, err)
	}
	p.Present(invitation)
	return nil
}

// RecreateUserInvitation revokes an invitation and invites the same person again
// with a new uuid and expiration. The same checks as InviteUser apply.
func (s *Service) RecreateUserInvitation(ctx context.Context, command ports.RecreateUserInvitationCommand, p presenter.Presenter[domain.UserInvitation]) error {
	days := command.ExpirationDays
	if days <= 0 {
		days = DefaultInvitationDays
	}
	var invitation domain.UserInvitation
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		original, err := s.invitation(ctx, command.UUID)
		if err != nil {
			return err
		}
		if err := s.repos.Invitations.Update(ctx, original.Revoke()); err != nil {
			return err
		}
		if err := s.ensureInvitable(ctx, original.Email); err != nil {
			return err
		}
		invitation, err = s.repos.Invitations.Create(ctx, domain.UserInvitation{
			UUID:          kernel.NewUniqueID(),
			Email:         original.Email,
			Name:          original.Name,
			ExpiredAt:     kernel.Now().Add(time.Duration(days) * 24 * time.Hour),
			Remark:        command.Remark,
			InvitedBy:     command.Owner,
			TraceableTime: kernel.NewTraceableTime(),
		})
		return err
	})
	if err != nil {
		return mapError(err)
	}
	if err := s.publisher.Publish(ctx, domain.UserInvitationCreated(invitation)); err != nil {
		return fmt.Errorf("publish user invitation %s: %w", invitation.UUID, err)
	}
	p.Present(invitation)
	return nil
}

func (s *Service) GetUserInvitations(ctx context.Context, command ports.GetUserInvitationsCommand, p presenter.AsyncPresenter[domain.UserInvitation]) error {
	query := s.repos.Invitations.CreateQuery()
	count, err := query.Count(ctx)
	if err != nil {
		return mapError(err)
	}
	return mapError(p.Present(ctx, presenter.IterableResult[domain.UserInvitation]{
		Count:    count,
		Offset:   command.Offset,
		Limit:    command.Limit,
		Iterator: s.repos.Invitations.GetAll(ctx, query, command.Limit, command.Offset),
	}))
}

func (s *Service) GetUserInvitation(ctx context.Context, command ports.GetUserInvitationCommand, p presenter.Presenter[domain.UserInvitation]) error {
	invitation, err := s.invitation(ctx, command.UUID)
	if err != nil {
		return mapError(err)
	}
	p.Present(invitation)
	return nil
}

func (s *Service) DeleteUserInvitation(ctx context.Context, command ports.DeleteUserInvitationCommand) error {
	return mapError(s.uow.Do(ctx, func(ctx context.Context) error {
		invitation, err := s.invitation(ctx, command.UUID)
		if err != nil {
			return err
		}
		return s.repos.Invitations.Delete(ctx, invitation)
	}))
}

// AcceptUserInvitation creates the user account of an invitation. The account gets
// the email address the invitation was sent to.
func (s *Service) AcceptUserInvitation(ctx context.Context, command ports.AcceptUserInvitationCommand, p presenter.Presenter[domain.UserAccount]) error {
	password, err := kernel.HashPassword(command.Password)
	if err != nil {
		return mapError(err)
	}
	var account domain.UserAccount
	err = s.uow.Do(ctx, func(ctx context.Context) error {
		invitation, err := s.invitation(ctx, command.UUID)
		if err != nil {
			return err
		}
		if command.Email != "" && !strings.EqualFold(strings.TrimSpace(command.Email), invitation.Email.String()) {
			return fmt.Errorf("%w: email does not match the invitation", ErrInvalidInput)
		}
		invitation, err = invitation.Confirm()
		if err != nil {
			return err
		}
		if err := s.ensureUnknownEmail(ctx, invitation.Email); err != nil {
			return err
		}
		account = domain.UserAccount{
			UUID:          kernel.NewUniqueID(),
			Email:         invitation.Email,
			Name:          kernel.Name{FirstName: strings.TrimSpace(command.FirstName), LastName: strings.TrimSpace(command.LastName)},
			Remark:        command.Remark,
			Password:      password,
			TraceableTime: kernel.NewTraceableTime(),
		}
		if err := account.Validate(); err != nil {
			return err
		}
		if account, err = s.repos.Users.Create(ctx, account); err != nil {
			return err
		}
		return s.repos.Invitations.Update(ctx, invitation)
	})
	if err != nil {
		return mapError(err)
	}
	p.Present(account)
	return nil
}

func (s *Service) invitation(ctx context.Context, raw string) (domain.UserInvitation, error) {
	uuid, err := kernel.ParseUniqueID(raw)
	if err != nil {
		return domain.UserInvitation{}, ports.ErrUserInvitationNotFound
	}
	return s.repos.Invitations.Get(ctx, s.repos.Invitations.CreateQuery().FilterByUUID(uuid))
}

// ensureInvitable refuses an email that belongs to a user or to a pending invitation.
func (s *Service) ensureInvitable(ctx context.Context, email kernel.EmailAddress) error {
	if err := s.ensureUnknownEmail(ctx, email); err != nil {
		return err
	}
	pending, err := s.repos.Invitations.CreateQuery().
		FilterByEmail(email).
		FilterActive().
		FilterNotExpired(time.Now().UTC()).
		Count(ctx)
	if err != nil {
		return err
	}
	if pending > 0 {
		return fmt.Errorf("%w: there is already a pending invitation for %s", kernel.ErrUnprocessable, email)
	}
	return nil
}

func (s *Service) ensureUnknownEmail(ctx context.Context, email kernel.EmailAddress) error {
	count, err := s.repos.Users.CreateQuery().FilterByEmail(email).Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %s is already used by a user", kernel.ErrUnprocessable, email)
	}
	return nil
}
