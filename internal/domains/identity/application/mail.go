package application

import (
	"context"

	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/platform/mail"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

type mailData struct {
	Name    string
	Website string
	URL     string
	UUID    string
	Expires string
}

// MailUserInvitation sends the invitation mail and marks the invitation as mailed.
// An invitation is mailed only once.
func (s *Service) MailUserInvitation(ctx context.Context, command ports.MailUserInvitationCommand) error {
	invitation, err := s.invitation(ctx, command.UUID)
	if err != nil {
		return mapError(err)
	}
	if err := invitation.CanMail(); err != nil {
		return err
	}
	message, err := s.templates.Compose(
		mail.UserInvitationTemplate,
		"Invitation "+s.website.Name,
		s.mailData(invitation.Name, invitation.UUID, invitation.ExpiredAt),
		s.sender(),
		mail.Recipient{Email: invitation.Email.String(), Name: invitation.Name.String()},
	)
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, message); err != nil {
		return err
	}
	return mapError(s.repos.Invitations.Update(ctx, invitation.MarkMailed()))
}

// MailUserRecovery sends the link to reset the password.
func (s *Service) MailUserRecovery(ctx context.Context, command ports.MailUserRecoveryCommand) error {
	recovery, err := s.recovery(ctx, command.UUID)
	if err != nil {
		return mapError(err)
	}
	if err := recovery.CanMail(); err != nil {
		return err
	}
	message, err := s.templates.Compose(
		mail.UserRecoveryTemplate,
		"Password recovery "+s.website.Name,
		s.mailData(recovery.User.Name, recovery.UUID, recovery.ExpiredAt),
		s.sender(),
		mail.Recipient{Email: recovery.User.Email.String(), Name: recovery.User.Name.String()},
	)
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, message); err != nil {
		return err
	}
	return mapError(s.repos.Recoveries.Update(ctx, recovery.MarkMailed()))
}

func (s *Service) sender() mail.Recipient {
	return mail.Recipient{Email: s.website.Email, Name: s.website.Name}
}

func (s *Service) mailData(name kernel.Name, uuid kernel.UniqueID, expires kernel.Timestamp) mailData {
	return mailData{
		Name:    name.String(),
		Website: s.website.Name,
		URL:     s.website.URL,
		UUID:    uuid.String(),
		Expires: expires.String(),
	}
}
