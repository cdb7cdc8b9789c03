package domain

import (
	"fmt"
	"strings"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

type UserInvitationIdentifier = kernel.IntIdentifier

// UserInvitation invites somebody by mail to create a user account.
type UserInvitation struct {
	kernel.Entity[UserInvitationIdentifier]
	UUID        kernel.UniqueID
	Email       kernel.EmailAddress
	Name        kernel.Name
	ExpiredAt   kernel.Timestamp
	Remark      string
	InvitedBy   kernel.Owner
	ConfirmedAt kernel.Timestamp
	MailedAt    kernel.Timestamp
	Revoked     bool
	kernel.TraceableTime
}

func (i UserInvitation) IsExpired() bool   { return i.ExpiredAt.IsPast() }
func (i UserInvitation) IsConfirmed() bool { return !i.ConfirmedAt.IsEmpty() }
func (i UserInvitation) IsMailed() bool    { return !i.MailedAt.IsEmpty() }

// Confirm marks the invitation as accepted. Revoked, expired or accepted
// invitations can't be confirmed.
func (i UserInvitation) Confirm() (UserInvitation, error) {
	switch {
	case i.Revoked:
		return i, fmt.Errorf("%w: user invitation %s is revoked", kernel.ErrUnprocessable, i.UUID)
	case i.IsExpired():
		return i, fmt.Errorf("%w: user invitation %s is expired", kernel.ErrUnprocessable, i.UUID)
	case i.IsConfirmed():
		return i, fmt.Errorf("%w: user invitation %s was already accepted", kernel.ErrUnprocessable, i.UUID)
	}
	return kernel.Replace(i, func(invitation *UserInvitation) {
		invitation.ConfirmedAt = kernel.Now()
		invitation.TraceableTime = invitation.MarkForUpdate()
	}), nil
}

// CanMail reports why no mail may be sent for the invitation.
func (i UserInvitation) CanMail() error {
	switch {
	case i.IsMailed():
		return fmt.Errorf("%w: mail already sent for user invitation %s", kernel.ErrUnprocessable, i.UUID)
	case i.IsExpired():
		return fmt.Errorf("%w: user invitation %s already expired", kernel.ErrUnprocessable, i.UUID)
	case i.IsConfirmed():
		return fmt.Errorf("%w: user invitation %s already confirmed", kernel.ErrUnprocessable, i.UUID)
	}
	return nil
}

func (i UserInvitation) MarkMailed() UserInvitation {
	return kernel.Replace(i, func(invitation *UserInvitation) {
		invitation.MailedAt = kernel.Now()
		invitation.TraceableTime = invitation.MarkForUpdate()
	})
}

func (i UserInvitation) Revoke() UserInvitation {
	return kernel.Replace(i, func(invitation *UserInvitation) {
		invitation.Revoked = true
		invitation.TraceableTime = invitation.MarkForUpdate()
	})
}

func (i UserInvitation) Validate() error {
	if i.Email.IsEmpty() {
		return kernel.ErrInvalidEmail
	}
	if strings.TrimSpace(i.Name.FirstName) == "" || strings.TrimSpace(i.Name.LastName) == "" {
		return fmt.Errorf("%w: first and last name are required", kernel.ErrValidation)
	}
	return nil
}
