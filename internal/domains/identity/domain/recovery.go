package domain

import (
	"fmt"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

type UserRecoveryIdentifier = kernel.IntIdentifier

// UserRecovery is a request to reset the password of a user.
type UserRecovery struct {
	kernel.Entity[UserRecoveryIdentifier]
	UUID        kernel.UniqueID
	User        UserAccount
	ExpiredAt   kernel.Timestamp
	ConfirmedAt kernel.Timestamp
	MailedAt    kernel.Timestamp
	Remark      string
	kernel.TraceableTime
}

func (r UserRecovery) IsExpired() bool   { return r.ExpiredAt.IsPast() }
func (r UserRecovery) IsConfirmed() bool { return !r.ConfirmedAt.IsEmpty() }
func (r UserRecovery) IsMailed() bool    { return !r.MailedAt.IsEmpty() }

func (r UserRecovery) Confirm() (UserRecovery, error) {
	switch {
	case r.IsExpired():
		return r, fmt.Errorf("%w: user recovery %s is expired", kernel.ErrUnprocessable, r.UUID)
	case r.IsConfirmed():
		return r, fmt.Errorf("%w: user recovery %s was already used", kernel.ErrUnprocessable, r.UUID)
	}
	return kernel.Replace(r, func(recovery *UserRecovery) {
		recovery.ConfirmedAt = kernel.Now()
		recovery.TraceableTime = recovery.MarkForUpdate()
	}), nil
}

func (r UserRecovery) CanMail() error {
	switch {
	case r.IsMailed():
		return fmt.Errorf("%w: mail already sent for user recovery %s", kernel.ErrUnprocessable, r.UUID)
	case r.IsExpired():
		return fmt.Errorf("%w: user recovery %s already expired", kernel.ErrUnprocessable, r.UUID)
	case r.IsConfirmed():
		return fmt.Errorf("%w: user recovery %s already confirmed", kernel.ErrUnprocessable, r.UUID)
	}
	return nil
}

func (r UserRecovery) MarkMailed() UserRecovery {
	return kernel.Replace(r, func(recovery *UserRecovery) {
		recovery.MailedAt = kernel.Now()
		recovery.TraceableTime = recovery.MarkForUpdate()
	})
}
