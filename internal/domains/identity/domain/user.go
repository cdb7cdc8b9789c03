// Package domain holds the user accounts, tokens, invitations and recoveries of kwai.
package domain

import (
	"fmt"
	"strings"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

type UserAccountIdentifier = kernel.IntIdentifier

// UserAccount is a user that can log in.
type UserAccount struct {
	kernel.Entity[UserAccountIdentifier]
	UUID                  kernel.UniqueID
	Email                 kernel.EmailAddress
	Name                  kernel.Name
	Remark                string
	Password              kernel.Password
	LastLogin             kernel.Timestamp
	LastUnsuccessfulLogin kernel.Timestamp
	Revoked               bool
	Admin                 bool
	kernel.TraceableTime
}

// Login checks the password and records the attempt. The returned account has
// LastLogin set on success, LastUnsuccessfulLogin otherwise.
func (u UserAccount) Login(password string) (UserAccount, bool) {
	if u.Revoked || !u.Password.Verify(password) {
		return kernel.Replace(u, func(account *UserAccount) {
			account.LastUnsuccessfulLogin = kernel.Now()
			account.TraceableTime = account.MarkForUpdate()
		}), false
	}
	return kernel.Replace(u, func(account *UserAccount) {
		account.LastLogin = kernel.Now()
		account.TraceableTime = account.MarkForUpdate()
	}), true
}

// ResetPassword replaces the password. A revoked account can't change its password.
func (u UserAccount) ResetPassword(password kernel.Password) (UserAccount, error) {
	if u.Revoked {
		return u, fmt.Errorf("%w: user account %s is revoked", kernel.ErrForbidden, u.UUID)
	}
	return kernel.Replace(u, func(account *UserAccount) {
		account.Password = password
		account.TraceableTime = account.MarkForUpdate()
	}), nil
}

// Revoke blocks the account. A revoked account can't log in or renew tokens.
func (u UserAccount) Revoke() UserAccount {
	return kernel.Replace(u, func(account *UserAccount) {
		account.Revoked = true
		account.TraceableTime = account.MarkForUpdate()
	})
}

// Enact lifts a revocation.
func (u UserAccount) Enact() UserAccount {
	return kernel.Replace(u, func(account *UserAccount) {
		account.Revoked = false
		account.TraceableTime = account.MarkForUpdate()
	})
}

func (u UserAccount) Owner() kernel.Owner {
	return kernel.Owner{ID: u.ID(), UUID: u.UUID, Name: u.Name}
}

func (u UserAccount) Validate() error {
	if u.Email.IsEmpty() {
		return kernel.ErrInvalidEmail
	}
	if strings.TrimSpace(u.Name.FirstName) == "" || strings.TrimSpace(u.Name.LastName) == "" {
		return fmt.Errorf("%w: first and last name are required", kernel.ErrValidation)
	}
	return nil
}
