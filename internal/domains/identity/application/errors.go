package application

import (
	"errors"
	"fmt"

	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	// ErrInvalidInput signals a command that cannot be executed as given.
	ErrInvalidInput = fmt.Errorf("%w: invalid identity input", kernel.ErrValidation)
	// ErrInvalidCredentials is returned for every failed login, whatever the cause.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", kernel.ErrAuthentication)
	// ErrInvalidToken is returned for unknown, expired or revoked tokens.
	ErrInvalidToken = fmt.Errorf("%w: invalid token", kernel.ErrAuthentication)
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, kernel.ErrValidation) && !errors.Is(err, ErrInvalidInput) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

// tokenError hides why a token was rejected.
func tokenError(err error) error {
	if errors.Is(err, ports.ErrAccessTokenNotFound) || errors.Is(err, ports.ErrRefreshTokenNotFound) {
		return ErrInvalidToken
	}
	return err
}
