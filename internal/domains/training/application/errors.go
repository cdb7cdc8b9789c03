package application

import (
	"errors"
	"fmt"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

// ErrInvalidInput signals a command that cannot be executed as given.
var ErrInvalidInput = fmt.Errorf("%w: invalid training input", kernel.ErrValidation)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, kernel.ErrValidation) && !errors.Is(err, ErrInvalidInput) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
