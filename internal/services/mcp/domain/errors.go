package domain

import (
	"errors"
	"fmt"

	apperrors "github.com/Estagiarius/simulajuls/internal/platform/errors"
)

// toolError turns a simulation failure into the message shown to the model.
// Domain errors, local or carried by a gRPC status, render in locale.
func toolError(err error, locale string) error {
	if err == nil {
		return nil
	}
	appErr, ok := apperrors.FromError(err)
	if !ok {
		return fmt.Errorf("run simulation: %w", err)
	}
	msg, _ := apperrors.Localize(appErr, locale)
	return errors.New(msg)
}
