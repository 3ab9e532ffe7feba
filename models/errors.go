package models

import "errors"

// ErrNotFound marks operations on an absent record where the caller
// cannot treat the miss as an idempotent no-op.
var ErrNotFound = errors.New("not found")

// ValidationError represents malformed user input. It is recoverable:
// the chat flow re-prompts, the HTTP layer answers 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validationf builds a ValidationError from a plain message.
func Validationf(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
