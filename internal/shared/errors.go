package shared

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates rejected input before any state change.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate indicates a uniqueness conflict.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// NotFound wraps ErrNotFound with the entity kind and id so callers can
// produce a user-facing message.
func NotFound(entity string, id uuid.UUID) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, entity, id)
}

// Invalid wraps ErrValidation with a formatted reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
