package types

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by every store operation. Callers match with
// errors.Is; the error string carries the human-readable reason.
var (
	// ErrNotFound means the referenced entity id does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrUnauthorized means the entity exists but belongs to another owner.
	ErrUnauthorized = errors.New("entity belongs to another owner")

	// ErrValidation covers empty required text, out-of-range values,
	// over-long names, duplicate unique keys, and bad paging arguments.
	ErrValidation = errors.New("validation failed")

	// ErrStore wraps underlying file or storage engine failures.
	ErrStore = errors.New("storage failure")

	// ErrStoreClosed is returned for operations before Open or after Close.
	ErrStoreClosed = errors.New("store is not open")
)

// Invalidf builds a validation error with a formatted reason.
// The result matches ErrValidation under errors.Is.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Storef wraps an underlying storage failure with context.
// The result matches ErrStore under errors.Is.
func Storef(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, fmt.Sprintf(format, args...), err)
}
