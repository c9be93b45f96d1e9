package rental

import (
	"errors"
	"fmt"
	"time"
)

// ConflictError means the requested window overlaps a reservation that
// occupies the shelf calendar. BlockedUntil carries the latest conflicting
// end date when known, so callers can render "available after <date>".
type ConflictError struct {
	ShelfID      string
	BlockedUntil int64
}

func (e *ConflictError) Error() string {
	if e.BlockedUntil > 0 {
		return fmt.Sprintf("shelf %s is already booked through %s", e.ShelfID,
			time.UnixMilli(e.BlockedUntil).UTC().Format("2006-01-02"))
	}
	return fmt.Sprintf("shelf %s is not available for the requested window", e.ShelfID)
}

// InvalidStateError means a transition was attempted from an illegal
// source state. Never silently coerced.
type InvalidStateError struct {
	Current   string
	Attempted string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s from status %q", e.Attempted, e.Current)
}

// ValidationError rejects bad input before any write.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrForbidden is returned when the actor is not allowed to act on the
// reservation at all.
var ErrForbidden = errors.New("actor is not permitted to perform this action")

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsInvalidState(err error) bool {
	var ise *InvalidStateError
	return errors.As(err, &ise)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
