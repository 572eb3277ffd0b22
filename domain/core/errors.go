package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound     = errors.New("resource not found")
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// Data errors
	ErrMalformedRow        = errors.New("malformed presence row")
	ErrInconsistentSamples = errors.New("weekday has records but no counted samples")
)

// NewUserNotFoundError wraps ErrUserNotFound with the requested id.
func NewUserNotFoundError(userID int) error {
	return fmt.Errorf("%w: id %d", ErrUserNotFound, userID)
}

// NewMalformedRowError reports which line and field failed to parse.
func NewMalformedRowError(line int, field string, cause error) error {
	return fmt.Errorf("%w: line %d, field %s: %v", ErrMalformedRow, line, field, cause)
}

// IsNotFound reports whether err is (or wraps) a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
