package store

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable wraps any failure of the underlying database. Callers
// must not assume partial success when they see it.
var ErrStoreUnavailable = errors.New("application store unavailable")

// ValidationError reports a required field missing from an upsert.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field missing: %s", e.Field)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
