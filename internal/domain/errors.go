package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// ValidationError names the missing or invalid request parameter. Handlers
// map it to a 400 response with a machine-readable error key.
type ValidationError struct{ Param string }

func (e *ValidationError) Error() string { return fmt.Sprintf("invalid parameter: %s", e.Param) }

func Invalid(param string) error { return &ValidationError{Param: param} }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
