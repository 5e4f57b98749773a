package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrPoolPresetMissing = errors.New("project has no pool preset")
)

// ValidationError reports a request parameter or project value that cannot be
// used for a calculation. Handlers map it to 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err wraps a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
