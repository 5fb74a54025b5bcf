package apperrors

import (
	"strings"
)

// ValidationError describes one field that failed a client side check.
type ValidationError struct {
	Field  string // The field that caused the validation error.
	Value  any    // The value that caused the validation error.
	ErrStr string // The error message.
}

// Error allows ValidationError to satisfy the error interface.
func (ve ValidationError) Error() string {
	if len(ve.Field) > 0 {
		return ve.Field + ": " + ve.ErrStr
	}
	return ve.ErrStr
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

// Error joins the messages of every failed field.
func (ves ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ves))
	for _, ve := range ves {
		msgs = append(msgs, ve.ErrStr)
	}
	return strings.Join(msgs, "; ")
}

// Is makes every ValidationErrors match ErrValidation.
func (ves ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Messages maps field names to their message, for inline display next to
// the failing input.
func (ves ValidationErrors) Messages() map[string]string {
	m := make(map[string]string, len(ves))
	for _, ve := range ves {
		if _, ok := m[ve.Field]; !ok {
			m[ve.Field] = ve.ErrStr
		}
	}
	return m
}
