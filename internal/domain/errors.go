package domain

import (
	"errors"
	"fmt"
)

// Error kinds returned by the normalizer. Match them with errors.Is.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidDuration = errors.New("invalid duration")
)

// FieldError points at the input field that failed validation.
type FieldError struct {
	Field  string
	Reason string
	Kind   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s: %s", e.Kind, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

func invalidInput(field, reason string) error {
	return &FieldError{Field: field, Reason: reason, Kind: ErrInvalidInput}
}

func invalidDuration(field, reason string) error {
	return &FieldError{Field: field, Reason: reason, Kind: ErrInvalidDuration}
}
