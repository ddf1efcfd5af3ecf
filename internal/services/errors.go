package services

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField     = errors.New("missing field")
	ErrInvalidValue     = errors.New("invalid value")
	ErrInvalidReference = errors.New("invalid reference")
	ErrInvalidShift     = errors.New("invalid shift")
	ErrNoValidLines     = errors.New("no valid incident lines")
	ErrAuthFailure      = errors.New("invalid credentials")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
)

// FieldError names the request field that caused Err.
type FieldError struct {
	Err   error
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Field)
}

func (e *FieldError) Unwrap() error { return e.Err }

func missing(field string) error {
	return &FieldError{Err: ErrMissingField, Field: field}
}

func invalid(field string) error {
	return &FieldError{Err: ErrInvalidValue, Field: field}
}
