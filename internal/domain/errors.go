package domain

import (
	"errors"
	"strings"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrProfileNotFound = errors.New("profile not found")
)

// Owner-scoped misses. Absence and foreign ownership are reported the same way.
var (
	ErrEventNotFoundOrUnauthorized   = errors.New("event not found or unauthorized")
	ErrBookingNotFoundOrUnauthorized = errors.New("booking not found or unauthorized")
)

var (
	ErrCapacityExceeded       = errors.New("capacity exceeded")
	ErrEventHasActiveBookings = errors.New("event has active bookings")
)

var (
	ErrValidation = errors.New("validation error")
)

// FieldError describes one failed input rule.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError is a list of field failures. It matches ErrValidation.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
