package finance

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput matches every *InputError.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDomain matches every *DomainError.
	ErrDomain = errors.New("domain error")
)

// InputError reports a value that violates an operation's precondition.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// DomainError reports valid inputs for which the formula is undefined.
type DomainError struct {
	Reason string
}

func (e *DomainError) Error() string {
	return "domain error: " + e.Reason
}

func (e *DomainError) Unwrap() error { return ErrDomain }

func invalid(field, reason string) error {
	return &InputError{Field: field, Reason: reason}
}

func undefined(reason string) error {
	return &DomainError{Reason: reason}
}
