package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("swift code not found")
	ErrAlreadyExists = errors.New("swift code already exists")
	ErrValidation    = errors.New("invalid input provided")
)

// RegistryError is a user-facing failure. Error returns the message shown to
// clients and Unwrap returns one of the sentinels above.
type RegistryError struct {
	Kind    error
	Message string
}

func (e *RegistryError) Error() string {
	return e.Message
}

func (e *RegistryError) Unwrap() error {
	return e.Kind
}

func notFound(code string) error {
	return &RegistryError{Kind: ErrNotFound, Message: fmt.Sprintf("Swift code %s, not found", code)}
}

func alreadyExists(code string) error {
	return &RegistryError{Kind: ErrAlreadyExists, Message: fmt.Sprintf("Swift code: %s, already exists", code)}
}

func validation(format string, args ...any) error {
	return &RegistryError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}
