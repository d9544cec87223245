// Package common defines the sentinel errors shared by the repository,
// engine and boundary layers. Callers match them with errors.Is.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// ErrInvalidField marks an attempt to update an immutable or unknown
	// user column. It is a programming error and is raised before any SQL
	// is built.
	ErrInvalidField = errors.New("invalid field")

	// Engine-level errors.
	ErrEmailTaken        = errors.New("email already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidResetToken = errors.New("invalid reset token")
)

// StoreError wraps a persistence failure (connectivity, bad SQL, driver
// errors). It is fatal to the current operation; retry policy, if any,
// belongs to the caller.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
