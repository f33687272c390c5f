package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateUsername is returned when registering a username that already exists.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrPasswordMismatch is returned when the password confirmation differs.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound is the parent of every lookup failure.
	ErrNotFound = errors.New("not found")
	// ErrWorkoutNotFound is returned when no workout matches an identity.
	ErrWorkoutNotFound = fmt.Errorf("workout %w", ErrNotFound)
	// ErrAccountNotFound is returned when an operation names an unknown user.
	ErrAccountNotFound = fmt.Errorf("account %w", ErrNotFound)
	// ErrPersistence is matched by every *PersistenceError.
	ErrPersistence = errors.New("persistence failed")
)

// ValidationError reports a malformed or out-of-range field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ImportError names the data row (1-based, header excluded) that stopped an import.
// Row 0 refers to the header itself.
type ImportError struct {
	Row int
	Err error
}

func (e *ImportError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("import header: %v", e.Err)
	}
	return fmt.Sprintf("import row %d: %v", e.Row, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a failed write of a store file.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrPersistence) match.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
