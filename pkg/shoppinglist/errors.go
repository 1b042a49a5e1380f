package shoppinglist

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrClosed is returned when an App is used after Close.
	ErrClosed = errors.New("shoppinglist: app closed")
)

// InfrastructureError means the application could not be assembled: the
// store would not open, the language is unknown, and so on. These errors are
// reported at startup and are not recoverable at the screen level.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "open_storage", "load_language")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("shoppinglist: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("shoppinglist: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates a new infrastructure error.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}
