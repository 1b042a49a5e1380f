package state

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/constants"
)

// MutationError reports a repository write that failed. The screen state
// never carries these; they are delivered through Aggregator.Failures.
type MutationError struct {
	Mutation constants.Mutation // Which write failed
	ID       string             // Correlates with the mutation's log lines
	Err      error              // Underlying error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Mutation.GetName(), e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// IsMutationError checks if an error is a mutation failure.
func IsMutationError(err error) bool {
	var mutErr *MutationError
	return errors.As(err, &mutErr)
}
