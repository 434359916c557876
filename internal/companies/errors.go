package companies

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("company not found")
	ErrInvalidInput = errors.New("invalid input")
	// ErrIDGeneration means the identifier generator produced nothing usable.
	ErrIDGeneration = errors.New("unable to generate company id")
)

// ValidationError names the first field that failed a check. An empty Reason
// means the field was blank.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s is required", e.Field)
}

// Is lets errors.Is(err, ErrInvalidInput) match validation failures.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
