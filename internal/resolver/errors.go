package resolver

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCircularReference indicates custom properties that reference each other
var ErrCircularReference = errors.New("circular reference detected")

// CircularReferenceError carries the reference chain of a cycle
type CircularReferenceError struct {
	ReferenceChain []string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("circular reference detected: %s", strings.Join(e.ReferenceChain, " → "))
}

func (e *CircularReferenceError) Unwrap() error {
	return ErrCircularReference
}

// NewCircularReferenceError creates a new circular reference error
func NewCircularReferenceError(chain []string) error {
	return &CircularReferenceError{ReferenceChain: chain}
}
