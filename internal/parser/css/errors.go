package css

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidValue indicates a value that cannot be turned into a production
	ErrInvalidValue = errors.New("invalid value")

	// ErrParseFailed indicates tree-sitter could not produce a syntax tree
	ErrParseFailed = errors.New("failed to parse CSS")
)

// InvalidValueError locates the problem in a rejected value
type InvalidValueError struct {
	Text   string
	Offset int
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q at offset %d: %s", e.Text, e.Offset, e.Reason)
}

func (e *InvalidValueError) Unwrap() error {
	return ErrInvalidValue
}

// NewInvalidValueError creates a new invalid value error
func NewInvalidValueError(text string, offset int, reason string) error {
	return &InvalidValueError{
		Text:   text,
		Offset: offset,
		Reason: reason,
	}
}
