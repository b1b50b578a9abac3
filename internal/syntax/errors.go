package syntax

import (
	"errors"
	"fmt"
)

// ErrInvalidSyntax indicates a syntax string that does not describe a grammar
var ErrInvalidSyntax = errors.New("invalid syntax")

// InvalidSyntaxError describes why a syntax string was rejected
type InvalidSyntaxError struct {
	Text   string
	Reason string
}

func (e *InvalidSyntaxError) Error() string {
	return fmt.Sprintf("invalid syntax %q: %s", e.Text, e.Reason)
}

func (e *InvalidSyntaxError) Unwrap() error {
	return ErrInvalidSyntax
}

// NewInvalidSyntaxError creates a new invalid syntax error
func NewInvalidSyntaxError(text, reason string) error {
	return &InvalidSyntaxError{
		Text:   text,
		Reason: reason,
	}
}
