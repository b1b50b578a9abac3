package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRegistration indicates a registration that breaks the @property rules
	ErrInvalidRegistration = errors.New("invalid property registration")

	// ErrInitialValueMismatch indicates an initial value that does not match the registered syntax
	ErrInitialValueMismatch = errors.New("initial value does not match syntax")

	// ErrDuplicateRegistration indicates a property that is already registered
	ErrDuplicateRegistration = errors.New("property already registered")

	// ErrUnknownFormat indicates a registry file with an unsupported extension
	ErrUnknownFormat = errors.New("unknown registry file format")
)

// InvalidRegistrationError represents a rejected registration
type InvalidRegistrationError struct {
	Name   string
	Reason string
}

func (e *InvalidRegistrationError) Error() string {
	return fmt.Sprintf("invalid registration of %q: %s", e.Name, e.Reason)
}

func (e *InvalidRegistrationError) Unwrap() error {
	return ErrInvalidRegistration
}

// NewInvalidRegistrationError creates a new invalid registration error
func NewInvalidRegistrationError(name, reason string) error {
	return &InvalidRegistrationError{
		Name:   name,
		Reason: reason,
	}
}

// InitialValueMismatchError represents an initial value its syntax rejects
type InitialValueMismatchError struct {
	Name   string
	Value  string
	Syntax string
}

func (e *InitialValueMismatchError) Error() string {
	return fmt.Sprintf("initial value %q of %q does not match syntax %q", e.Value, e.Name, e.Syntax)
}

func (e *InitialValueMismatchError) Unwrap() error {
	return ErrInitialValueMismatch
}

// NewInitialValueMismatchError creates a new initial value mismatch error
func NewInitialValueMismatchError(name, value, syntax string) error {
	return &InitialValueMismatchError{
		Name:   name,
		Value:  value,
		Syntax: syntax,
	}
}

// DuplicateRegistrationError represents a second registration of a property
type DuplicateRegistrationError struct {
	Name     string
	Existing string // source of the first registration
}

func (e *DuplicateRegistrationError) Error() string {
	if e.Existing == "" {
		return fmt.Sprintf("property %q is already registered", e.Name)
	}
	return fmt.Sprintf("property %q is already registered by %s", e.Name, e.Existing)
}

func (e *DuplicateRegistrationError) Unwrap() error {
	return ErrDuplicateRegistration
}

// NewDuplicateRegistrationError creates a new duplicate registration error
func NewDuplicateRegistrationError(name, existing string) error {
	return &DuplicateRegistrationError{
		Name:     name,
		Existing: existing,
	}
}

// UnknownFormatError represents a registry file that is neither YAML nor JSON
type UnknownFormatError struct {
	FilePath string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("cannot load %s: expected .yaml, .yml, .json or .jsonc", e.FilePath)
}

func (e *UnknownFormatError) Unwrap() error {
	return ErrUnknownFormat
}

// NewUnknownFormatError creates a new unknown format error
func NewUnknownFormatError(filePath string) error {
	return &UnknownFormatError{FilePath: filePath}
}
