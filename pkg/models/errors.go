package models

import "fmt"

// ValidationError – for invalid form input, rejected before any request is sent.
// Supports errors.As.
type ValidationError struct {
	Field string
	msg   string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.msg
}

// NewValidationError creates a new ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{msg: msg}
}

// NewFieldValidationError creates a ValidationError tied to a form field.
func NewFieldValidationError(field, msg string) error {
	return &ValidationError{Field: field, msg: msg}
}

// DecodeError – for persisted or received data that cannot be parsed.
// Supports errors.As and errors.Unwrap.
type DecodeError struct {
	What string
	err  error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.What, e.err)
}

func (e *DecodeError) Unwrap() error {
	return e.err
}

// NewDecodeError creates a new DecodeError.
func NewDecodeError(what string, err error) error {
	return &DecodeError{What: what, err: err}
}

// StorageError – for failures interacting with the persisted client state.
// Supports errors.As and errors.Unwrap.
type StorageError struct {
	Op  string
	err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.err)
}

func (e *StorageError) Unwrap() error {
	return e.err
}

// NewStorageError creates a new StorageError.
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, err: err}
}
