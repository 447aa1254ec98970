// Package apperror defines the error kinds shared by all domain packages.
// Handlers translate a kind into an HTTP status; callers match kinds with errors.Is.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrSlotConflict = errors.New("slot conflict")
	ErrStorage      = errors.New("storage error")
)

// Error is a classified error with a client-facing message.
type Error struct {
	Kind    error
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func Validation(message string) *Error {
	return &Error{Kind: ErrValidation, Message: message}
}

// ValidationFields reports per-field problems under a summary message.
func ValidationFields(message string, fields map[string]string) *Error {
	return &Error{Kind: ErrValidation, Message: message, Fields: fields}
}

func NotFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func SlotConflict(message string) *Error {
	return &Error{Kind: ErrSlotConflict, Message: message}
}

// Storage wraps a driver error. The driver text is kept for logs and errors.Is only.
func Storage(op string, err error) error {
	return fmt.Errorf("%w: %s - %w", ErrStorage, op, err)
}

// Message returns the client-facing message of err, or "" if err is not classified.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}

// Fields returns per-field validation details carried by err, if any.
func Fields(err error) map[string]string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Fields
	}
	return nil
}
