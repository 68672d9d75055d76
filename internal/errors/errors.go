package errors

import (
	"errors"
	"fmt"
)

// MetaDescription is the metadata key holding a pending decision's description.
const MetaDescription = "description"

// Error is the engine error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Human-readable message
	Metadata map[string]string // Additional context
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates an engine error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates an engine error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates an engine error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// EffectPending reports that a decision described by description blocks
// progress until a matching selection arrives.
func EffectPending(description string) *Error {
	return &Error{
		Code:     CodeEffectPending,
		Message:  "effect pending: " + description,
		Metadata: map[string]string{MetaDescription: description},
	}
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not an engine error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// GetMetadata extracts metadata from an error if present.
func GetMetadata(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Metadata
	}
	return nil
}

// PendingDescription returns the description carried by an EffectPending
// error, or "" for any other error.
func PendingDescription(err error) string {
	if !IsCode(err, CodeEffectPending) {
		return ""
	}
	return GetMetadata(err)[MetaDescription]
}
