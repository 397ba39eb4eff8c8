// Package errors provides the error kinds surfaced by inkspect
package errors

import (
	"errors"
	"fmt"
)

// Standard errors that can be used with errors.Is()
var (
	// ErrValidation indicates conflicting or missing input/output options
	ErrValidation = errors.New("validation error")

	// ErrConfiguration indicates an unknown style, provider or malformed config
	ErrConfiguration = errors.New("configuration error")

	// ErrIO indicates an unreadable input or unwritable output path
	ErrIO = errors.New("i/o error")

	// ErrBackend indicates a failed provider call
	ErrBackend = errors.New("backend error")

	// ErrEmptyResponse indicates the provider returned an empty body
	ErrEmptyResponse = errors.New("empty response")

	// ErrMalformedResponse indicates the provider reply could not be decoded
	ErrMalformedResponse = errors.New("malformed response")
)

// Error is a user-facing error tagged with one of the kinds above.
// Its message is printed verbatim.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the error kind
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Validationf creates a validation error
func Validationf(format string, args ...interface{}) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

// Configurationf creates a configuration error
func Configurationf(format string, args ...interface{}) error {
	return &Error{Kind: ErrConfiguration, Msg: fmt.Sprintf(format, args...)}
}

// IO creates an I/O error naming the path and the underlying cause
func IO(path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: ErrIO, Msg: path, Err: err}
}

// BackendError wraps provider-related errors with context
type BackendError struct {
	// Provider is the name of the provider (e.g., "claude", "gemini")
	Provider string

	// Operation being performed (e.g., "request", "list_models")
	Op string

	// Underlying error
	Err error
}

// Error implements the error interface
func (e *BackendError) Error() string {
	return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *BackendError) Unwrap() error {
	return e.Err
}

// Is enables custom error matching
func (e *BackendError) Is(target error) bool {
	if target == ErrBackend {
		return true
	}
	if errors.Is(e.Err, target) {
		return true
	}

	t, ok := target.(*BackendError)
	if !ok {
		return false
	}

	// Match on specific fields if provided
	if t.Provider != "" && t.Provider != e.Provider {
		return false
	}
	if t.Op != "" && t.Op != e.Op {
		return false
	}
	if t.Provider != "" || t.Op != "" {
		return true
	}

	return errors.Is(e.Err, t.Err)
}

// Backend creates a new BackendError
func Backend(provider, op string, err error) error {
	return &BackendError{
		Provider: provider,
		Op:       op,
		Err:      err,
	}
}

// WrapBackend adds provider context to an existing error
func WrapBackend(err error, provider, op string) error {
	if err == nil {
		return nil
	}
	var be *BackendError
	if errors.As(err, &be) {
		return err
	}
	return Backend(provider, op, err)
}

// Exit codes returned by ExitCode
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitValidation    = 2
	ExitConfiguration = 3
	ExitIO            = 4
	ExitBackend       = 5
)

// ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrValidation):
		return ExitValidation
	case errors.Is(err, ErrConfiguration):
		return ExitConfiguration
	case errors.Is(err, ErrIO):
		return ExitIO
	case errors.Is(err, ErrBackend):
		return ExitBackend
	default:
		return ExitFailure
	}
}
