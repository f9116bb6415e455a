// Package errors provides structured error types for the kegg client.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and gateway
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Parsers fail with [ErrCodeFormat] when a line is malformed and with
// [ErrCodeShape] when a response cannot be reshaped into the requested
// structure. Transport failures are reported as [*TransportError], which
// carries the HTTP status and response body.
//
// # Usage
//
//	_, err := parse.ParseMatrix(text, 2)
//	if errors.Is(err, errors.ErrCodeShape) {
//	    // the response had a ragged row
//	}
//
//	var te *errors.TransportError
//	if stderrors.As(err, &te) && te.Status == http.StatusNotFound {
//	    // no such entry
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidDatabase Code = "INVALID_DATABASE"
	ErrCodeInvalidEntry    Code = "INVALID_ENTRY"
	ErrCodeInvalidOption   Code = "INVALID_OPTION"

	// Response parsing errors
	ErrCodeFormat Code = "FORMAT"
	ErrCodeShape  Code = "SHAPE"

	// Remote errors
	ErrCodeNotFound  Code = "NOT_FOUND"
	ErrCodeTransport Code = "TRANSPORT"
	ErrCodeTimeout   Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
// A [*TransportError] matches [ErrCodeTransport].
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// TransportError reports a non-success HTTP response from the KEGG server.
// Body holds the (trimmed) response body, which KEGG uses for short
// diagnostics. Cause is set by the fetcher to a sentinel so that callers
// can test with errors.Is without depending on status codes.
type TransportError struct {
	URL    string
	Status int
	Body   string
	Cause  error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	msg := fmt.Sprintf("GET %s: status %d", e.URL, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Unwrap returns the sentinel attached by the fetcher.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Code returns the error code for this error type.
func (e *TransportError) Code() Code {
	if e.Status == 404 {
		return ErrCodeNotFound
	}
	return ErrCodeTransport
}
