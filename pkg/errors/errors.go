// Package errors provides the structured error type returned by the Pastebin client.
//
// Every failure surfaced by the client is an [*Error]: a machine-readable [Code]
// plus the human-readable message, optionally wrapping a cause. Codes classify
// the failure; there is a single error type, not a hierarchy.
//
// # Error Codes
//
//   - BAD_REQUEST: the service answered with its "Bad API request" marker
//   - UNEXPECTED_RESPONSE: the body had an unexpected shape (message is the raw body)
//   - KEY_REQUIRED: an authenticated call was made without a user key
//   - MALFORMED_RESPONSE: a payload could not be parsed (missing field, bad integer)
//   - NOT_WHITELISTED: a scraping endpoint refused the caller's IP
//   - REQUEST_ERROR: the service answered with its generic "Error, " marker
//   - NETWORK_ERROR: transport failure or unexpected HTTP status
//   - INVALID_INPUT: a caller-supplied value was rejected before any request
//
// # Usage
//
//	_, err := client.Authenticate(ctx, user, pass)
//	if errors.Is(err, errors.ErrCodeBadRequest) {
//	    fmt.Println("pastebin said:", errors.UserMessage(err))
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the failure categories of the Pastebin API.
const (
	// Service-reported errors
	ErrCodeBadRequest         Code = "BAD_REQUEST"
	ErrCodeUnexpectedResponse Code = "UNEXPECTED_RESPONSE"
	ErrCodeRequestError       Code = "REQUEST_ERROR"
	ErrCodeNotWhitelisted     Code = "NOT_WHITELISTED"

	// Payload errors
	ErrCodeMalformed Code = "MALFORMED_RESPONSE"

	// Precondition errors
	ErrCodeKeyRequired  Code = "KEY_REQUIRED"
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// Transport errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
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

// Message creates a new Error carrying msg verbatim.
// Use it for service-supplied text, which must not be treated as a format string.
func Message(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
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
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of err without the code prefix.
// For errors that are not an *Error, it returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
