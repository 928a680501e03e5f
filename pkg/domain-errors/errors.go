// Package domainerrors provides code-carrying errors used across service and
// transport layers. Services return these (or wrap infrastructure errors into
// them) and the HTTP layer translates codes into status lines without ever
// inspecting error strings.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for transport mapping and logging.
type Code string

const (
	// CodeBadRequest covers malformed requests (undecodable body, wrong types).
	CodeBadRequest Code = "bad_request"
	// CodeValidation covers well-formed requests that violate field constraints.
	CodeValidation Code = "validation_failed"
	// CodeInvalidInput covers invalid arguments on internal call boundaries.
	CodeInvalidInput Code = "invalid_input"
	// CodeUnauthorized covers failed or missing credentials. The message must
	// stay generic so it never distinguishes unknown user from wrong password.
	CodeUnauthorized Code = "unauthorized"
	// CodeNotFound covers missing resources.
	CodeNotFound Code = "not_found"
	// CodeUnavailable covers dependencies that are down or not loaded.
	CodeUnavailable Code = "unavailable"
	// CodeInternal covers everything the caller cannot fix.
	CodeInternal Code = "internal_error"
)

// FieldViolation reports one constraint failure on one request field.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error is the concrete domain error. Use New/Wrap rather than constructing
// it directly so the zero-code case cannot occur.
type Error struct {
	code       Code
	message    string
	violations []FieldViolation
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error { return e.cause }

// Code returns the classification of this error.
func (e *Error) Code() Code { return e.code }

// Message returns the caller-safe description.
func (e *Error) Message() string { return e.message }

// Violations returns per-field constraint failures, if any.
func (e *Error) Violations() []FieldViolation { return e.violations }

// New creates a domain error with a code and a caller-safe message.
func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Wrap attaches a code and caller-safe message to an underlying error. The
// underlying error is preserved for errors.Is/As and logging, never for the
// HTTP response body.
func Wrap(err error, code Code, message string) *Error {
	return &Error{code: code, message: message, cause: err}
}

// NewValidation creates a validation error carrying every collected field
// violation so a caller can fix the request in one round trip.
func NewValidation(violations []FieldViolation) *Error {
	return &Error{
		code:       CodeValidation,
		message:    "request validation failed",
		violations: violations,
	}
}

// CodeOf extracts the Code from an error chain, defaulting to CodeInternal
// for untyped errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return CodeInternal
}

// MessageOf extracts the caller-safe message from an error chain. Untyped
// errors yield a generic message so internals never leak.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.message
	}
	return "internal error"
}

// ViolationsOf extracts field violations from an error chain.
func ViolationsOf(err error) []FieldViolation {
	var de *Error
	if errors.As(err, &de) {
		return de.violations
	}
	return nil
}

// HTTPStatus maps a code to its HTTP status class: 4xx for caller errors,
// 5xx for server errors.
func HTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeValidation:
		return http.StatusUnprocessableEntity
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
