package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an application error
type Kind int

const (
	// KindInternal is the fallback for unclassified failures
	KindInternal Kind = iota
	// KindNotFound means the requested entity does not exist
	KindNotFound
	// KindValidation means the input shape was malformed
	KindValidation
	// KindUnauthorized means the caller presented no or an invalid token
	KindUnauthorized
	// KindForbidden means the token was valid but lacks role or verification
	KindForbidden
	// KindConflict means a unique constraint was violated
	KindConflict
	// KindDatabase means the backing store failed or timed out
	KindDatabase
)

// FieldError carries field-level detail for validation failures
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error is the application error type returned across service boundaries
type Error struct {
	Kind    Kind
	Message string
	Code    string       // optional machine-readable code, e.g. EMAIL_NOT_VERIFIED
	Fields  []FieldError // populated for validation errors
	Err     error        // underlying cause, never exposed to clients
}

// Error satisfies the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is/As
func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindDatabase:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NotFound creates a NotFound error
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Validation creates a ValidationError with field detail
func Validation(message string, fields []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Unauthorized creates an Unauthorized error
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden creates a Forbidden error with an optional machine code
func Forbidden(message, code string) *Error {
	return &Error{Kind: KindForbidden, Message: message, Code: code}
}

// Conflict creates a Conflict error
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Database wraps a backing-store failure
func Database(message string, err error) *Error {
	return &Error{Kind: KindDatabase, Message: message, Err: err}
}

// Internal wraps an unclassified failure
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// IsKind reports whether err is an application error of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// IsNotFound reports whether err is a NotFound error
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

// IsConflict reports whether err is a Conflict error
func IsConflict(err error) bool { return IsKind(err, KindConflict) }

// IsUnauthorized reports whether err is an Unauthorized error
func IsUnauthorized(err error) bool { return IsKind(err, KindUnauthorized) }

// IsValidation reports whether err is a Validation error
func IsValidation(err error) bool { return IsKind(err, KindValidation) }
