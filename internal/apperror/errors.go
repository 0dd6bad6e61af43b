// Package apperror defines the error taxonomy shared by the API handlers,
// services, and the terminal explorer. Every failure that crosses a package
// boundary carries a Kind so callers can branch on classification instead of
// string matching, and so the HTTP layer can map it to a response status.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for status mapping and logging.
type Kind int

const (
	// KindInternal covers unexpected failures with no better classification.
	KindInternal Kind = iota
	// KindValidation marks rejected input (bad quantities, negative amounts,
	// malformed parameters).
	KindValidation
	// KindAuthentication marks missing or unverifiable credentials.
	KindAuthentication
	// KindAuthorization marks authenticated callers lacking permission.
	KindAuthorization
	// KindNotFound marks lookups of absent resources.
	KindNotFound
	// KindDataProcessing marks aggregations or parses that cannot proceed,
	// such as a KPI requested over an empty data set.
	KindDataProcessing
	// KindDatabase marks storage-layer failures.
	KindDatabase
	// KindConfiguration marks invalid or incomplete runtime configuration.
	KindConfiguration
)

// Name returns the wire name of the kind, e.g. "ValidationError".
func (k Kind) Name() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindAuthentication:
		return "AuthenticationError"
	case KindAuthorization:
		return "AuthorizationError"
	case KindNotFound:
		return "ResourceNotFoundError"
	case KindDataProcessing:
		return "DataProcessingError"
	case KindDatabase:
		return "DatabaseError"
	case KindConfiguration:
		return "ConfigurationError"
	default:
		return "InternalServerError"
	}
}

// HTTPStatus returns the response status for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindDataProcessing:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified application error. Message is safe to return to
// clients; Err holds the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error without losing it.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation creates a KindValidation error.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// Validationf creates a KindValidation error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return Newf(KindValidation, format, args...)
}

// Authentication creates a KindAuthentication error.
func Authentication(message string) *Error {
	return New(KindAuthentication, message)
}

// Authorizationf creates a KindAuthorization error with a formatted message.
func Authorizationf(format string, args ...any) *Error {
	return Newf(KindAuthorization, format, args...)
}

// NotFound creates a KindNotFound error for a resource lookup.
func NotFound(resource string, id any) *Error {
	return Newf(KindNotFound, "%s with id %v not found", resource, id)
}

// DataProcessing creates a KindDataProcessing error.
func DataProcessing(message string) *Error {
	return New(KindDataProcessing, message)
}

// DataProcessingf creates a KindDataProcessing error with a formatted message.
func DataProcessingf(format string, args ...any) *Error {
	return Newf(KindDataProcessing, format, args...)
}

// Configuration creates a KindConfiguration error.
func Configuration(message string) *Error {
	return New(KindConfiguration, message)
}

// KindOf returns the kind of err if it is, or wraps, an *Error.
func KindOf(err error) (Kind, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return KindInternal, false
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// MessageOf returns the client-safe message of err, falling back to a
// generic message for unclassified errors.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "an unexpected error occurred"
}
