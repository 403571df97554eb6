// Package errs defines the closed error taxonomy for the platform. Every
// failure surfaced to the response boundary is one of these kinds; the
// boundary maps the kind to an HTTP status and a stable errorCode string.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed enumeration of error kinds.
type Kind int

const (
	KindInternal Kind = iota
	KindAuthentication
	KindAuthorization
	KindRateLimit
	KindValidation
	KindNotFound
	KindConflict
	KindBusiness
	KindExternalService
	KindConfiguration
)

// Code returns the stable errorCode string for the kind.
func (k Kind) Code() string {
	switch k {
	case KindAuthentication:
		return "AUTHENTICATION_ERROR"
	case KindAuthorization:
		return "AUTHORIZATION_ERROR"
	case KindRateLimit:
		return "RATE_LIMIT_ERROR"
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindNotFound:
		return "RESOURCE_NOT_FOUND"
	case KindConflict:
		return "CONFLICT_ERROR"
	case KindBusiness:
		return "BUSINESS_ERROR"
	case KindExternalService:
		return "EXTERNAL_SERVICE_ERROR"
	case KindConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// Status returns the HTTP status the kind maps to.
func (k Kind) Status() int {
	switch k {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindRateLimit:
		return http.StatusTooManyRequests
	case KindValidation, KindBusiness:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is a tagged error. Details and RetryAfter are optional structure
// surfaced in the response envelope; internal identifiers never are.
type Error struct {
	Kind       Kind
	Message    string
	Details    map[string]any
	RetryAfter int
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.Code(), e.Message, e.cause)
	}

	return fmt.Sprintf("%s: %s", e.Kind.Code(), e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports kind equality, so errors.Is(err, &Error{Kind: k}) matches any
// error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// New builds a tagged error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds a tagged error keeping the cause for errors.Is/As chains.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Authentication builds an AUTHENTICATION_ERROR ("who are you").
func Authentication(message string) *Error {
	if message == "" {
		message = "Authentication failed"
	}

	return New(KindAuthentication, message)
}

// Authorization builds an AUTHORIZATION_ERROR ("you can't do that").
func Authorization(message string) *Error {
	if message == "" {
		message = "Insufficient permissions"
	}

	return New(KindAuthorization, message)
}

// RateLimit builds a RATE_LIMIT_ERROR carrying the retry hint in seconds.
func RateLimit(retryAfter int) *Error {
	return &Error{
		Kind:       KindRateLimit,
		Message:    "Rate limit exceeded. Please try again later.",
		RetryAfter: retryAfter,
	}
}

// Validation builds a VALIDATION_ERROR with optional field details.
func Validation(message string, details map[string]any) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

// NotFound builds a RESOURCE_NOT_FOUND error for the named resource.
func NotFound(resource, id string) *Error {
	message := fmt.Sprintf("%s not found", resource)
	if id != "" {
		message = fmt.Sprintf("%s with ID '%s' not found", resource, id)
	}

	return New(KindNotFound, message)
}

// Conflict builds a CONFLICT_ERROR.
func Conflict(message string) *Error {
	return New(KindConflict, message)
}

// Business builds a BUSINESS_ERROR.
func Business(message string) *Error {
	return New(KindBusiness, message)
}

// ExternalService builds an EXTERNAL_SERVICE_ERROR.
func ExternalService(service, message string, cause error) *Error {
	return Wrap(KindExternalService, fmt.Sprintf("External service '%s' error: %s", service, message), cause)
}

// Configuration builds a CONFIGURATION_ERROR, fatal to the request.
func Configuration(message string, cause error) *Error {
	return Wrap(KindConfiguration, message, cause)
}

// Internal builds an INTERNAL_ERROR hiding the cause from clients.
func Internal(cause error) *Error {
	return Wrap(KindInternal, "server internal error, please try again later", cause)
}

// KindOf extracts the kind of err, or KindInternal for untagged errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}

// AsError extracts the tagged error, wrapping untagged errors as internal.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return Internal(err)
}

// Sentinels for common identity failures, shared by biz and middleware.
var (
	ErrInvalidToken       = Authentication("Invalid token")
	ErrInvalidCredentials = Authentication("Invalid email or password")
	ErrTenantRequired     = Authorization("operation requires a bound tenant")
)
