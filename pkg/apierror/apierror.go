package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for clients. Each kind has a stable code and a
// single HTTP status; see Status.
type Kind string

const (
	KindMissingCredentials Kind = "MISSING_CREDENTIALS"
	KindWrongCredentials   Kind = "WRONG_CREDENTIALS"
	KindTokenCreation      Kind = "TOKEN_CREATION"
	KindInvalidToken       Kind = "INVALID_TOKEN"
	KindHashingError       Kind = "HASHING_ERROR"
	KindDatabaseError      Kind = "DATABASE_ERROR"
	KindMissingToken       Kind = "MISSING_TOKEN"
	KindForbidden          Kind = "FORBIDDEN"
	KindUserNotFound       Kind = "USER_NOT_FOUND"
	KindAlreadyExists      Kind = "ALREADY_EXISTS"
	KindNotFound           Kind = "NOT_FOUND"
	KindBadRequest         Kind = "BAD_REQUEST"
	KindRateLimited        Kind = "RATE_LIMITED"
	KindInternal           Kind = "INTERNAL_ERROR"
)

// Status maps a kind to its HTTP status. Unknown kinds are 500.
func (k Kind) Status() int {
	switch k {
	case KindMissingCredentials, KindBadRequest:
		return http.StatusBadRequest
	case KindWrongCredentials, KindInvalidToken, KindMissingToken:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindUserNotFound, KindNotFound:
		return http.StatusNotFound
	case KindAlreadyExists:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindTokenCreation, KindHashingError, KindDatabaseError, KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Internal reports whether the kind describes a server-side failure whose
// details must not reach clients.
func (k Kind) Internal() bool {
	return k.Status() >= http.StatusInternalServerError
}

// publicMessages are the only messages clients see for internal kinds.
var publicMessages = map[Kind]string{
	KindTokenCreation: "failed to create token",
	KindHashingError:  "failed to process password",
	KindDatabaseError: "database error",
	KindInternal:      "unexpected server error",
}

type APIError struct {
	Kind    Kind   `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Err     error  `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// HTTPStatus is the status the error is rendered with.
func (e *APIError) HTTPStatus() int {
	return e.Kind.Status()
}

// PublicMessage is the message safe to send to a client.
func (e *APIError) PublicMessage() string {
	if msg, ok := publicMessages[e.Kind]; ok {
		return msg
	}
	return e.Message
}

func New(kind Kind, message string, details string) *APIError {
	return &APIError{Kind: kind, Message: message, Details: details}
}

// Wrap attaches cause to a new error of the given kind.
func Wrap(kind Kind, message string, cause error) *APIError {
	return &APIError{Kind: kind, Message: message, Err: cause}
}

// KindOf returns the kind of the first APIError in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
