// Package errors provides the coded error taxonomy shared by every client component.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Code classifies an error for programmatic handling.
type Code string

const (
	CodeValidation Code = "VALIDATION_FAILED"
	CodeAuth       Code = "AUTH_FAILED"
	CodeConflict   Code = "CONFLICT"
	CodeNotFound   Code = "NOT_FOUND"
	CodeTransport  Code = "TRANSPORT_ERROR"
	CodeInternal   Code = "INTERNAL_ERROR"
)

// Error is a structured client error.
//
// Validation and conflict errors are resolved at the component boundary,
// auth errors trigger the session manager's forced-logout path, everything
// else is passed through for the caller to present.
type Error struct {
	Code      Code      `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError reports a client-side check that failed before any
// network call was made.
func NewValidationError(message, details string) *Error {
	return &Error{
		Code:      CodeValidation,
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthError reports a 401 response or an explicit login/refresh rejection.
func NewAuthError(message, details string) *Error {
	return &Error{
		Code:      CodeAuth,
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConflictError reports an invalid state transition.
func NewConflictError(message, details string) *Error {
	return &Error{
		Code:      CodeConflict,
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError reports a missing resource. Kept distinct from transport
// failures so "no profile yet" can render an onboarding prompt instead of an
// error banner.
func NewNotFoundError(message, details string) *Error {
	return &Error{
		Code:      CodeNotFound,
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTransportError reports a network failure or a 5xx response. Retryable by
// user action; the client never auto-retries beyond the single refresh retry.
func NewTransportError(message string, err error) *Error {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &Error{
		Code:      CodeTransport,
		Message:   message,
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// IsCode reports whether err is an *Error carrying the given code.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func IsValidation(err error) bool { return IsCode(err, CodeValidation) }
func IsAuth(err error) bool       { return IsCode(err, CodeAuth) }
func IsConflict(err error) bool   { return IsCode(err, CodeConflict) }
func IsNotFound(err error) bool   { return IsCode(err, CodeNotFound) }
func IsTransport(err error) bool  { return IsCode(err, CodeTransport) }

// detailPayload mirrors the backend's error body. "detail" is either a plain
// string or a list of field errors, each carrying a "msg".
type detailPayload struct {
	Detail json.RawMessage `json:"detail"`
}

type fieldError struct {
	Msg string `json:"msg"`
}

// FirstDetail extracts the first human-readable message from a structured
// error body. Returns fallback when nothing usable is present.
func FirstDetail(body []byte, fallback string) string {
	var payload detailPayload
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return fallback
	}

	var plain string
	if err := json.Unmarshal(payload.Detail, &plain); err == nil && plain != "" {
		return plain
	}

	var fields []fieldError
	if err := json.Unmarshal(payload.Detail, &fields); err == nil && len(fields) > 0 && fields[0].Msg != "" {
		return fields[0].Msg
	}

	return fallback
}

// FromResponse maps an HTTP error response into the taxonomy.
func FromResponse(status int, body []byte) *Error {
	switch {
	case status == http.StatusUnauthorized:
		return NewAuthError(FirstDetail(body, "authentication required"), fmt.Sprintf("status %d", status))
	case status == http.StatusNotFound:
		return NewNotFoundError(FirstDetail(body, "resource not found"), fmt.Sprintf("status %d", status))
	case status == http.StatusConflict:
		return NewConflictError(FirstDetail(body, "conflicting request"), fmt.Sprintf("status %d", status))
	case status == http.StatusUnprocessableEntity, status == http.StatusBadRequest:
		return NewValidationError(FirstDetail(body, "request rejected"), fmt.Sprintf("status %d", status))
	default:
		return &Error{
			Code:      CodeTransport,
			Message:   FirstDetail(body, "backend request failed"),
			Details:   fmt.Sprintf("status %d", status),
			Retryable: status >= 500,
			Timestamp: time.Now().UTC(),
		}
	}
}
