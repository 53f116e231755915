package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a type that allows for error constants below
type Error string

// Error returns a string representation of the error
func (e Error) Error() string { return string(e) }

const (
	// ErrBadRequest - the service rejected the request payload (400, 422)
	ErrBadRequest = Error("bad request")

	// ErrUnauthorized - missing or invalid credentials (401)
	ErrUnauthorized = Error("unauthorized")

	// ErrForbidden - credentials lack access to the resource (403)
	ErrForbidden = Error("forbidden")

	// ErrNotFound - the resource does not exist (404)
	ErrNotFound = Error("not found")

	// ErrConflict - the resource already exists or was modified concurrently (409)
	ErrConflict = Error("conflict")

	// ErrRateLimited - too many requests (429)
	ErrRateLimited = Error("rate limited")

	// ErrServer - the service failed to handle the request (5xx)
	ErrServer = Error("server error")

	// ErrUnavailable - the service could not be reached or answered with 5xx
	ErrUnavailable = Error("service unavailable")

	// ErrCacheMiss - a cache-only read found no usable entry
	ErrCacheMiss = Error("no cached response")
)

// APIError is returned for every non-2xx response.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	// Code and Type are the service's machine readable error code and type, when provided.
	Code    int
	Type    string
	Message string
	Body    []byte
}

// Error formats the failing request and the service message.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Type != "" {
		msg += " (" + e.Type + ")"
	}
	return msg
}

// Is maps the status code onto the sentinel errors so callers can use errors.Is(err, dispatch.ErrNotFound).
func (e *APIError) Is(target error) bool {
	sentinel, ok := target.(Error)
	if !ok {
		return false
	}

	switch sentinel {
	case ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrServer, ErrUnavailable:
		return e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// TransportError is returned when no HTTP response was received.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error returns the failing request and cause.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the transport error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports ErrUnavailable for every transport failure.
func (e *TransportError) Is(target error) bool {
	return target == ErrUnavailable
}

// IsUnavailable reports whether err means the service could not answer: a transport failure or a 5xx.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// newAPIError parses the error body. The service answers {"message","code","type"}; some proxies answer
// {"error": "..."} or plain text.
func newAPIError(method, path string, status int, body []byte) *APIError {
	apiErr := &APIError{
		Method:     method,
		Path:       path,
		StatusCode: status,
		Body:       body,
	}

	var payload struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
		Type    string `json:"type"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Message
		if apiErr.Message == "" {
			apiErr.Message = payload.Error
		}
		apiErr.Code = payload.Code
		apiErr.Type = payload.Type
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	return apiErr
}
