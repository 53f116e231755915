package docstore

import (
	"github.com/c2fo/docstore/dispatch"
	"github.com/c2fo/docstore/upload"
)

// Error is a type that allows for error constants below
type Error = dispatch.Error

type (
	// APIError is returned for every non-2xx response. errors.Is matches it against the status sentinels below.
	APIError = dispatch.APIError

	// TransportError is returned when the service could not be reached.
	TransportError = dispatch.TransportError

	// ChunkError is returned when a chunked upload fails part way.
	ChunkError = upload.ChunkError
)

const (
	// ErrInvalidID - an id is empty, "." or "..", or contains a slash
	ErrInvalidID = Error("invalid id")

	// ErrInvalidPath - a path does not name a project, collection, document, bucket or file
	ErrInvalidPath = Error("invalid resource path")

	// ErrBadRequest - the service rejected the request payload (400, 422)
	ErrBadRequest = dispatch.ErrBadRequest

	// ErrUnauthorized - missing or invalid API key (401)
	ErrUnauthorized = dispatch.ErrUnauthorized

	// ErrForbidden - the API key lacks access to the resource (403)
	ErrForbidden = dispatch.ErrForbidden

	// ErrNotFound - the resource does not exist (404)
	ErrNotFound = dispatch.ErrNotFound

	// ErrConflict - the resource already exists (409)
	ErrConflict = dispatch.ErrConflict

	// ErrRateLimited - too many requests (429)
	ErrRateLimited = dispatch.ErrRateLimited

	// ErrServer - the service failed to handle the request (5xx)
	ErrServer = dispatch.ErrServer

	// ErrUnavailable - the service could not be reached or answered with 5xx
	ErrUnavailable = dispatch.ErrUnavailable

	// ErrCacheMiss - a cache-only read found no cached response
	ErrCacheMiss = dispatch.ErrCacheMiss
)

// IsUnavailable reports whether err means the service could not answer, in which case cached reads may still
// succeed.
func IsUnavailable(err error) bool {
	return dispatch.IsUnavailable(err)
}
