package dispatch

import (
	"net/http"
	"time"
)

// DefaultUserAgent is sent when Options.UserAgent is empty.
const DefaultUserAgent = "docstore-go"

// Options holds dispatcher configuration.
type Options struct {
	// BaseURL is the API root, e.g. https://api.example.com/v1 (required).
	BaseURL string

	// APIKey is sent as a bearer token.
	APIKey string

	// ProjectID is sent in the X-Project-ID header.
	ProjectID string

	UserAgent string

	// Headers are added to every request.
	Headers http.Header

	// DefaultCachePolicy applies to GET requests using CacheDefault. Defaults to NetworkFirst.
	DefaultCachePolicy CachePolicy

	// CacheMaxAge discards cache entries older than this. Zero keeps entries forever.
	CacheMaxAge time.Duration
}

// NewOptions creates Options with default values.
func NewOptions() Options {
	return Options{
		UserAgent:          DefaultUserAgent,
		Headers:            http.Header{},
		DefaultCachePolicy: NetworkFirst,
	}
}
