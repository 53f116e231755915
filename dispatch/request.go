package dispatch

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// CachePolicy decides how a GET request uses the cache.
type CachePolicy int

const (
	// CacheDefault defers to the dispatcher's default policy.
	CacheDefault CachePolicy = iota
	// NetworkOnly never reads or writes the cache.
	NetworkOnly
	// NetworkFirst asks the service and falls back to the cache when the service is unavailable.
	NetworkFirst
	// CacheFirst answers from the cache when an entry exists and asks the service otherwise.
	CacheFirst
	// CacheOnly answers from the cache or fails with ErrCacheMiss.
	CacheOnly
)

var policyNames = map[CachePolicy]string{
	CacheDefault: "default",
	NetworkOnly:  "network-only",
	NetworkFirst: "network-first",
	CacheFirst:   "cache-first",
	CacheOnly:    "cache-only",
}

// String returns the policy name as accepted by ParseCachePolicy.
func (p CachePolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("CachePolicy(%d)", int(p))
}

// ParseCachePolicy is the inverse of CachePolicy.String.
func ParseCachePolicy(s string) (CachePolicy, error) {
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}
	return CacheDefault, fmt.Errorf("unknown cache policy %q", s)
}

// Request describes one API call. Path is relative to the dispatcher's base URL and must start with a slash.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header

	// Body is JSON encoded. RawBody is sent verbatim with ContentType and wins when both are set.
	Body        any
	RawBody     io.Reader
	ContentType string

	CachePolicy CachePolicy

	// CachePath is the resource path a successful mutation's response is remembered under. PUT and PATCH default
	// to Path.
	CachePath string
}

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	// FromCache is set when the response was served from the cache; StoredAt is when it was written.
	FromCache bool
	StoredAt  time.Time
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("unable to decode response: %w", err)
	}
	return nil
}
