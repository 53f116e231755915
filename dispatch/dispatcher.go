package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/c2fo/docstore/cache"
)

// HTTPClient is the subset of *http.Client used by the dispatcher.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Dispatcher sends API requests and keeps the response cache.
type Dispatcher struct {
	opts   Options
	client HTTPClient
	cache  cache.Cache
	logger hclog.Logger
	now    func() time.Time
}

// cacheEntry is the serialized form of a cached response.
type cacheEntry struct {
	Status   int       `json:"status"`
	StoredAt time.Time `json:"storedAt"`
	Body     []byte    `json:"body"`
}

// New initializer for Dispatcher. A nil client uses http.DefaultClient, a nil cache disables caching and a nil
// logger discards output.
func New(opts Options, client HTTPClient, c cache.Cache, logger hclog.Logger) *Dispatcher {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.DefaultCachePolicy == CacheDefault {
		opts.DefaultCachePolicy = NetworkFirst
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")

	return &Dispatcher{
		opts:   opts,
		client: client,
		cache:  c,
		logger: logger,
		now:    time.Now,
	}
}

// Options returns the dispatcher configuration.
func (d *Dispatcher) Options() Options {
	return d.opts
}

// Cache returns the configured cache, which may be nil.
func (d *Dispatcher) Cache() cache.Cache {
	return d.cache
}

// URL returns the absolute URL for path and query.
func (d *Dispatcher) URL(path string, query url.Values) string {
	u := d.opts.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// CacheKey returns the key a GET of path and query is cached under. query.Encode sorts by key so equivalent
// queries share an entry.
func (d *Dispatcher) CacheKey(path string, query url.Values) string {
	return d.URL(path, query)
}

// Do sends req and returns the fully read response.
//
// GET requests consult the cache according to their policy. When the service is unavailable (transport failure
// or 5xx) a NetworkFirst or CacheFirst read is answered from the cache if an entry exists. Successful GETs are
// written to the cache; successful PUT and PATCH responses replace the cached entry of the resource and DELETE
// removes it.
func (d *Dispatcher) Do(ctx context.Context, req *Request) (*Response, error) {
	policy, err := d.policyFor(req)
	if err != nil {
		return nil, err
	}

	key := ""
	if policy != NetworkOnly {
		key = d.CacheKey(req.Path, req.Query)
	}

	if policy == CacheFirst || policy == CacheOnly {
		if resp, ok := d.readCache(key); ok {
			d.logger.Debug("served from cache", "method", req.Method, "path", req.Path, "policy", policy)
			return resp, nil
		}
		if policy == CacheOnly {
			return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, ErrCacheMiss)
		}
	}

	resp, err := d.send(ctx, req)
	if err != nil {
		if policy != NetworkOnly && IsUnavailable(err) {
			if cached, ok := d.readCache(key); ok {
				d.logger.Warn("service unavailable, serving cached response",
					"method", req.Method, "path", req.Path, "stored_at", cached.StoredAt, "error", err)
				return cached, nil
			}
		}
		return nil, err
	}

	d.remember(req, policy, key, resp)
	return resp, nil
}

// Stream sends req and returns the open response body. Responses are never cached. The caller must close the
// body.
func (d *Dispatcher) Stream(ctx context.Context, req *Request) (io.ReadCloser, http.Header, error) {
	httpResp, err := d.roundTrip(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		defer func() { _ = httpResp.Body.Close() }()
		body, _ := io.ReadAll(httpResp.Body)
		return nil, nil, newAPIError(req.Method, req.Path, httpResp.StatusCode, body)
	}

	return httpResp.Body, httpResp.Header, nil
}

func (d *Dispatcher) policyFor(req *Request) (CachePolicy, error) {
	if req.Method != http.MethodGet {
		return NetworkOnly, nil
	}

	policy := req.CachePolicy
	if policy == CacheDefault {
		policy = d.opts.DefaultCachePolicy
	}

	if d.cache == nil {
		if policy == CacheOnly {
			return policy, fmt.Errorf("%s %s: %w", req.Method, req.Path, ErrCacheMiss)
		}
		return NetworkOnly, nil
	}
	return policy, nil
}

func (d *Dispatcher) send(ctx context.Context, req *Request) (*Response, error) {
	start := d.now()
	httpResp, err := d.roundTrip(ctx, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &TransportError{Method: req.Method, URL: d.URL(req.Path, req.Query), Err: err}
	}

	d.logger.Debug("request",
		"method", req.Method,
		"path", req.Path,
		"status", httpResp.StatusCode,
		"duration", d.now().Sub(start),
		"request_id", httpResp.Request.Header.Get("X-Request-ID"),
	)

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, newAPIError(req.Method, req.Path, httpResp.StatusCode, body)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}, nil
}

func (d *Dispatcher) roundTrip(ctx context.Context, req *Request) (*http.Response, error) {
	httpReq, err := d.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	httpResp, err := d.client.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &TransportError{Method: req.Method, URL: httpReq.URL.String(), Err: err}
	}
	if httpResp.Request == nil {
		httpResp.Request = httpReq
	}
	return httpResp, nil
}

func (d *Dispatcher) newHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	var body io.Reader
	contentType := req.ContentType
	switch {
	case req.RawBody != nil:
		body = req.RawBody
	case req.Body != nil:
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("unable to encode request body: %w", err)
		}
		body = bytes.NewReader(b)
		if contentType == "" {
			contentType = "application/json"
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, d.URL(req.Path, req.Query), body)
	if err != nil {
		return nil, fmt.Errorf("unable to create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", d.opts.UserAgent)
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if d.opts.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+d.opts.APIKey)
	}
	if d.opts.ProjectID != "" {
		httpReq.Header.Set("X-Project-ID", d.opts.ProjectID)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	for k, vs := range d.opts.Headers {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	for k, vs := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	return httpReq, nil
}

// readCache returns a fresh entry for key. Unreadable and expired entries count as misses.
func (d *Dispatcher) readCache(key string) (*Response, bool) {
	if d.cache == nil || key == "" {
		return nil, false
	}

	b, ok, err := d.cache.Get(key)
	if err != nil {
		d.logger.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(b, &entry); err != nil {
		d.logger.Warn("discarding unreadable cache entry", "key", key, "error", err)
		_ = d.cache.Delete(key)
		return nil, false
	}

	if d.opts.CacheMaxAge > 0 && d.now().Sub(entry.StoredAt) > d.opts.CacheMaxAge {
		d.logger.Debug("discarding expired cache entry", "key", key, "stored_at", entry.StoredAt)
		_ = d.cache.Delete(key)
		return nil, false
	}

	return &Response{
		StatusCode: entry.Status,
		Header:     http.Header{},
		Body:       entry.Body,
		FromCache:  true,
		StoredAt:   entry.StoredAt,
	}, true
}

func (d *Dispatcher) writeCache(key string, resp *Response) {
	b, err := json.Marshal(cacheEntry{
		Status:   resp.StatusCode,
		StoredAt: d.now().UTC(),
		Body:     resp.Body,
	})
	if err == nil {
		err = d.cache.Set(key, b)
	}
	if err != nil {
		d.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

// requestedPolicy is the caller's policy after default resolution. policyFor reports NetworkOnly for every
// mutation since mutations never read the cache.
func (d *Dispatcher) requestedPolicy(req *Request) CachePolicy {
	if req.CachePolicy == CacheDefault {
		return d.opts.DefaultCachePolicy
	}
	return req.CachePolicy
}

// remember applies the write side of the cache policy to a successful response.
func (d *Dispatcher) remember(req *Request, policy CachePolicy, key string, resp *Response) {
	if d.cache == nil {
		return
	}

	switch req.Method {
	case http.MethodGet:
		if policy != NetworkOnly {
			d.writeCache(key, resp)
		}
	case http.MethodPut, http.MethodPatch, http.MethodPost:
		if d.requestedPolicy(req) == NetworkOnly {
			return
		}
		path := req.CachePath
		if path == "" && req.Method != http.MethodPost {
			path = req.Path
		}
		if path != "" && len(resp.Body) > 0 {
			d.writeCache(d.CacheKey(path, nil), resp)
		}
	case http.MethodDelete:
		if err := d.cache.Delete(d.CacheKey(req.Path, nil)); err != nil {
			d.logger.Warn("cache delete failed", "path", req.Path, "error", err)
		}
	}
}
