package docstore

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-hclog"

	"github.com/c2fo/docstore/cache"
	"github.com/c2fo/docstore/dispatch"
	"github.com/c2fo/docstore/options"
	"github.com/c2fo/docstore/options/request"
	"github.com/c2fo/docstore/upload"
)

// Client is bound to one project of a docstore service. It is safe for concurrent use when its cache is.
type Client struct {
	opts       Options
	httpClient dispatch.HTTPClient
	cache      cache.Cache
	logger     hclog.Logger
	dispatcher *dispatch.Dispatcher
	uploader   *upload.Uploader
}

// New initializer for Client. Options not given fall back to the DOCSTORE_ENDPOINT, DOCSTORE_PROJECT and
// DOCSTORE_API_KEY environment variables.
func New(opts ...options.NewClientOption[Client]) (*Client, error) {
	c := &Client{
		opts:   NewOptions(),
		logger: hclog.NewNullLogger(),
	}
	options.ApplyOptions(c, opts...)

	if err := c.opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client options: %w", err)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.opts.Timeout}
	}

	c.dispatcher = dispatch.New(dispatch.Options{
		BaseURL:            c.opts.Endpoint,
		APIKey:             c.opts.APIKey,
		ProjectID:          c.opts.ProjectID,
		UserAgent:          c.opts.UserAgent,
		Headers:            c.opts.Headers,
		DefaultCachePolicy: c.opts.CachePolicy,
		CacheMaxAge:        c.opts.CacheMaxAge,
	}, c.httpClient, c.cache, c.logger.Named("dispatch"))

	c.uploader = upload.New(c.dispatcher,
		upload.WithChunkSize(c.opts.ChunkSize),
		upload.WithLogger(c.logger.Named("upload")),
	)

	return c, nil
}

// Options returns the client configuration.
func (c *Client) Options() Options {
	return c.opts
}

// Cache returns the response cache, nil when caching is disabled.
func (c *Client) Cache() cache.Cache {
	return c.cache
}

// ClearCache removes every cached response.
func (c *Client) ClearCache() error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Clear()
}

// Project returns the project the client is bound to.
func (c *Client) Project() ProjectRef {
	return ProjectRef{client: c, id: c.opts.ProjectID}
}

// Collection is shorthand for c.Project().Collection(id).
func (c *Client) Collection(id string) CollectionRef {
	return c.Project().Collection(id)
}

// Bucket is shorthand for c.Project().Bucket(id).
func (c *Client) Bucket(id string) BucketRef {
	return c.Project().Bucket(id)
}

// do sends req with the per-request options applied and decodes the response into out, when not nil.
func (c *Client) do(ctx context.Context, req *dispatch.Request, opts []options.RequestOption, out any) (*dispatch.Response, error) {
	applyRequestOptions(req, opts)

	resp, err := c.dispatcher.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.FromCache {
		c.logger.Trace("cached response", "path", req.Path, "stored_at", resp.StoredAt)
	}

	if out != nil {
		if err := resp.Decode(out); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func applyRequestOptions(req *dispatch.Request, opts []options.RequestOption) {
	for _, o := range opts {
		switch o := o.(type) {
		case *request.CachePolicy:
			req.CachePolicy = o.Policy
		case *request.Header:
			if req.Header == nil {
				req.Header = http.Header{}
			}
			req.Header.Add(o.Key, o.Value)
		}
	}
}

// permissionsOf returns the permissions set with request.WithPermissions, nil when none were.
func permissionsOf(opts []options.RequestOption) []string {
	var perms []string
	for _, o := range opts {
		if p, ok := o.(request.Permissions); ok {
			perms = append(perms, p...)
		}
	}
	return perms
}
