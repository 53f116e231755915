package docstore

import (
	"net/http"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/hashicorp/go-hclog"

	"github.com/c2fo/docstore/cache"
	"github.com/c2fo/docstore/dispatch"
	"github.com/c2fo/docstore/options"
	"github.com/c2fo/docstore/upload"
)

// Environment variables read by NewOptions.
const (
	EnvEndpoint = "DOCSTORE_ENDPOINT"
	EnvProject  = "DOCSTORE_PROJECT"
	EnvAPIKey   = "DOCSTORE_API_KEY"
)

const (
	// DefaultTimeout bounds each request made with the default HTTP client.
	DefaultTimeout = 30 * time.Second

	minChunkSize int64 = 1024
	maxChunkSize int64 = 100 * 1024 * 1024

	optionNameEndpoint    = "endpoint"
	optionNameProject     = "project"
	optionNameAPIKey      = "apiKey"
	optionNameHTTPClient  = "httpClient"
	optionNameCache       = "cache"
	optionNameCachePolicy = "cachePolicy"
	optionNameCacheMaxAge = "cacheMaxAge"
	optionNameLogger      = "logger"
	optionNameChunkSize   = "chunkSize"
	optionNameHeader      = "header"
	optionNameUserAgent   = "userAgent"
	optionNameTimeout     = "timeout"
)

// Options holds Client configuration.
type Options struct {
	// Endpoint is the API root, e.g. https://docstore.example.com/v1 (required).
	Endpoint string
	// ProjectID is the project every reference is bound to (required).
	ProjectID string
	APIKey    string
	UserAgent string
	// Headers are added to every request.
	Headers http.Header
	// CachePolicy is the default policy of reads. Requests may override it with request.WithCachePolicy.
	CachePolicy dispatch.CachePolicy
	// CacheMaxAge ignores cached responses older than this. Zero keeps them forever.
	CacheMaxAge time.Duration
	// ChunkSize is the upload chunk size and the largest direct upload, between 1 KiB and 100 MiB.
	ChunkSize int64
	// Timeout applies to the default HTTP client only.
	Timeout time.Duration
}

// NewOptions creates Options with default values. Endpoint, ProjectID and APIKey are read from the environment.
func NewOptions() Options {
	return Options{
		Endpoint:    os.Getenv(EnvEndpoint),
		ProjectID:   os.Getenv(EnvProject),
		APIKey:      os.Getenv(EnvAPIKey),
		UserAgent:   dispatch.DefaultUserAgent,
		Headers:     http.Header{},
		CachePolicy: dispatch.NetworkFirst,
		ChunkSize:   upload.DefaultChunkSize,
		Timeout:     DefaultTimeout,
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Endpoint, validation.Required, is.URL),
		validation.Field(&o.ProjectID, validation.Required, validation.By(validID)),
		validation.Field(&o.ChunkSize, validation.Min(minChunkSize), validation.Max(maxChunkSize)),
		validation.Field(&o.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&o.CacheMaxAge, validation.Min(time.Duration(0))),
		validation.Field(&o.CachePolicy, validation.In(
			dispatch.CacheDefault, dispatch.NetworkOnly, dispatch.NetworkFirst, dispatch.CacheFirst, dispatch.CacheOnly,
		)),
	)
}

// WithEndpoint sets the API root.
func WithEndpoint(endpoint string) options.NewClientOption[Client] {
	return &endpointOpt{endpoint: endpoint}
}

type endpointOpt struct {
	endpoint string
}

func (o *endpointOpt) Apply(c *Client) {
	c.opts.Endpoint = o.endpoint
}

func (o *endpointOpt) NewClientOptionName() string {
	return optionNameEndpoint
}

// WithProject sets the project id.
func WithProject(projectID string) options.NewClientOption[Client] {
	return &projectOpt{projectID: projectID}
}

type projectOpt struct {
	projectID string
}

func (o *projectOpt) Apply(c *Client) {
	c.opts.ProjectID = o.projectID
}

func (o *projectOpt) NewClientOptionName() string {
	return optionNameProject
}

// WithAPIKey sets the key sent as a bearer token.
func WithAPIKey(key string) options.NewClientOption[Client] {
	return &apiKeyOpt{key: key}
}

type apiKeyOpt struct {
	key string
}

func (o *apiKeyOpt) Apply(c *Client) {
	c.opts.APIKey = o.key
}

func (o *apiKeyOpt) NewClientOptionName() string {
	return optionNameAPIKey
}

// WithHTTPClient replaces the default *http.Client. The Timeout option does not apply to it.
func WithHTTPClient(client dispatch.HTTPClient) options.NewClientOption[Client] {
	return &httpClientOpt{client: client}
}

type httpClientOpt struct {
	client dispatch.HTTPClient
}

func (o *httpClientOpt) Apply(c *Client) {
	c.httpClient = o.client
}

func (o *httpClientOpt) NewClientOptionName() string {
	return optionNameHTTPClient
}

// WithCache enables the response cache, e.g. mem.New() or a vfscache.Cache. Without it reads always go to the
// network.
func WithCache(c cache.Cache) options.NewClientOption[Client] {
	return &cacheOpt{cache: c}
}

type cacheOpt struct {
	cache cache.Cache
}

func (o *cacheOpt) Apply(c *Client) {
	c.cache = o.cache
}

func (o *cacheOpt) NewClientOptionName() string {
	return optionNameCache
}

// WithCachePolicy sets the default cache policy of reads. Default is dispatch.NetworkFirst.
func WithCachePolicy(policy dispatch.CachePolicy) options.NewClientOption[Client] {
	return &cachePolicyOpt{policy: policy}
}

type cachePolicyOpt struct {
	policy dispatch.CachePolicy
}

func (o *cachePolicyOpt) Apply(c *Client) {
	c.opts.CachePolicy = o.policy
}

func (o *cachePolicyOpt) NewClientOptionName() string {
	return optionNameCachePolicy
}

// WithCacheMaxAge ignores cached responses older than maxAge.
func WithCacheMaxAge(maxAge time.Duration) options.NewClientOption[Client] {
	return &cacheMaxAgeOpt{maxAge: maxAge}
}

type cacheMaxAgeOpt struct {
	maxAge time.Duration
}

func (o *cacheMaxAgeOpt) Apply(c *Client) {
	c.opts.CacheMaxAge = o.maxAge
}

func (o *cacheMaxAgeOpt) NewClientOptionName() string {
	return optionNameCacheMaxAge
}

// WithLogger sets the logger. Requests are logged at debug level, cache fallbacks at warn level.
func WithLogger(logger hclog.Logger) options.NewClientOption[Client] {
	return &loggerOpt{logger: logger}
}

type loggerOpt struct {
	logger hclog.Logger
}

func (o *loggerOpt) Apply(c *Client) {
	if o.logger != nil {
		c.logger = o.logger
	}
}

func (o *loggerOpt) NewClientOptionName() string {
	return optionNameLogger
}

// WithChunkSize sets the upload chunk size. Default is 5 MiB.
func WithChunkSize(size int64) options.NewClientOption[Client] {
	return &chunkSizeOpt{size: size}
}

type chunkSizeOpt struct {
	size int64
}

func (o *chunkSizeOpt) Apply(c *Client) {
	c.opts.ChunkSize = o.size
}

func (o *chunkSizeOpt) NewClientOptionName() string {
	return optionNameChunkSize
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) options.NewClientOption[Client] {
	return &headerOpt{key: key, value: value}
}

type headerOpt struct {
	key   string
	value string
}

func (o *headerOpt) Apply(c *Client) {
	if c.opts.Headers == nil {
		c.opts.Headers = http.Header{}
	}
	c.opts.Headers.Add(o.key, o.value)
}

func (o *headerOpt) NewClientOptionName() string {
	return optionNameHeader
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) options.NewClientOption[Client] {
	return &userAgentOpt{userAgent: userAgent}
}

type userAgentOpt struct {
	userAgent string
}

func (o *userAgentOpt) Apply(c *Client) {
	c.opts.UserAgent = o.userAgent
}

func (o *userAgentOpt) NewClientOptionName() string {
	return optionNameUserAgent
}

// WithTimeout sets the per-request timeout of the default HTTP client. Zero disables it.
func WithTimeout(timeout time.Duration) options.NewClientOption[Client] {
	return &timeoutOpt{timeout: timeout}
}

type timeoutOpt struct {
	timeout time.Duration
}

func (o *timeoutOpt) Apply(c *Client) {
	c.opts.Timeout = o.timeout
}

func (o *timeoutOpt) NewClientOptionName() string {
	return optionNameTimeout
}
