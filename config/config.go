// Package config loads docstore client settings from an HCL file.
//
//	endpoint = "https://docstore.example.com/v1"
//	project  = "blog"
//	api_key  = "..."
//	timeout  = "30s"
//
//	cache {
//	  uri     = "file:///var/cache/docstore/"
//	  max_age = "24h"
//	  policy  = "network-first"
//	}
//
//	upload {
//	  chunk_size = 8388608
//	}
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/mitchellh/go-homedir"

	"github.com/c2fo/docstore"
	"github.com/c2fo/docstore/cache"
	"github.com/c2fo/docstore/cache/mem"
	"github.com/c2fo/docstore/cache/vfscache"
	"github.com/c2fo/docstore/dispatch"
	"github.com/c2fo/docstore/options"
)

// DefaultPath is read by Load when no path is given.
const DefaultPath = "~/.docstore/config.hcl"

// MemoryCacheURI selects the in-memory cache instead of a vfs location.
const MemoryCacheURI = "memory"

// Config is the content of a configuration file. Every setting is optional; unset settings fall back to the
// environment and the client defaults.
type Config struct {
	Endpoint  string `hcl:"endpoint,optional"`
	Project   string `hcl:"project,optional"`
	APIKey    string `hcl:"api_key,optional"`
	UserAgent string `hcl:"user_agent,optional"`
	// Timeout is a duration such as "30s".
	Timeout string `hcl:"timeout,optional"`

	Cache  *CacheConfig  `hcl:"cache,block"`
	Upload *UploadConfig `hcl:"upload,block"`
}

// CacheConfig enables the response cache.
type CacheConfig struct {
	// URI is a vfs location such as file:///var/cache/docstore/ or s3://bucket/cache/, or "memory". Empty means
	// ~/.docstore/cache/.
	URI    string `hcl:"uri,optional"`
	MaxAge string `hcl:"max_age,optional"`
	// Policy is one of network-first, cache-first, network-only or cache-only.
	Policy string `hcl:"policy,optional"`
}

// UploadConfig tunes uploads.
type UploadConfig struct {
	ChunkSize int64 `hcl:"chunk_size,optional"`
}

// Load reads the configuration file at path. An empty path reads DefaultPath, which may be missing.
func Load(path string) (*Config, error) {
	optional := path == ""
	if optional {
		path = DefaultPath
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("unable to expand configuration path %s: %w", path, err)
	}

	if _, err := os.Stat(expanded); errors.Is(err, os.ErrNotExist) {
		if optional {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("configuration file not found: %s", expanded)
	}

	cfg := &Config{}
	if err := hclsimple.DecodeFile(expanded, nil, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration file %s: %w", expanded, err)
	}
	return cfg, nil
}

// Validate checks the values that are set.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Endpoint, is.URL),
		validation.Field(&c.Timeout, validation.By(duration)),
		validation.Field(&c.Cache),
		validation.Field(&c.Upload),
	)
}

// Validate checks the cache block.
func (c *CacheConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.URI, validation.By(locationURI)),
		validation.Field(&c.MaxAge, validation.By(duration)),
		validation.Field(&c.Policy, validation.By(cachePolicy)),
	)
}

// Validate checks the upload block.
func (u *UploadConfig) Validate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.ChunkSize, validation.Min(int64(0))),
	)
}

func duration(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.ParseDuration(s); err != nil {
		return errors.New("must be a duration such as 30s or 24h")
	}
	return nil
}

func cachePolicy(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	_, err := dispatch.ParseCachePolicy(s)
	return err
}

func locationURI(value any) error {
	s, _ := value.(string)
	if s == "" || s == MemoryCacheURI {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return errors.New("must be a vfs URI such as file:///path/ or s3://bucket/path/")
	}
	return nil
}

// ClientOptions turns the configuration into client options. Options for unset values are omitted so the
// client's environment fallbacks still apply.
func (c *Config) ClientOptions() ([]options.NewClientOption[docstore.Client], error) {
	var opts []options.NewClientOption[docstore.Client]

	if c.Endpoint != "" {
		opts = append(opts, docstore.WithEndpoint(c.Endpoint))
	}
	if c.Project != "" {
		opts = append(opts, docstore.WithProject(c.Project))
	}
	if c.APIKey != "" {
		opts = append(opts, docstore.WithAPIKey(c.APIKey))
	}
	if c.UserAgent != "" {
		opts = append(opts, docstore.WithUserAgent(c.UserAgent))
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return nil, fmt.Errorf("timeout: %w", err)
		}
		opts = append(opts, docstore.WithTimeout(d))
	}

	if c.Cache != nil {
		cacheOpts, err := c.Cache.clientOptions()
		if err != nil {
			return nil, err
		}
		opts = append(opts, cacheOpts...)
	}

	if c.Upload != nil && c.Upload.ChunkSize > 0 {
		opts = append(opts, docstore.WithChunkSize(c.Upload.ChunkSize))
	}

	return opts, nil
}

func (c *CacheConfig) clientOptions() ([]options.NewClientOption[docstore.Client], error) {
	var (
		store cache.Cache
		err   error
	)
	switch c.URI {
	case MemoryCacheURI:
		store = mem.New()
	case "":
		store, err = vfscache.NewDefault()
	default:
		store, err = vfscache.NewFromURI(c.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}

	opts := []options.NewClientOption[docstore.Client]{docstore.WithCache(store)}

	if c.MaxAge != "" {
		d, err := time.ParseDuration(c.MaxAge)
		if err != nil {
			return nil, fmt.Errorf("cache max_age: %w", err)
		}
		opts = append(opts, docstore.WithCacheMaxAge(d))
	}
	if c.Policy != "" {
		policy, err := dispatch.ParseCachePolicy(c.Policy)
		if err != nil {
			return nil, fmt.Errorf("cache policy: %w", err)
		}
		opts = append(opts, docstore.WithCachePolicy(policy))
	}
	return opts, nil
}
