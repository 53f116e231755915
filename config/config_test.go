package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c2fo/docstore"
	"github.com/c2fo/docstore/cache/mem"
	"github.com/c2fo/docstore/cache/vfscache"
	"github.com/c2fo/docstore/dispatch"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// homedirReset makes go-homedir read $HOME again for the rest of the test.
func homedirReset(t *testing.T) {
	t.Helper()
	homedir.DisableCache = true
	homedir.Reset()
	t.Cleanup(func() {
		homedir.DisableCache = false
		homedir.Reset()
	})
}

func TestLoad(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		path := writeConfig(t, `
# docstore client configuration
endpoint   = "https://docstore.example.com/v1"
project    = "blog"
api_key    = "secret"
user_agent = "docstore-cli/1.0"
timeout    = "10s"

cache {
  uri     = "memory"
  max_age = "24h"
  policy  = "cache-first"
}

upload {
  chunk_size = 8388608
}
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "https://docstore.example.com/v1", cfg.Endpoint)
		assert.Equal(t, "blog", cfg.Project)
		assert.Equal(t, "secret", cfg.APIKey)
		assert.Equal(t, "docstore-cli/1.0", cfg.UserAgent)
		assert.Equal(t, "10s", cfg.Timeout)
		require.NotNil(t, cfg.Cache)
		assert.Equal(t, MemoryCacheURI, cfg.Cache.URI)
		assert.Equal(t, "24h", cfg.Cache.MaxAge)
		assert.Equal(t, "cache-first", cfg.Cache.Policy)
		require.NotNil(t, cfg.Upload)
		assert.Equal(t, int64(8388608), cfg.Upload.ChunkSize)
	})

	t.Run("empty configuration", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, ""))
		require.NoError(t, err)
		assert.Nil(t, cfg.Cache)
		assert.Nil(t, cfg.Upload)
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := Load("/nonexistent/config.hcl")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration file not found")
	})

	t.Run("default path may be missing", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		homedirReset(t)

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, &Config{}, cfg)
	})

	t.Run("invalid HCL", func(t *testing.T) {
		_, err := Load(writeConfig(t, `endpoint = `))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse configuration file")
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := Load(writeConfig(t, `region = "us-east-1"`))
		require.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		tests := map[string]string{
			"endpoint": `endpoint = "not a url"`,
			"timeout":  `timeout = "soon"`,
			"policy":   "cache {\n  policy = \"sometimes\"\n}",
			"max_age":  "cache {\n  max_age = \"forever\"\n}",
			"uri":      "cache {\n  uri = \"/no/scheme\"\n}",
			"chunk":    "upload {\n  chunk_size = -1\n}",
		}
		for name, content := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := Load(writeConfig(t, content))
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid configuration file")
			})
		}
	})
}

func TestClientOptions(t *testing.T) {
	t.Run("builds a client", func(t *testing.T) {
		cfg := &Config{
			Endpoint:  "https://docstore.example.com/v1",
			Project:   "blog",
			APIKey:    "secret",
			UserAgent: "docstore-cli/1.0",
			Timeout:   "5s",
			Cache:     &CacheConfig{URI: MemoryCacheURI, MaxAge: "1h", Policy: "cache-only"},
			Upload:    &UploadConfig{ChunkSize: 2048},
		}

		opts, err := cfg.ClientOptions()
		require.NoError(t, err)

		client, err := docstore.New(opts...)
		require.NoError(t, err)

		o := client.Options()
		assert.Equal(t, "https://docstore.example.com/v1", o.Endpoint)
		assert.Equal(t, "blog", o.ProjectID)
		assert.Equal(t, "secret", o.APIKey)
		assert.Equal(t, "docstore-cli/1.0", o.UserAgent)
		assert.Equal(t, "5s", o.Timeout.String())
		assert.Equal(t, "1h0m0s", o.CacheMaxAge.String())
		assert.Equal(t, dispatch.CacheOnly, o.CachePolicy)
		assert.Equal(t, int64(2048), o.ChunkSize)
		assert.IsType(t, &mem.Cache{}, client.Cache())
	})

	t.Run("vfs cache location", func(t *testing.T) {
		uri := "mem://config/" + uuid.NewString() + "/"
		cfg := &Config{Cache: &CacheConfig{URI: uri}}

		opts, err := cfg.ClientOptions()
		require.NoError(t, err)
		require.Len(t, opts, 1)

		client, err := docstore.New(append(opts,
			docstore.WithEndpoint("https://docstore.example.com/v1"),
			docstore.WithProject("blog"),
		)...)
		require.NoError(t, err)

		c, ok := client.Cache().(*vfscache.Cache)
		require.True(t, ok)
		assert.Equal(t, uri, c.Location().URI())
	})

	t.Run("unset values are omitted", func(t *testing.T) {
		opts, err := (&Config{}).ClientOptions()
		require.NoError(t, err)
		assert.Empty(t, opts)
	})
}
