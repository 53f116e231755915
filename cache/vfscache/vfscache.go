package vfscache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/c2fo/vfs/v7"
	"github.com/c2fo/vfs/v7/vfssimple"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/go-homedir"

	"github.com/c2fo/docstore/cache"
	"github.com/c2fo/docstore/utils"
)

const (
	// DefaultDir is where NewDefault keeps entries.
	DefaultDir = "~/.docstore/cache/"

	entryExt = ".json"
)

var errLocationRequired = errors.New("non-nil vfs.Location is required")

// Cache implements cache.Cache on top of a vfs.Location.
type Cache struct {
	mu       sync.Mutex
	location vfs.Location
}

var _ cache.Cache = (*Cache)(nil)

// New returns a cache storing entries at location.
func New(location vfs.Location) (*Cache, error) {
	if location == nil {
		return nil, errLocationRequired
	}
	return &Cache{location: location}, nil
}

// NewFromURI resolves a location URI such as file:///var/cache/docstore/ or s3://bucket/prefix/ and returns a
// cache stored there. A missing trailing slash is added.
func NewFromURI(uri string) (*Cache, error) {
	loc, err := vfssimple.NewLocation(utils.EnsureTrailingSlash(uri))
	if err != nil {
		return nil, fmt.Errorf("unable to open cache location %q: %w", uri, err)
	}
	return New(loc)
}

// NewDefault returns a cache in DefaultDir on the local filesystem.
func NewDefault() (*Cache, error) {
	uri, err := DefaultURI()
	if err != nil {
		return nil, err
	}
	return NewFromURI(uri)
}

// DefaultURI returns DefaultDir, home-expanded, as a file:// URI.
func DefaultURI() (string, error) {
	dir, err := homedir.Expand(DefaultDir)
	if err != nil {
		return "", fmt.Errorf("unable to resolve cache dir: %w", err)
	}
	return utils.PathToURI(utils.EnsureTrailingSlash(dir))
}

// Location returns the location holding the entries.
func (c *Cache) Location() vfs.Location {
	return c.location
}

// FileName returns the entry file name used for key.
func FileName(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:]) + entryExt
}

// Get reads the entry for key.
func (c *Cache) Get(key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := c.location.NewFile(FileName(key))
	if err != nil {
		return nil, false, utils.WrapCacheError(err)
	}
	defer func() { _ = f.Close() }()

	exists, err := f.Exists()
	if err != nil {
		return nil, false, utils.WrapCacheError(err)
	}
	if !exists {
		return nil, false, nil
	}

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, false, utils.WrapCacheError(err)
	}
	return b, true, nil
}

// Set writes the entry for key. The write becomes visible when the underlying file is closed.
func (c *Cache) Set(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := c.location.NewFile(FileName(key))
	if err != nil {
		return utils.WrapCacheError(err)
	}

	if _, err := f.Write(value); err != nil {
		_ = f.Close()
		return utils.WrapCacheError(err)
	}
	return utils.WrapCacheError(f.Close())
}

// Delete removes the entry for key if present.
func (c *Cache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return utils.WrapCacheError(c.deleteEntry(FileName(key)))
}

// Clear removes every entry file at the location. All entries are attempted; failures are aggregated.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	names, err := c.location.List()
	if err != nil {
		return utils.WrapCacheError(err)
	}

	var result *multierror.Error
	for _, name := range names {
		if !strings.HasSuffix(name, entryExt) {
			continue
		}
		if err := c.deleteEntry(name); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", name, err))
		}
	}
	return utils.WrapCacheError(result.ErrorOrNil())
}

// Len returns the number of entry files at the location.
func (c *Cache) Len() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	names, err := c.location.List()
	if err != nil {
		return 0, utils.WrapCacheError(err)
	}
	n := 0
	for _, name := range names {
		if strings.HasSuffix(name, entryExt) {
			n++
		}
	}
	return n, nil
}

func (c *Cache) deleteEntry(name string) error {
	f, err := c.location.NewFile(name)
	if err != nil {
		return err
	}
	exists, err := f.Exists()
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return c.location.DeleteFile(name)
}
