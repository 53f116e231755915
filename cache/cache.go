// Package cache defines the flat key-value store the dispatcher uses to keep serialized responses for offline
// reads.
//
// Two implementations ship with docstore:
//
//   - cache/mem keeps entries in process memory.
//   - cache/vfscache persists entries as files on any vfs location (file://, mem://, s3://, gs://, ...).
package cache

// Cache is a flat string-keyed store of opaque values. Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value stored under key. The boolean is false when the key is absent.
	Get(key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Clear removes every entry.
	Clear() error
}
