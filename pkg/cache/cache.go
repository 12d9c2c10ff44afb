// Package cache provides file-based caching of rendered artifacts.
//
// Rasterizing a collection graph through Graphviz is the one genuinely
// expensive step in the tool, so the tree command caches its SVG and PNG
// output keyed by a content hash of the source collection. Entries are plain
// files in the cache directory; expiry is based on file modification time.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrExpired is returned by [Cache.Get] when a cached entry exists but has
// exceeded its time-to-live. The data is still on disk but considered stale;
// callers should recompute and refresh it with [Cache.Set].
var ErrExpired = errors.New("cache entry expired")

// Cache stores byte artifacts as files in a directory.
//
// Filenames are derived from a SHA-256 hash of the key, so keys may contain
// arbitrary characters and arbitrary length. A TTL of 0 means entries never
// expire. Cache instances are not goroutine-safe; separate instances (even
// in different processes) can share a directory.
type Cache struct {
	dir string
	ttl time.Duration
}

// New creates a Cache that stores entries in dir with the given TTL.
// If dir is empty, [DefaultDir] is used. The directory is created if needed.
func New(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// DefaultDir returns the per-user cache directory for colsplit.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "colsplit"), nil
}

// Dir returns the cache directory path.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the configured time-to-live. Zero means no expiry.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get retrieves a cached artifact by key.
//
// Outcomes:
//   - (data, true, nil): hit, entry is fresh
//   - (nil, false, nil): miss, no entry for this key
//   - (nil, false, ErrExpired): entry exists but exceeded its TTL
//   - (nil, false, other error): I/O failure
func (c *Cache) Get(key string) ([]byte, bool, error) {
	path := c.keyPath(key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return nil, false, ErrExpired
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores an artifact under key, overwriting any existing entry and
// refreshing its TTL.
func (c *Cache) Set(key string, data []byte) error {
	return os.WriteFile(c.keyPath(key), data, 0o644)
}

// Clear removes every entry in the cache directory and reports how many
// were deleted.
func (c *Cache) Clear() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	count := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err == nil {
			count++
		}
	}
	return count, nil
}

func (c *Cache) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:]))
}

// Key builds a cache key from its components. Including a content hash of
// the source document in the parts makes keys self-invalidating: any edit to
// the collection produces a different key.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Hash computes the SHA-256 hex digest of data, for use as a Key component.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
