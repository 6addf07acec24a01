// Package httpcache provides a file-based download cache for ontology
// sources.
//
// # Overview
//
// Controlled-vocabulary files referenced by mzQC documents (OBO sources
// like psi-ms.obo) run to megabytes and change rarely. This package caches
// downloaded bytes in the filesystem (~/.cache/mzqc/) with a configurable
// TTL so repeated term lookups do not re-fetch the ontology:
//
//   - [Cache]: file-based byte caching keyed by source URL
//   - [Retry]: automatic retry with exponential backoff for transient
//     download failures
//
// Cache entries are stored as plain files named by a SHA-256 hash of the
// key, so arbitrary URLs are safe keys. Freshness is judged by file
// modification time.
//
// Cache instances are not goroutine-safe; callers sharing one across
// goroutines must synchronize. Separate instances (even in different
// processes) can share a directory, since the filesystem provides atomic
// writes.
package httpcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Get] when a cached entry exists but has
// exceeded its time-to-live. The stale bytes remain on disk; callers
// should fetch fresh data and update the cache with [Cache.Set].
//
// Use errors.Is to check for this error.
var ErrExpired = errors.New("cache entry expired")

// Cache stores downloaded bytes in a directory, one file per key.
//
// A TTL of 0 means entries never expire. Use [Cache.Namespace] to create
// scoped views that prefix keys, keeping different source kinds apart.
type Cache struct {
	dir    string
	ttl    time.Duration
	prefix string
}

// NewCache creates a Cache that stores entries in dir with the given TTL.
//
// If dir is empty, the default directory ~/.cache/mzqc/ is used. The
// directory is created with mode 0755 if it doesn't exist; directory
// creation errors are the only source of failure.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".cache", "mzqc")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Dir returns the absolute path to the cache directory.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the time-to-live for cache entries. 0 means no expiry.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get retrieves cached bytes by key.
//
// Return values distinguish four outcomes:
//   - (data, true, nil): hit, the entry is fresh.
//   - (nil, false, nil): miss, no entry exists.
//   - (nil, false, ErrExpired): an entry exists but exceeded its TTL.
//   - (nil, false, other error): I/O failure.
//
// Get does not modify the cache; reads never refresh the TTL.
func (c *Cache) Get(key string) ([]byte, bool, error) {
	path := c.keyPath(c.prefix + key)
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

// Set stores bytes under the given key, overwriting any existing entry
// and resetting its modification time, which refreshes the TTL.
func (c *Cache) Set(key string, data []byte) error {
	return os.WriteFile(c.keyPath(c.prefix+key), data, 0o644)
}

// Delete removes the entry for key. Deleting a missing entry is not an
// error.
func (c *Cache) Delete(key string) error {
	err := os.Remove(c.keyPath(c.prefix + key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Namespace returns a Cache view that prefixes all keys with prefix,
// sharing the same directory and TTL. Calls can be chained to build
// hierarchical key spaces; an empty prefix is valid.
func (c *Cache) Namespace(prefix string) *Cache {
	return &Cache{
		dir:    c.dir,
		ttl:    c.ttl,
		prefix: c.prefix + prefix,
	}
}

func (c *Cache) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:]))
}

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (network timeouts, 5xx responses) with this type
// so that [Retry] knows to attempt the operation again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry executes fn up to attempts times with exponential backoff.
// It only retries errors wrapped with [RetryableError]; other errors are
// returned immediately. The delay doubles after each failed attempt.
// Returns the last error if all attempts fail, or ctx.Err() if cancelled.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// RetryWithBackoff is a convenience wrapper around [Retry] with sensible
// defaults: 3 attempts with 1 second initial delay (doubling each retry).
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
