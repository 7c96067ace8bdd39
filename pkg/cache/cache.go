// Package cache provides byte caches for rendered graph artifacts.
//
// Graphviz layout runs in a WebAssembly runtime and dominates the cost of
// SVG and PNG output. Rendered artifacts are cached by a hash of their DOT
// source, so re-rendering an unchanged graph is a file read. Crawl results
// themselves are never cached: every run walks the source tree afresh.
//
// Two implementations are provided:
//   - [FileCache] stores entries as JSON files under a directory (CLI use)
//   - [NullCache] never stores anything (--no-cache and tests)
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values by key with an optional TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired or corrupt entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}
