// Package cache provides response caches for the KEGG fetcher.
//
// # Backends
//
//   - [NullCache]: never stores anything (the library default)
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache in Redis, using native key expiry
//   - [MongoCache]: shared cache in a MongoDB collection with a TTL index
//
// Caches store raw response bodies keyed by the cleaned request URL. Parsed
// structures are never cached, so a cache hit goes through exactly the same
// parser as a fresh response.
package cache

import (
	"context"
	"time"
)

// Cache stores byte payloads under string keys with an optional TTL.
//
// Get reports a miss as (nil, false, nil); expired entries are misses.
// A ttl of 0 passed to Set means the entry does not expire.
//
// Implementations are safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// HTTPKey builds the cache key for a response: "http:<namespace>:<url>".
func HTTPKey(namespace, url string) string {
	return "http:" + namespace + ":" + url
}
