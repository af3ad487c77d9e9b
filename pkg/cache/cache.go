// Package cache stores generated terrains so identical requests are not
// recomputed.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default).
//   - [RedisCache]: github.com/redis/go-redis/v9, for shared deployments.
//   - [MongoCache]: go.mongodb.org/mongo-driver, for durable shared storage.
//   - [NullCache]: caching disabled.
//
// All backends implement [Cache] and are safe for concurrent use.
//
// # Keys
//
// A [Keyer] derives keys from a content hash of the inputs and a hash of
// the generation options. [ScopedKeyer] prefixes keys to isolate tenants.
//
// # Failures
//
// Network backends retry transient failures with [RetryWithBackoff]. A
// failed cache read is never fatal to a caller: the pipeline treats it as
// a miss and regenerates.
package cache

import (
	"context"
	"time"
)

// TTLTerrain is how long a generated terrain stays cached. Generation is
// deterministic, so entries only expire to bound storage.
const TTLTerrain = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
