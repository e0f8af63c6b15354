package ports

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Port: a shared TTL cache for geocode, route and station-search results.
//
// Values are immutable once written and keyed by a deterministic hash of
// their inputs, so concurrent recomputation of the same key is safe without
// locking (last write wins with an equivalent value).
type Cache interface {
	// Get returns the cached value or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key with a time-to-live.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CacheKey builds a deterministic, bounded-length cache key from the given
// parts. The prefix survives hashing so keys stay greppable in Redis.
func CacheKey(prefix string, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, ":")))
	return prefix + ":" + hex.EncodeToString(sum[:])
}
