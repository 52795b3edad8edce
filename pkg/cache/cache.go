// Package cache stores solve results between runs.
//
// A search over the same tiles in the same order always produces the same
// chain, so results are cached under a key derived from the tile sequence
// and the solve options. Backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [NullCache]: stores nothing (--no-cache)
//   - [RedisCache]: shared cache for several server instances
//   - [MongoCache]: shared cache with server-side expiry
//
// [Open] picks a backend from [Options].
package cache

import (
	"context"
	"time"
)

// TTLChain is how long a solve result stays cached.
const TTLChain = 30 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the cached value and whether it was found.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero or less never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ChainKeyOpts holds the solve options that change a cached result.
type ChainKeyOpts struct {
	SkipFilter bool `json:"skip_filter,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ChainKey returns the key for the solve result of a tile sequence.
	// tilesHash identifies the sequence, order included.
	ChainKey(tilesHash string, opts ChainKeyOpts) string
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ChainKey returns "chain:<hash>" where the hash covers tilesHash and opts.
func (DefaultKeyer) ChainKey(tilesHash string, opts ChainKeyOpts) string {
	return hashKey("chain", tilesHash, opts)
}
