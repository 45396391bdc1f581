// Package cache stores rendered graph images.
//
// Rendering is the slow stage of the pipeline, while the DOT source it
// consumes is cheap to regenerate and already reflects every label, count and
// size shown in the image. Artifacts are therefore keyed by a hash of the
// DOT source, the format and the renderer: when anything in the directory
// changes that would change the picture, the key changes with it, and stale
// entries are never served.
//
// Two implementations are provided:
//
//   - [FileCache] keeps entries as JSON files under a directory, with an
//     optional expiry per entry.
//   - [NullCache] stores nothing; it is the default.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store keyed by string.
//
// Get reports a miss as (nil, false, nil); errors are reserved for failures
// of the backing store. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
