package ports

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by QueryCache.Get when no verdict has been
// recorded for the key.
var ErrCacheMiss = errors.New("cache miss")

// QueryCache stores membership verdicts keyed by system fingerprint and
// input, so repeated queries against the same description skip the
// search entirely.
type QueryCache interface {
	// Get returns the verdict recorded for key, or ErrCacheMiss.
	Get(ctx context.Context, key string) (bool, error)

	// Put records the verdict for key, overwriting any previous value.
	Put(ctx context.Context, key string, member bool) error
}
