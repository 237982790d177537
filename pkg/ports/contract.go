package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunQueryCacheContract runs a suite of tests to verify that a
// QueryCache implementation adheres to the interface contract.
func RunQueryCacheContract(t *testing.T, cache QueryCache) {
	ctx := context.Background()
	prefix := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Get Before Put", func(t *testing.T) {
		_, err := cache.Get(ctx, prefix+":absent")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("Put and Get", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, prefix+":member", true))
		require.NoError(t, cache.Put(ctx, prefix+":nonmember", false))

		member, err := cache.Get(ctx, prefix+":member")
		require.NoError(t, err)
		assert.True(t, member, "stored verdict should round-trip")

		member, err = cache.Get(ctx, prefix+":nonmember")
		require.NoError(t, err)
		assert.False(t, member, "negative verdicts are cached too, not treated as misses")
	})

	t.Run("Put Overwrites", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, prefix+":flip", true))
		require.NoError(t, cache.Put(ctx, prefix+":flip", false))

		member, err := cache.Get(ctx, prefix+":flip")
		require.NoError(t, err)
		assert.False(t, member)
	})
}
