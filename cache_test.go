// File: settings/cache_test.go
package settings

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolutionCache tests memoization and override semantics
func TestResolutionCache(t *testing.T) {
	t.Run("ComputeOnce", func(t *testing.T) {
		var cache resolutionCache
		calls := 0
		factory := func() (any, error) {
			calls++
			return "value", nil
		}

		v, err := cache.getOrComputeType("Key", factory)
		require.NoError(t, err)
		assert.Equal(t, "value", v)

		v, err = cache.getOrComputeType("Key", factory)
		require.NoError(t, err)
		assert.Equal(t, "value", v)
		assert.Equal(t, 1, calls)
	})

	t.Run("ErrorsAreNotCached", func(t *testing.T) {
		var cache resolutionCache
		calls := 0
		_, err := cache.getOrComputeType("Key", func() (any, error) {
			calls++
			return nil, errors.New("transient")
		})
		require.Error(t, err)

		v, err := cache.getOrComputeType("Key", func() (any, error) {
			calls++
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", v)
		assert.Equal(t, 2, calls)
	})

	t.Run("KeySpacesAreIndependent", func(t *testing.T) {
		var cache resolutionCache
		cache.setType("Key", "by-type")
		cache.setName("Key", "by-name")

		v, _ := cache.getOrComputeType("Key", nil)
		assert.Equal(t, "by-type", v)
		v, _ = cache.getOrComputeName("Key", nil)
		assert.Equal(t, "by-name", v)
	})

	t.Run("SetOverridesUnconditionally", func(t *testing.T) {
		var cache resolutionCache
		cache.setType("Key", "first")
		cache.setType("Key", "second")

		v, _ := cache.getOrComputeType("Key", nil)
		assert.Equal(t, "second", v)
	})

	t.Run("ConcurrentCallersObserveOneValue", func(t *testing.T) {
		var cache resolutionCache
		var counter atomic.Int64

		var wg sync.WaitGroup
		results := make([]any, 64)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				v, err := cache.getOrComputeType("Key", func() (any, error) {
					return counter.Add(1), nil
				})
				assert.NoError(t, err)
				results[i] = v
			}(i)
		}
		wg.Wait()

		first := results[0]
		for _, v := range results {
			assert.Equal(t, first, v)
		}
	})
}
