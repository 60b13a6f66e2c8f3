// File: settings/cache.go
package settings

import "sync"

// resolutionCache memoizes resolved instances in two independent key spaces:
// derived type keys and caller-supplied names. One instance is one cache
// generation; Reset discards it wholesale rather than clearing it in place.
// Concurrent get-or-compute may invoke the factory redundantly under race,
// but only one stored value ever becomes visible per key within a generation.
type resolutionCache struct {
	byType sync.Map // string -> any
	byName sync.Map // string -> any
}

func (c *resolutionCache) getOrComputeType(key string, compute func() (any, error)) (any, error) {
	return getOrCompute(&c.byType, key, compute)
}

func (c *resolutionCache) getOrComputeName(name string, compute func() (any, error)) (any, error) {
	return getOrCompute(&c.byName, name, compute)
}

func (c *resolutionCache) setType(key string, value any) { c.byType.Store(key, value) }

func (c *resolutionCache) setName(name string, value any) { c.byName.Store(name, value) }

func getOrCompute(m *sync.Map, key string, compute func() (any, error)) (any, error) {
	if v, ok := m.Load(key); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		return nil, err
	}
	// A concurrent computation may have stored first; its value wins so all
	// callers observe the same instance.
	actual, _ := m.LoadOrStore(key, v)
	return actual, nil
}
