package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionPool_Get(t *testing.T) {
	p := NewRegionPool(0)

	region := p.Get(64)
	require.Len(t, region, 64)

	empty := p.Get(0)
	require.NotNil(t, empty)
	require.Len(t, empty, 0)
}

func TestRegionPool_Reuse(t *testing.T) {
	p := NewRegionPool(0)

	// sync.Pool may drop entries at any time, so only the length contract is asserted
	for range 10 {
		region := p.Get(128)
		require.Len(t, region, 128)
		p.Put(region)

		smaller := p.Get(32)
		require.Len(t, smaller, 32)
		p.Put(smaller)
	}
}

func TestRegionPool_Put(t *testing.T) {
	t.Run("oversized regions are dropped", func(t *testing.T) {
		p := NewRegionPool(16)
		assert.NotPanics(t, func() { p.Put(make([]byte, 64)) })
		assert.Len(t, p.Get(8), 8)
	})

	t.Run("empty regions are ignored", func(t *testing.T) {
		p := NewRegionPool(0)
		assert.NotPanics(t, func() { p.Put(nil) })
	})
}

func TestDefaultRegionPool(t *testing.T) {
	region := GetRegion(8192)
	require.Len(t, region, 8192)
	PutRegion(region)
}
