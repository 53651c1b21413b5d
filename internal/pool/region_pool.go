package pool

import "sync"

// RegionMaxThreshold is the largest backing region the default pool retains.
const RegionMaxThreshold = 1024 * 1024 * 8 // 8MiB

// RegionPool recycles fixed-length backing regions for packed buffers.
//
// A region obtained from Get has the requested length and unspecified contents: it may
// hold bytes left over from a previous owner. Callers must treat every byte they have
// not written as garbage.
type RegionPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewRegionPool creates a pool that drops regions larger than maxThreshold bytes.
// A non-positive maxThreshold retains every region.
func NewRegionPool(maxThreshold int) *RegionPool {
	return &RegionPool{maxThreshold: maxThreshold}
}

// Get returns a region of exactly size bytes.
func (p *RegionPool) Get(size int) []byte {
	if size <= 0 {
		return []byte{}
	}

	if ptr, ok := p.pool.Get().(*[]byte); ok && cap(*ptr) >= size {
		return (*ptr)[:size]
	}

	return make([]byte, size)
}

// Put hands region back to the pool. The caller must not use region afterwards.
func (p *RegionPool) Put(region []byte) {
	if cap(region) == 0 {
		return
	}
	if p.maxThreshold > 0 && cap(region) > p.maxThreshold {
		return
	}

	region = region[:0]
	p.pool.Put(&region)
}

var regionDefaultPool = NewRegionPool(RegionMaxThreshold)

// GetRegion retrieves a region of size bytes from the default pool.
func GetRegion(size int) []byte {
	return regionDefaultPool.Get(size)
}

// PutRegion returns a region to the default pool.
func PutRegion(region []byte) {
	regionDefaultPool.Put(region)
}
