package mempool

import "github.com/cespare/xxhash/v2"

// DefaultSeenThreshold is the cache size at which the whole set is dropped.
const DefaultSeenThreshold = 200

// SeenCache is the watcher's dedup filter over raw mempool payloads. It is a
// crude recency filter: once the set grows past the threshold it is cleared
// in bulk rather than aged per entry, so a transaction pending for a very
// long time can be reported as new a second time. Keys are xxhash digests of
// the raw payload, not the payload itself.
type SeenCache struct {
	threshold int
	seen      map[uint64]struct{}
}

// NewSeenCache creates a cache that bulk-clears once it holds threshold
// entries. A non-positive threshold selects DefaultSeenThreshold.
func NewSeenCache(threshold int) *SeenCache {
	if threshold <= 0 {
		threshold = DefaultSeenThreshold
	}
	return &SeenCache{
		threshold: threshold,
		seen:      make(map[uint64]struct{}),
	}
}

// Add records rawTx and reports whether it was previously unseen. When the
// cache is full the whole set is cleared before the new entry is inserted.
func (c *SeenCache) Add(rawTx string) bool {
	key := xxhash.Sum64String(rawTx)
	if _, ok := c.seen[key]; ok {
		return false
	}

	if len(c.seen) >= c.threshold {
		c.seen = make(map[uint64]struct{})
	}

	c.seen[key] = struct{}{}
	return true
}

// Contains reports whether rawTx has been seen since the last bulk clear.
func (c *SeenCache) Contains(rawTx string) bool {
	_, ok := c.seen[xxhash.Sum64String(rawTx)]
	return ok
}

// Len returns the number of cached entries.
func (c *SeenCache) Len() int {
	return len(c.seen)
}
