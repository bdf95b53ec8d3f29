package web

// cache remembers the hashes of the last size records sent.
type cache struct {
	hashes []uint64
	seen   map[uint64]int
	idx    int
	full   bool
}

func newCache(size int) *cache {
	return &cache{
		hashes: make([]uint64, size),
		seen:   make(map[uint64]int, size),
	}
}

func (c *cache) has(hash uint64) bool {
	_, ok := c.seen[hash]
	return ok
}

// add records hash, evicting the oldest entry once full.
func (c *cache) add(hash uint64) {
	if c.full {
		old := c.hashes[c.idx]
		if c.seen[old]--; c.seen[old] <= 0 {
			delete(c.seen, old)
		}
	}
	c.hashes[c.idx] = hash
	c.seen[hash]++

	c.idx = (c.idx + 1) % len(c.hashes)
	if c.idx == 0 {
		c.full = true
	}
}
