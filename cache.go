package ringvrf

import (
	"container/list"
	"sync"
)

// commitmentCache keeps the most recently used ring commitments.
type commitmentCache struct {
	sync.Mutex
	size    int
	order   *list.List
	entries map[Fingerprint]*list.Element
}

type cacheEntry struct {
	key        Fingerprint
	commitment *RingCommitment
}

func newCommitmentCache(size int) *commitmentCache {
	return &commitmentCache{
		size:    size,
		order:   list.New(),
		entries: make(map[Fingerprint]*list.Element),
	}
}

func (c *commitmentCache) get(key Fingerprint) (*RingCommitment, bool) {
	c.Lock()
	defer c.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(e)
	return e.Value.(*cacheEntry).commitment, true
}

func (c *commitmentCache) put(key Fingerprint, commitment *RingCommitment) {
	if c.size == 0 {
		return
	}
	c.Lock()
	defer c.Unlock()
	if e, ok := c.entries[key]; ok {
		c.order.MoveToFront(e)
		return
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, commitment: commitment})
	for c.order.Len() > c.size {
		last := c.order.Back()
		c.order.Remove(last)
		delete(c.entries, last.Value.(*cacheEntry).key)
	}
}

func (c *commitmentCache) len() int {
	c.Lock()
	defer c.Unlock()
	return c.order.Len()
}
