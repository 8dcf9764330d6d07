package decision

import "sync"

type probKey struct {
	action    int
	occupancy int
}

// probCache memoizes infection probabilities per (action, occupancy) pair.
// The preposterior loop hits the same pairs once per sample, so this turns an
// O(samples * actions) model evaluation into O(distinct occupancies * actions).
type probCache struct {
	mu    sync.RWMutex
	store map[probKey]float64
}

func newProbCache() *probCache {
	return &probCache{store: make(map[probKey]float64)}
}

func (c *probCache) Get(action, occupancy int) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.store[probKey{action, occupancy}]
	return p, ok
}

func (c *probCache) Set(action, occupancy int, p float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[probKey{action, occupancy}] = p
}
