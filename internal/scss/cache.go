package scss

import "sync"

// ResultCache keeps the most recent Result per asset name for the lifetime
// of the process. Entries are replaced, never evicted.
type ResultCache struct {
	mu      sync.RWMutex
	results map[string]*Result

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewResultCache creates an empty cache
func NewResultCache() *ResultCache {
	return &ResultCache{
		results: make(map[string]*Result),
		locks:   make(map[string]*sync.Mutex),
	}
}

// Get returns the cached result for name
func (c *ResultCache) Get(name string) (*Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.results[name]
	return r, ok
}

// Set replaces the cached result for name
func (c *ResultCache) Set(name string, r *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.results[name] = r
}

// Lock serializes work on a single asset and returns the unlock function.
// Different names never block each other.
func (c *ResultCache) Lock(name string) func() {
	c.locksMu.Lock()
	l, ok := c.locks[name]
	if !ok {
		l = &sync.Mutex{}
		c.locks[name] = l
	}
	c.locksMu.Unlock()

	l.Lock()
	return l.Unlock
}
