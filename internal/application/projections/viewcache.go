package projections

import "sync"

// ViewCache memoizes rendered plan views per scope. A write to a scope's
// plans invalidates every cached view for that scope at once; entries are
// never invalidated piecemeal.
type ViewCache struct {
	mu      sync.Mutex
	entries map[string]map[string]any // scope -> view key -> cached value
}

// NewViewCache creates an empty cache.
func NewViewCache() *ViewCache {
	return &ViewCache{entries: make(map[string]map[string]any)}
}

// Get returns a cached view for a scope, if present.
func (c *ViewCache) Get(scope, key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	views, ok := c.entries[scope]
	if !ok {
		return nil, false
	}
	v, ok := views[key]
	return v, ok
}

// Put stores a view under a scope and key.
func (c *ViewCache) Put(scope, key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	views, ok := c.entries[scope]
	if !ok {
		views = make(map[string]any)
		c.entries[scope] = views
	}
	views[key] = value
}

// Invalidate drops every cached view for a scope.
func (c *ViewCache) Invalidate(scope string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, scope)
}
