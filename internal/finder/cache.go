package finder

import "sync"

// Locator is satisfied by *Finder and *Cache.
type Locator interface {
	Find(name string) (string, error)
}

// Cache remembers the first successful resolution per library name for the
// life of the process. Failed searches are not cached, so a later call can
// succeed once the environment is fixed. A cached path is never replaced.
type Cache struct {
	finder *Finder

	mu    sync.Mutex
	paths map[string]string
}

// NewCache wraps f. A nil f means New().
func NewCache(f *Finder) *Cache {
	if f == nil {
		f = New()
	}
	return &Cache{finder: f, paths: make(map[string]string)}
}

// Find returns the cached path for name or searches and caches on success.
// The lock is held during the search so concurrent first calls for the same
// name resolve once.
func (c *Cache) Find(name string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.paths[name]; ok {
		return p, nil
	}
	p, err := c.finder.Find(name)
	if err != nil {
		return "", err
	}
	c.paths[name] = p
	return p, nil
}

// Cached reports the stored path for name without searching.
func (c *Cache) Cached(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.paths[name]
	return p, ok
}

// Finder exposes the wrapped finder.
func (c *Cache) Finder() *Finder { return c.finder }
