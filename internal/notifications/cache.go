package notifications

import (
	"sync"
	"time"

	"github.com/learnova/gateway/internal/models"
)

// Cache keeps the most recently fetched notification page per key. Every
// refresh is tagged with a generation taken at start; a completion whose
// generation is no longer current is discarded, so a slow stale response
// can never overwrite a newer one.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	gen       uint64
	page      *models.NotificationPage
	fetchedAt time.Time
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

// Begin marks the start of a refresh for key and returns its generation.
// Starting a new refresh supersedes any still in flight for the same key.
func (c *Cache) Begin(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	e.gen++
	return e.gen
}

// Complete stores the fetched page if gen is still the current generation
// for key. Reports whether the page was applied.
func (c *Cache) Complete(key string, gen uint64, page *models.NotificationPage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.gen != gen {
		return false
	}
	e.page = page
	e.fetchedAt = time.Now()
	return true
}

// Get returns the cached page for key, if any.
func (c *Cache) Get(key string) (*models.NotificationPage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.page == nil {
		return nil, false
	}
	return e.page, true
}

// Invalidate drops the cached page for key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
