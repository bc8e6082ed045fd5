package summarizer

import (
	"sync"
	"time"
)

// summaryCache provides thread-safe caching for summaries
type summaryCache struct {
	items    map[string]cachedSummary
	capacity int
	ttl      time.Duration
	mu       sync.RWMutex
}

// cachedSummary represents a cached summary with expiration
type cachedSummary struct {
	summary  Summary
	storedAt time.Time
	expireAt time.Time
}

func newSummaryCache(capacity int, ttl time.Duration) *summaryCache {
	return &summaryCache{
		items:    make(map[string]cachedSummary),
		capacity: capacity,
		ttl:      ttl,
	}
}

func (c *summaryCache) get(key string) (Summary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || !time.Now().Before(item.expireAt) {
		return Summary{}, false
	}
	return item.summary, true
}

// put stores summary under key. When the cache is full, expired entries are
// dropped first and then the oldest entry.
func (c *summaryCache) put(key string, summary Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if _, exists := c.items[key]; !exists && len(c.items) >= c.capacity {
		for k, item := range c.items {
			if !now.Before(item.expireAt) {
				delete(c.items, k)
			}
		}
	}
	if _, exists := c.items[key]; !exists && len(c.items) >= c.capacity {
		var oldestKey string
		var oldest time.Time
		for k, item := range c.items {
			if oldestKey == "" || item.storedAt.Before(oldest) {
				oldestKey, oldest = k, item.storedAt
			}
		}
		delete(c.items, oldestKey)
	}

	c.items[key] = cachedSummary{
		summary:  summary,
		storedAt: now,
		expireAt: now.Add(c.ttl),
	}
}

func (c *summaryCache) remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, item := range c.items {
		if item.summary.ID == id {
			delete(c.items, k)
		}
	}
}

func (c *summaryCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]cachedSummary)
}

func (c *summaryCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}
