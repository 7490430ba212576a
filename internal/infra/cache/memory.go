package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ahmadmousily/FAQ-Question/internal/domain/faq"
)

type memoryEntry struct {
	results   []faq.Result
	expiresAt time.Time
}

// Memory is an in-process faq.ResultCache for tests and single-instance
// deployments.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemory constructs an empty cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

// Get fetches cached results for key, honoring expiry.
func (c *Memory) Get(_ context.Context, key string) ([]faq.Result, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	results := append([]faq.Result(nil), entry.results...)
	return results, true, nil
}

// Set stores results under key for ttl.
func (c *Memory) Set(_ context.Context, key string, results []faq.Result, ttl time.Duration) error {
	entry := memoryEntry{results: append([]faq.Result(nil), results...)}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

var _ faq.ResultCache = (*Memory)(nil)
