// Package cache is a small in-memory TTL cache used to avoid re-asking the
// oracle about headlines it has already classified. Nothing is persisted;
// a restart starts cold.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

type Item struct {
	Value     any
	ExpiresAt time.Time
}

type Cache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]Item
}

func New(ttl time.Duration) *Cache {
	c := &Cache{
		ttl:   ttl,
		items: make(map[string]Item),
	}

	// Cleanup expired items every hour
	go c.cleanupLoop()

	return c
}

func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = Item{
		Value:     value,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || time.Now().After(item.ExpiresAt) {
		return nil, false
	}

	return item.Value, true
}

// Key derives a stable cache key from the given parts.
func Key(parts ...string) string {
	h := sha256.New()
	h.Write([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *Cache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, item := range c.items {
		if now.After(item.ExpiresAt) {
			delete(c.items, key)
		}
	}
}
