package lectionary

import (
	"context"
	"sync"
	"time"
)

const (
	// CacheNamespace prefixes every cache key.
	CacheNamespace = "rcl"

	// DefaultCacheTTL is how long a resolved lookup stays cached.
	DefaultCacheTTL = 7 * 24 * time.Hour
)

// CacheKey returns the cache key for a date: "rcl:YYYY-MM-DD".
func CacheKey(date time.Time) string {
	return CacheNamespace + ":" + isoDate(date)
}

// Cache is a byte store with per-entry expiry. Implementations may fail;
// the Service treats every failure as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// memoryEntry is one cached value.
type memoryEntry struct {
	value    []byte
	expireAt time.Time // zero => no TTL
}

// MemoryCache is an in-process Cache. It is used when no persistent cache
// is configured.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get implements Cache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if !entry.expireAt.IsZero() && !c.now().Before(entry.expireAt) {
		return nil, false, nil
	}

	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, true, nil
}

// Set implements Cache. The last write for a key wins.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expireAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
