package tagwalk

import (
	"context"
	"fmt"
	"time"

	"github.com/fivetwenty-io/tagwalk-client/internal/constants"
	"github.com/maypok86/otter/v2"
)

// Cache is a keyed store of serialized results.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// CacheEntry is a cached value and its expiry.
type CacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the entry is past its TTL.
func (e *CacheEntry) Expired() bool {
	return !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt)
}

// CacheOptions are the options shared by every backend.
type CacheOptions struct {
	// TTL is the lifetime of an entry.
	TTL time.Duration
	// MaxSize bounds the number of entries where the backend supports it.
	MaxSize int
	// CacheFailures stores results degraded from a failed API call (logged
	// server errors) like any other result, until the TTL expires.
	CacheFailures bool
}

// DefaultCacheOptions returns the default cache options.
func DefaultCacheOptions() *CacheOptions {
	return &CacheOptions{
		TTL:           constants.DefaultCacheTTL,
		MaxSize:       constants.DefaultCacheSize,
		CacheFailures: true,
	}
}

// MemoryCache is an in-process W-TinyLFU cache backed by otter.
type MemoryCache struct {
	cache *otter.Cache[string, *CacheEntry]
}

// NewMemoryCache creates a memory cache holding at most maxSize entries.
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = constants.DefaultCacheSize
	}

	return &MemoryCache{
		cache: otter.Must(&otter.Options[string, *CacheEntry]{
			MaximumSize: maxSize,
		}),
	}
}

// Get returns the entry stored under key.
func (c *MemoryCache) Get(_ context.Context, key string) (*CacheEntry, error) {
	entry, ok := c.cache.GetIfPresent(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCacheMiss, key)
	}

	if entry.Expired() {
		c.cache.Invalidate(key)

		return nil, fmt.Errorf("%w: %s", ErrEntryExpired, key)
	}

	return entry, nil
}

// Set stores entry under key.
func (c *MemoryCache) Set(_ context.Context, key string, entry *CacheEntry) error {
	c.cache.Set(key, entry)

	return nil
}

// Delete removes key.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.cache.Invalidate(key)

	return nil
}

// Clear removes every entry.
func (c *MemoryCache) Clear(_ context.Context) error {
	c.cache.InvalidateAll()

	return nil
}

// Has reports whether a live entry exists for key.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}
