package tagwalk

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/fivetwenty-io/tagwalk-client/internal/constants"
)

// CacheType represents the type of cache backend.
type CacheType string

const (
	// CacheTypeMemory represents in-memory cache.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeFile represents the on-disk cache.
	CacheTypeFile CacheType = "file"

	// CacheTypeTiered keeps recent entries in memory in front of the file cache.
	CacheTypeTiered CacheType = "tiered"

	// CacheTypeNATS represents NATS KV cache.
	CacheTypeNATS CacheType = "nats"

	// CacheTypeNone represents no caching.
	CacheTypeNone CacheType = "none"
)

// CacheConfig configures cache backend.
type CacheConfig struct {
	// Type is the cache backend type
	Type CacheType

	// Memory cache configuration
	Memory *MemoryCacheConfig

	// File cache configuration
	File *FileCacheConfig

	// NATS KV cache configuration
	NATS *NATSKVConfig

	// Common options applied to any backend. If nil, DefaultCacheOptions() is used.
	Options *CacheOptions
}

// MemoryCacheConfig configures memory cache.
type MemoryCacheConfig struct {
	// MaxSize is the maximum number of items in the cache
	MaxSize int
}

// FileCacheConfig configures the file cache.
type FileCacheConfig struct {
	// Dir is the root directory; one sub-directory is created per namespace.
	Dir string
}

// DefaultCacheConfig returns default cache configuration.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Type: CacheTypeMemory,
		Memory: &MemoryCacheConfig{
			MaxSize: constants.DefaultCacheSize,
		},
		Options: DefaultCacheOptions(),
	}
}

// NewCacheFromConfig creates a cache backend from configuration.
func NewCacheFromConfig(config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	switch config.Type {
	case CacheTypeMemory, "":
		return NewMemoryCacheFromConfig(config.Memory)

	case CacheTypeFile:
		if config.File == nil {
			return nil, ErrFileCacheDirRequired
		}

		return NewFileCache(config.File.Dir)

	case CacheTypeTiered:
		if config.File == nil {
			return nil, ErrFileCacheDirRequired
		}

		back, err := NewFileCache(config.File.Dir)
		if err != nil {
			return nil, err
		}

		front, err := NewMemoryCacheFromConfig(config.Memory)
		if err != nil {
			return nil, err
		}

		return NewTieredCache(front, back), nil

	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		return NewNATSKVCache(config.NATS)

	case CacheTypeNone:
		return NewNoOpCache(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}
}

// NewMemoryCacheFromConfig creates a memory cache from configuration.
func NewMemoryCacheFromConfig(config *MemoryCacheConfig) (Cache, error) {
	if config == nil {
		config = &MemoryCacheConfig{
			MaxSize: constants.DefaultCacheSize,
		}
	}

	return NewMemoryCache(config.MaxSize), nil
}

// NoOpCache stores nothing. Every lookup is a miss.
type NoOpCache struct{}

// NewNoOpCache creates a disabled cache.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (NoOpCache) Get(_ context.Context, key string) (*CacheEntry, error) {
	return nil, fmt.Errorf("%w: %s", ErrCacheDisabled, key)
}

func (NoOpCache) Set(context.Context, string, *CacheEntry) error { return nil }

func (NoOpCache) Delete(context.Context, string) error { return nil }

func (NoOpCache) Clear(context.Context) error { return nil }

func (NoOpCache) Has(context.Context, string) bool { return false }

// CacheBuilder assembles a CacheConfig.
type CacheBuilder struct {
	config *CacheConfig
}

// NewCacheBuilder starts from a memory cache with the default options.
func NewCacheBuilder() *CacheBuilder {
	return &CacheBuilder{
		config: &CacheConfig{
			Type:    CacheTypeMemory,
			Options: DefaultCacheOptions(),
		},
	}
}

func (b *CacheBuilder) WithType(cacheType CacheType) *CacheBuilder {
	b.config.Type = cacheType

	return b
}

func (b *CacheBuilder) WithMemoryConfig(maxSize int) *CacheBuilder {
	b.config.Memory = &MemoryCacheConfig{MaxSize: maxSize}

	return b
}

func (b *CacheBuilder) WithFileConfig(dir string) *CacheBuilder {
	b.config.File = &FileCacheConfig{Dir: dir}

	return b
}

// WithTieredConfig keeps up to maxSize entries in memory in front of the
// file cache rooted at dir.
func (b *CacheBuilder) WithTieredConfig(maxSize int, dir string) *CacheBuilder {
	return b.WithType(CacheTypeTiered).WithMemoryConfig(maxSize).WithFileConfig(dir)
}

func (b *CacheBuilder) WithNATSConfig(config *NATSKVConfig) *CacheBuilder {
	b.config.NATS = config

	return b
}

func (b *CacheBuilder) WithOptions(options *CacheOptions) *CacheBuilder {
	b.config.Options = options

	return b
}

// Config returns the configuration for tagwalk.Config.Cache.
func (b *CacheBuilder) Config() *CacheConfig {
	return b.config
}

// Build creates the backend directly.
func (b *CacheBuilder) Build() (Cache, error) {
	return NewCacheFromConfig(b.config)
}

// TieredCache looks keys up front to back. A hit in a slower tier is copied
// into the faster tiers with its original expiry. Writes go to every tier.
type TieredCache struct {
	tiers []Cache
}

// NewTieredCache orders tiers from fastest to slowest.
func NewTieredCache(tiers ...Cache) *TieredCache {
	return &TieredCache{tiers: tiers}
}

func (c *TieredCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	for i, tier := range c.tiers {
		entry, err := tier.Get(ctx, key)
		if err != nil {
			continue
		}

		for _, faster := range c.tiers[:i] {
			_ = faster.Set(ctx, key, entry)
		}

		return entry, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrKeyNotFoundInAnyCache, key)
}

func (c *TieredCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return c.each(func(tier Cache) error { return tier.Set(ctx, key, entry) })
}

func (c *TieredCache) Delete(ctx context.Context, key string) error {
	return c.each(func(tier Cache) error { return tier.Delete(ctx, key) })
}

func (c *TieredCache) Clear(ctx context.Context) error {
	return c.each(func(tier Cache) error { return tier.Clear(ctx) })
}

func (c *TieredCache) Has(ctx context.Context, key string) bool {
	return slices.ContainsFunc(c.tiers, func(tier Cache) bool { return tier.Has(ctx, key) })
}

// Close closes the tiers that hold a connection.
func (c *TieredCache) Close() error {
	return c.each(func(tier Cache) error {
		if closer, ok := tier.(interface{ Close() error }); ok {
			return closer.Close()
		}

		return nil
	})
}

// each applies fn to every tier, even after a failure.
func (c *TieredCache) each(fn func(tier Cache) error) error {
	errs := make([]error, 0, len(c.tiers))
	for _, tier := range c.tiers {
		errs = append(errs, fn(tier))
	}

	return errors.Join(errs...)
}
