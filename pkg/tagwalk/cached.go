package tagwalk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// DegradedError marks a result computed from a failed API call. The value
// that comes with it is still returned to the caller.
type DegradedError struct {
	Err error
}

// Error implements the error interface.
func (e *DegradedError) Error() string {
	return "degraded result: " + e.Err.Error()
}

// Unwrap returns the underlying failure.
func (e *DegradedError) Unwrap() error {
	return e.Err
}

// Degraded wraps err so that CachedQuery returns the computed value instead
// of the error.
func Degraded(err error) error {
	return &DegradedError{Err: err}
}

// QueryCache runs cache-through lookups against a Cache backend.
type QueryCache struct {
	cache   Cache
	options *CacheOptions
	metrics *CacheMetrics
	logger  Logger
	group   singleflight.Group
	now     func() time.Time
}

// NewQueryCache creates a QueryCache. Nil options use DefaultCacheOptions,
// nil metrics disable counting, and a nil logger discards warnings.
func NewQueryCache(cache Cache, options *CacheOptions, metrics *CacheMetrics, logger Logger) *QueryCache {
	if cache == nil {
		cache = NewNoOpCache()
	}

	if options == nil {
		options = DefaultCacheOptions()
	}

	if logger == nil {
		logger = NoopLogger{}
	}

	return &QueryCache{
		cache:   cache,
		options: options,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Cache returns the backend.
func (qc *QueryCache) Cache() Cache {
	return qc.cache
}

// CachedQuery returns the cached result for query in namespace, or calls
// compute with the compacted query, stores its result for the configured TTL,
// and returns it.
//
// Concurrent misses on the same key share one compute call. An error from
// compute is returned and nothing is stored, except a DegradedError: its
// value is returned with a nil error, and stored only if
// CacheOptions.CacheFailures is set.
func CachedQuery[T any](ctx context.Context, qc *QueryCache, namespace string, query Query,
	compute func(ctx context.Context, query Query) (T, error),
) (T, error) {
	var zero T

	if namespace == "" {
		return zero, ErrNamespaceRequired
	}

	compact := query.Compact()
	key := compact.Key().Namespaced(namespace)

	if value, ok := lookup[T](ctx, qc, key); ok {
		qc.metrics.hit(namespace)

		return value, nil
	}

	qc.metrics.miss(namespace)

	result, err := qc.share(ctx, key, func(ctx context.Context) (interface{}, error) {
		value, err := compute(ctx, compact)

		degraded := &DegradedError{}
		isDegraded := errors.As(err, &degraded)

		if err != nil && !isDegraded {
			return nil, err
		}

		if !isDegraded || qc.options.CacheFailures {
			qc.store(ctx, namespace, key, value)
		}

		return value, nil
	})
	if err != nil {
		return zero, err
	}

	value, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%w: unexpected cached type %T", ErrCacheMiss, result)
	}

	return value, nil
}

// share runs fn once per key for concurrent callers. Each caller stops
// waiting when its own ctx is done. A flight that failed because its
// leader's context ended is run again for callers whose context is alive.
func (qc *QueryCache) share(ctx context.Context, key string, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	for {
		led := false

		results := qc.group.DoChan(key, func() (interface{}, error) {
			led = true

			return fn(ctx)
		})

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s: %w", key, ctx.Err())
		case res := <-results:
			if !led && res.Err != nil && isContextError(res.Err) && ctx.Err() == nil {
				continue
			}

			return res.Val, res.Err
		}
	}
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func lookup[T any](ctx context.Context, qc *QueryCache, key string) (T, bool) {
	var value T

	entry, err := qc.cache.Get(ctx, key)
	if err != nil {
		if !isMiss(err) {
			qc.logger.Warn("cache read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}

		return value, false
	}

	err = json.Unmarshal(entry.Data, &value)
	if err != nil {
		qc.logger.Warn("cache entry could not be decoded", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})

		return value, false
	}

	return value, true
}

func (qc *QueryCache) store(ctx context.Context, namespace, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		qc.logger.Warn("cache entry could not be encoded", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})

		return
	}

	err = qc.cache.Set(ctx, key, &CacheEntry{
		Data:      data,
		ExpiresAt: qc.now().Add(qc.options.TTL),
	})
	if err != nil {
		qc.logger.Warn("cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})

		return
	}

	qc.metrics.store(namespace)
}

func isMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss) ||
		errors.Is(err, ErrEntryExpired) ||
		errors.Is(err, ErrCacheDisabled) ||
		errors.Is(err, ErrKeyNotFoundInAnyCache)
}
