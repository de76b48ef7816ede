package tagwalk_test

import (
	"context"
	"testing"

	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheMetrics(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	metrics := tagwalk.NewCacheMetrics(registry)
	qc := tagwalk.NewQueryCache(tagwalk.NewMemoryCache(0), nil, metrics, nil)
	ctx := context.Background()

	compute := func(context.Context, tagwalk.Query) (string, error) { return "paris", nil }

	for range 3 {
		_, err := tagwalk.CachedQuery(ctx, qc, "cities", tagwalk.Query{"size": 100}, compute)
		require.NoError(t, err)
	}

	_, err := tagwalk.CachedQuery(ctx, qc, "cities-filter-media", tagwalk.Query{}, compute)
	require.NoError(t, err)

	assert.InDelta(t, 2, testutil.ToFloat64(metrics.Hits.WithLabelValues("cities")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Misses.WithLabelValues("cities")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Misses.WithLabelValues("cities-filter-media")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Stores.WithLabelValues("cities")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Stores.WithLabelValues("cities-filter-media")), 0)

	count, err := testutil.GatherAndCount(registry, "tagwalk_cache_hits_total", "tagwalk_cache_misses_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestCacheMetrics_SharedRegistry(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()

	first := tagwalk.NewCacheMetrics(registry)
	second := tagwalk.NewCacheMetrics(registry)

	assert.Same(t, first.Hits, second.Hits)
	assert.Same(t, first.Misses, second.Misses)
}

func TestCacheMetrics_Unregistered(t *testing.T) {
	t.Parallel()

	metrics := tagwalk.NewCacheMetrics(nil)
	assert.NotNil(t, metrics.Hits)

	// A nil *CacheMetrics disables counting.
	qc := tagwalk.NewQueryCache(nil, nil, nil, nil)

	_, err := tagwalk.CachedQuery(context.Background(), qc, "cities", tagwalk.Query{}, func(context.Context, tagwalk.Query) (int, error) {
		return 1, nil
	})
	require.NoError(t, err)
}
