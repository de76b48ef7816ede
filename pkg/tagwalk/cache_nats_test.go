package tagwalk_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The NATS cache needs a JetStream-enabled server, e.g.
// TAGWALK_TEST_NATS_URL=nats://127.0.0.1:4222.
func TestNATSKVCache(t *testing.T) {
	url := os.Getenv("TAGWALK_TEST_NATS_URL")
	if url == "" {
		t.Skip("TAGWALK_TEST_NATS_URL not set")
	}

	cache, err := tagwalk.NewNATSKVCache(&tagwalk.NATSKVConfig{
		URL:    url,
		Bucket: "tagwalk_test",
	})
	require.NoError(t, err)

	defer func() { _ = cache.Close() }()

	ctx := context.Background()
	require.NoError(t, cache.Clear(ctx))

	entry := &tagwalk.CacheEntry{Data: []byte(`[{"slug":"paris"}]`), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, cache.Set(ctx, "cities.abc", entry))

	retrieved, err := cache.Get(ctx, "cities.abc")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)

	_, err = cache.Get(ctx, "cities.none")
	require.ErrorIs(t, err, tagwalk.ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "cities.old", &tagwalk.CacheEntry{Data: []byte("[]"), ExpiresAt: time.Now().Add(-time.Second)}))
	_, err = cache.Get(ctx, "cities.old")
	require.ErrorIs(t, err, tagwalk.ErrEntryExpired)

	require.NoError(t, cache.Delete(ctx, "cities.abc"))
	assert.False(t, cache.Has(ctx, "cities.abc"))
}

func TestNewNATSKVCache_RequiresConfig(t *testing.T) {
	t.Parallel()

	_, err := tagwalk.NewNATSKVCache(nil)
	require.ErrorIs(t, err, tagwalk.ErrNATSConfigRequired)
}
