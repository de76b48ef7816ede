package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCitiesClient_List(t *testing.T) {
	t.Parallel()

	var requests int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)

		assert.Equal(t, "/api/cities", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		query := r.URL.Query()
		assert.False(t, query.Has("from"))
		assert.Equal(t, "100", query.Get("size"))
		assert.Equal(t, "name:asc", query.Get("sort"))
		assert.Equal(t, "enabled", query.Get("status"))
		assert.Equal(t, "fr", query.Get("language"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"slug":"paris","name":"Paris","position":1},{"slug":"milan","name":"Milan","position":2}]`))
	}))
	defer server.Close()

	cities := NewTestClient(server.URL, nil).Cities()

	result, err := cities.List(context.Background(), &tagwalk.CityListParams{Language: "fr"})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "paris", result[0].Slug)
	assert.Equal(t, 2, result[1].Position)

	// Same filters within the TTL: served from the cache.
	again, err := cities.List(context.Background(), &tagwalk.CityListParams{Language: "fr", Sort: "name:asc"})
	require.NoError(t, err)
	assert.Equal(t, result, again)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestCitiesClient_ListFilters(t *testing.T) {
	t.Parallel()

	var requests int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)

		assert.Equal(t, "/api/cities/filter-media", r.URL.Path)
		assert.Equal(t, "woman", r.URL.Query().Get("type"))
		assert.Equal(t, "chanel", r.URL.Query().Get("designer"))
		assert.False(t, r.URL.Query().Has("season"))

		_, _ = w.Write([]byte(`[{"slug":"paris"}]`))
	}))
	defer server.Close()

	cities := NewTestClient(server.URL, nil).Cities()

	first, err := cities.ListFilters(context.Background(), &tagwalk.CityFilterParams{Type: "woman", Designer: "chanel"})
	require.NoError(t, err)
	require.Len(t, first, 1)

	// An empty filter is the same query as an absent one.
	second, err := cities.ListFilters(context.Background(), &tagwalk.CityFilterParams{Designer: "chanel", Type: "woman", Season: ""})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestCitiesClient_ListFiltersStreet(t *testing.T) {
	t.Parallel()

	var requests int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)

		switch r.URL.Path {
		case "/api/cities/filter-streetstyle":
			assert.Equal(t, "fall-winter-2019", r.URL.Query().Get("season"))
			assert.Equal(t, "chanel,dior", r.URL.Query().Get("designers"))
			_, _ = w.Write([]byte(`[{"slug":"new-york"}]`))
		case "/api/cities/filter-media":
			_, _ = w.Write([]byte(`[{"slug":"paris"}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	cities := NewTestClient(server.URL, nil).Cities()

	street, err := cities.ListFiltersStreet(context.Background(), &tagwalk.CityStreetFilterParams{
		Season:    "fall-winter-2019",
		Designers: "chanel,dior",
	})
	require.NoError(t, err)
	require.Len(t, street, 1)
	assert.Equal(t, "new-york", street[0].Slug)

	// Same filters on another endpoint are cached separately.
	media, err := cities.ListFilters(context.Background(), &tagwalk.CityFilterParams{Season: "fall-winter-2019"})
	require.NoError(t, err)
	require.Len(t, media, 1)
	assert.Equal(t, "paris", media[0].Slug)
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
}

func TestCitiesClient_ServerError(t *testing.T) {
	t.Parallel()

	var requests int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("database unavailable"))
	}))
	defer server.Close()

	logger := &recordingLogger{}
	cities := NewTestClient(server.URL, logger).Cities()

	result, err := cities.List(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)

	logged := logger.errors()
	require.Len(t, logged, 1)
	assert.Equal(t, "CitiesClient.List unexpected status code", logged[0].msg)
	assert.Equal(t, 500, logged[0].fields["code"])
	assert.Equal(t, "database unavailable", logged[0].fields["message"])

	// The degraded result is cached like any other.
	_, err = cities.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
	assert.Len(t, logger.errors(), 1)
}

func TestCitiesClient_OutOfRange(t *testing.T) {
	t.Parallel()

	var requests int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
	}))
	defer server.Close()

	logger := &recordingLogger{}
	cities := NewTestClient(server.URL, logger).Cities()

	_, err := cities.List(context.Background(), &tagwalk.CityListParams{From: 5000})
	require.ErrorIs(t, err, tagwalk.ErrOutOfRange)
	assert.Empty(t, logger.errors())

	// Errors are not cached.
	_, err = cities.List(context.Background(), &tagwalk.CityListParams{From: 5000})
	require.ErrorIs(t, err, tagwalk.ErrOutOfRange)
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
}
