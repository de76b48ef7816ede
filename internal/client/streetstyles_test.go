package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const streetstylePayload = `{
	"slug": "street-1",
	"text": "Outside Chanel",
	"city": {"slug": "paris", "name": "Paris"},
	"designers": [{"slug": "chanel"}, {"slug": "dior"}],
	"tags": [],
	"affiliations": [{"slug": "imaxtree", "type": "agency"}]
}`

func TestStreetstylesClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/streetstyles/street-1", r.URL.Path)
		_, _ = w.Write([]byte(streetstylePayload))
	}))
	defer server.Close()

	streetstyles := NewTestClient(server.URL, nil).Streetstyles()

	streetstyle, err := streetstyles.Get(context.Background(), "street-1")
	require.NoError(t, err)
	require.NotNil(t, streetstyle)
	assert.Equal(t, "Outside Chanel", streetstyle.Text)
	assert.Equal(t, "Paris", streetstyle.City.Name)
	assert.Nil(t, streetstyle.Season)
	require.Len(t, streetstyle.Designers, 2)
	assert.Equal(t, "chanel", streetstyle.Designers[0].Slug)
	assert.Equal(t, "dior", streetstyle.Designers[1].Slug)
	assert.NotNil(t, streetstyle.Tags)
	assert.Empty(t, streetstyle.Tags)
	assert.Equal(t, "agency", streetstyle.Affiliations[0].Type)
}

func TestStreetstylesClient_Get_NotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	logger := &recordingLogger{}
	streetstyles := NewTestClient(server.URL, logger).Streetstyles()

	streetstyle, err := streetstyles.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, streetstyle)
	assert.Empty(t, logger.entries)
}

func TestStreetstylesClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/streetstyles", r.URL.Path)
		assert.Equal(t, "48", r.URL.Query().Get("from"))
		assert.Equal(t, "24", r.URL.Query().Get("size"))
		assert.Equal(t, "paris", r.URL.Query().Get("city"))

		w.Header().Set("X-Total-Count", "49")
		_, _ = w.Write([]byte(`[` + streetstylePayload + `]`))
	}))
	defer server.Close()

	streetstyles := NewTestClient(server.URL, nil).Streetstyles()

	page, err := streetstyles.List(context.Background(), &tagwalk.ListParams{
		Filters: tagwalk.Query{"city": "paris"},
		From:    48,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 49, page.TotalCount)
}

func TestStreetstylesClient_List_OutOfRange(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
	}))
	defer server.Close()

	streetstyles := NewTestClient(server.URL, nil).Streetstyles()

	_, err := streetstyles.List(context.Background(), &tagwalk.ListParams{From: 9000})
	require.ErrorIs(t, err, tagwalk.ErrOutOfRange)
}
