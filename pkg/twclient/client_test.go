package twclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
	"github.com/fivetwenty-io/tagwalk-client/pkg/twclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := twclient.New(context.Background(), nil)
		require.ErrorIs(t, err, tagwalk.ErrConfigRequired)
	})

	t.Run("requires endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := twclient.New(context.Background(), &tagwalk.Config{})
		require.ErrorIs(t, err, tagwalk.ErrAPIEndpointRequired)
	})

	t.Run("does not modify config", func(t *testing.T) {
		t.Parallel()

		config := &tagwalk.Config{APIEndpoint: "api.example.com/"}

		client, err := twclient.New(context.Background(), config)
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "api.example.com/", config.APIEndpoint)
	})
}

func TestNormalizeEndpoint(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"api.tag-walk.com":          "https://api.tag-walk.com",
		"https://api.tag-walk.com/": "https://api.tag-walk.com",
		"http://localhost:8080//":   "http://localhost:8080",
		" https://api.tag-walk.com": "https://api.tag-walk.com",
	}

	for input, want := range tests {
		assert.Equal(t, want, twclient.NormalizeEndpoint(input), input)
	}
}

func TestNewWithEndpoint(t *testing.T) {
	t.Parallel()

	client, err := twclient.NewWithEndpoint(context.Background(), "https://api.example.com")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"slug":"street-1"}`))
	}))
	defer server.Close()

	client, err := twclient.NewWithToken(context.Background(), server.URL+"/", "test-token")
	require.NoError(t, err)

	defer func() { _ = client.Close() }()

	streetstyle, err := client.Streetstyles().Get(context.Background(), "street-1")
	require.NoError(t, err)
	assert.Equal(t, "street-1", streetstyle.Slug)
}

func TestNewWithClientCredentials(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/oauth/v2/token") {
			id, secret, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "client-id", id)
			assert.Equal(t, "client-secret", secret)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"issued","token_type":"bearer","expires_in":3600}`))

			return
		}

		assert.Equal(t, "Bearer issued", r.Header.Get("Authorization"))
		w.Header().Set("X-Total-Count", "0")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, err := twclient.NewWithClientCredentials(context.Background(), server.URL, "client-id", "client-secret")
	require.NoError(t, err)

	page, err := client.Medias().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}
