//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

const (
	fakeClientID     = "integration-client"
	fakeClientSecret = "integration-secret"
	fakeToken        = "integration-token"
)

// fakeMedias is the catalogue served by the fake API.
var fakeMedias = []map[string]any{
	{"slug": "chanel-fw19-1", "type": "woman", "look": 1, "designer": map[string]any{"slug": "chanel"}, "city": map[string]any{"slug": "paris"}},
	{"slug": "chanel-fw19-2", "type": "woman", "look": 2, "designer": map[string]any{"slug": "chanel"}, "city": map[string]any{"slug": "paris"}},
	{"slug": "dior-fw19-1", "type": "woman", "look": 1, "designer": map[string]any{"slug": "dior"}, "city": map[string]any{"slug": "paris"}},
	{"slug": "prada-fw19-1", "type": "woman", "look": 1, "designer": map[string]any{"slug": "prada"}, "city": map[string]any{"slug": "milan"}},
	{"slug": "gucci-fw19-1", "type": "woman", "look": 1, "designer": map[string]any{"slug": "gucci"}, "city": map[string]any{"slug": "milan"}},
}

// newFakeAPI serves a small read-only Tagwalk API. Every /api route requires
// the bearer token issued by /oauth/v2/token.
func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /oauth/v2/token", func(w http.ResponseWriter, r *http.Request) {
		id, secret, ok := r.BasicAuth()
		if !ok {
			_ = r.ParseForm()
			id, secret = r.PostForm.Get("client_id"), r.PostForm.Get("client_secret")
		}

		if id != fakeClientID || secret != fakeClientSecret {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}

		writeJSON(w, map[string]any{"access_token": fakeToken, "token_type": "bearer", "expires_in": 3600})
	})

	mux.HandleFunc("GET /api/cities", authorized(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []map[string]any{
			{"slug": "milan", "name": "Milan", "position": 2},
			{"slug": "paris", "name": "Paris", "position": 1},
		})
	}))

	mux.HandleFunc("GET /api/medias", authorized(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		from, _ := strconv.Atoi(query.Get("from"))
		size, _ := strconv.Atoi(query.Get("size"))

		if from >= len(fakeMedias) {
			w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)

			return
		}

		end := min(from+size, len(fakeMedias))

		w.Header().Set("X-Total-Count", strconv.Itoa(len(fakeMedias)))
		writeJSON(w, fakeMedias[from:end])
	}))

	mux.HandleFunc("GET /api/medias/{slug}", authorized(func(w http.ResponseWriter, r *http.Request) {
		for _, media := range fakeMedias {
			if media["slug"] == r.PathValue("slug") {
				writeJSON(w, media)

				return
			}
		}

		w.WriteHeader(http.StatusNotFound)
	}))

	notFound := authorized(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("GET /api/streetstyles/{slug}", notFound)
	mux.HandleFunc("GET /api/galleries/{slug}", notFound)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ") != fakeToken {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}

		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(value)
}
