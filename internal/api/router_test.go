package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dutchiono/headless-markets/internal/models"
	"github.com/dutchiono/headless-markets/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemoryStore()
	for _, a := range []models.Agent{
		{ID: "valid", Name: "Oracle Prime", Category: "defi", IsVerified: true, IsActive: true},
		{ID: "inactive", Name: "Sleepy", Category: "defi", IsVerified: true, IsActive: false},
		{ID: "unverified", Name: "Shady", Category: "defi", IsVerified: false, IsActive: true},
	} {
		_, err := st.CreateAgent(ctx, a)
		require.NoError(t, err)
	}

	r, err := NewRouter(Deps{Logger: zerolog.Nop(), Store: st})
	require.NoError(t, err)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestShopAPIOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	body := `{"query":"query($id: ID!) { agent(id: $id) { id } }","variables":{"id":"inactive"}}`
	resp, err := http.Post(srv.URL+"/shop-api", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Data   map[string]json.RawMessage `json:"data"`
		Errors []json.RawMessage          `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Empty(t, out.Errors)
	assert.Equal(t, "null", string(out.Data["agent"]))
}

func TestShopAPIRejectsGet(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/shop-api")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path        string
		status      int
		contentType string
	}{
		{"/", http.StatusOK, "text/html"},
		{"/markets", http.StatusOK, "text/html"},
		{"/agents", http.StatusOK, "text/html"},
		{"/launch", http.StatusOK, "text/html"},
		{"/api", http.StatusOK, "application/json"},
		{"/api/agents", http.StatusOK, "application/json"},
		{"/api/agents/valid", http.StatusOK, "application/json"},
		{"/api/agents/unverified", http.StatusNotFound, "application/json"},
		{"/api/categories/defi/agents", http.StatusOK, "application/json"},
		{"/health", http.StatusOK, "application/json"},
		{"/stats", http.StatusOK, "application/json"},
		{"/metrics", http.StatusOK, "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), tt.contentType),
				"content type %q", resp.Header.Get("Content-Type"))
			assert.NotEmpty(t, resp.Header.Get("Content-Security-Policy"))
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/markets/1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
