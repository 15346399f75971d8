package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/PattyWambere/KapeeFrontend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	state, err := storage.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	return NewClient(srv.URL+"/api", state)
}

func TestTokenRoundTrip(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler())

	_, ok := c.Token()
	assert.False(t, ok)

	require.NoError(t, c.SetToken("tok-1"))
	token, ok := c.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, c.ClearToken())
	_, ok = c.Token()
	assert.False(t, ok)
}

func TestRequestCarriesBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))

	require.NoError(t, c.do(context.Background(), http.MethodGet, "/products/products", nil, nil))
	assert.Empty(t, gotAuth)

	require.NoError(t, c.SetToken("tok-1"))
	require.NoError(t, c.do(context.Background(), http.MethodGet, "/products/products", nil, nil))
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestUnauthorizedDiscardsToken(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid or expired session"}`))
	}))
	require.NoError(t, c.SetToken("stale"))

	err := c.do(context.Background(), http.MethodGet, "/auth/profile", nil, nil)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	_, ok := c.Token()
	assert.False(t, ok, "a 401 response must discard the stored token")
}

func TestErrorCarriesServerMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Cart is empty"}`))
	}))

	err := c.do(context.Background(), http.MethodPost, "/orders/createOrders", nil, nil)
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Cart is empty", apiErr.Message)
	assert.False(t, IsUnauthorized(err))
}

func TestErrorFallsBackToErrorField(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"Email already registered"}`))
	}))

	err := c.do(context.Background(), http.MethodPost, "/auth/register", nil, nil)
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, "Email already registered", apiErr.Message)
}

func TestDoDecodesResponse(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"token":"issued"}`))
	}))

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, c.do(context.Background(), http.MethodPost, "/auth/login", map[string]string{"email": "a@b.c"}, &out))
	assert.Equal(t, "issued", out.Token)
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/products/products", routeLabel("/products/products"))
	assert.Equal(t, "/products/productsById", routeLabel("/products/productsById/abc-123"))
	assert.Equal(t, "/health", routeLabel("/health"))
}
