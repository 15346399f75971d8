package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/PattyWambere/KapeeFrontend/internal/api"
	"github.com/PattyWambere/KapeeFrontend/internal/models"
	"github.com/PattyWambere/KapeeFrontend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	headphones = models.Product{ID: "p1", Name: "Wireless Headphones", Price: 25.00}
	watch      = models.Product{ID: "p2", Name: "Smart Watch", Price: 45.00}
)

func newGuestStore(t *testing.T) (*Store, storage.StateStore) {
	t.Helper()

	state, err := storage.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return NewStore(state, nil), state
}

func TestSubtotalIsSumOfLines(t *testing.T) {
	s, _ := newGuestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, headphones, 1))
	require.NoError(t, s.Add(ctx, watch, 2))

	assert.Equal(t, 2, s.Len())
	assert.InDelta(t, 115.00, s.Subtotal(), 1e-9)
}

func TestAddSameProductIncrementsLine(t *testing.T) {
	s, _ := newGuestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, headphones, 1))
	require.NoError(t, s.Add(ctx, headphones, 2))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.InDelta(t, 75.00, s.Subtotal(), 1e-9)
}

func TestQuantityBelowOneRejected(t *testing.T) {
	s, _ := newGuestStore(t)
	ctx := context.Background()

	assert.Equal(t, ErrQuantityTooLow, s.Add(ctx, headphones, 0))
	assert.Equal(t, ErrQuantityTooLow, s.Add(ctx, headphones, -1))

	require.NoError(t, s.Add(ctx, headphones, 2))
	assert.Equal(t, ErrQuantityTooLow, s.UpdateQuantity(ctx, headphones.ID, 0))

	// The line is untouched by the rejected update.
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestUpdateRemoveClear(t *testing.T) {
	s, _ := newGuestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, headphones, 1))
	require.NoError(t, s.Add(ctx, watch, 1))

	require.NoError(t, s.UpdateQuantity(ctx, headphones.ID, 4))
	assert.InDelta(t, 145.00, s.Subtotal(), 1e-9)

	require.NoError(t, s.Remove(ctx, headphones.ID))
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, 0, s.Len())
	assert.Zero(t, s.Subtotal())
}

func TestAddOpensPanel(t *testing.T) {
	s, _ := newGuestStore(t)

	assert.False(t, s.Open())
	require.NoError(t, s.Add(context.Background(), headphones, 1))
	assert.True(t, s.Open())

	s.SetOpen(false)
	assert.False(t, s.Open())
}

func TestGuestCartSurvivesRestart(t *testing.T) {
	state, err := storage.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	ctx := context.Background()

	s := NewStore(state, nil)
	require.NoError(t, s.Add(ctx, headphones, 2))

	restarted := NewStore(state, nil)
	items := restarted.Items()
	require.Len(t, items, 1)
	assert.Equal(t, headphones.ID, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 50.00, restarted.Subtotal(), 1e-9)
}

// fakeCartServer serves the authenticated cart endpoints over an in-memory
// line list.
type fakeCartServer struct {
	mux   *http.ServeMux
	items []models.CartItem
}

func newFakeCartServer(t *testing.T, initial []models.CartItem) (*httptest.Server, *fakeCartServer) {
	t.Helper()

	f := &fakeCartServer{mux: http.NewServeMux(), items: initial}

	f.mux.HandleFunc("/api/cart/cartItems", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"items": f.items})
	})
	f.mux.HandleFunc("/api/cart/addCartItem/items", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		for i := range f.items {
			if f.items[i].ProductID == req.ProductID {
				f.items[i].Quantity += req.Quantity
				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(f.items[i])
				return
			}
		}
		line := models.CartItem{ID: "line-" + req.ProductID, ProductID: req.ProductID, Quantity: req.Quantity}
		f.items = append(f.items, line)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(line)
	})
	f.mux.HandleFunc("/api/cart/clearCart/", func(w http.ResponseWriter, r *http.Request) {
		f.items = nil
		w.Write([]byte(`{"message":"Cart cleared"}`))
	})

	srv := httptest.NewServer(f.mux)
	t.Cleanup(srv.Close)
	return srv, f
}

func newServerStore(t *testing.T, initial []models.CartItem) (*Store, storage.StateStore) {
	t.Helper()

	srv, _ := newFakeCartServer(t, initial)
	state, err := storage.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	client := api.NewClient(srv.URL+"/api", state)
	return NewStore(state, api.NewCartService(client)), state
}

func TestAuthFlipReplacesGuestCart(t *testing.T) {
	serverLines := []models.CartItem{
		{ID: "line-1", ProductID: "p9", Name: "Speaker", Price: 30.00, Quantity: 1},
	}
	s, _ := newServerStore(t, serverLines)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, headphones, 2))
	require.Equal(t, 1, s.Len())

	// Login: the guest lines are discarded, not merged.
	require.NoError(t, s.SetAuthenticated(ctx, true))
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "line-1", items[0].ID)
	assert.InDelta(t, 30.00, s.Subtotal(), 1e-9)

	// Logout: the persisted guest snapshot comes back untouched.
	require.NoError(t, s.SetAuthenticated(ctx, false))
	items = s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, headphones.ID, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestServerModeAddIncrements(t *testing.T) {
	s, _ := newServerStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.SetAuthenticated(ctx, true))
	require.NoError(t, s.Add(ctx, headphones, 1))
	require.NoError(t, s.Add(ctx, headphones, 2))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, headphones.Name, items[0].Name, "display fields come from the product")
	assert.InDelta(t, 75.00, s.Subtotal(), 1e-9)
}

func TestServerFailureLeavesCartUnchanged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/cart/cartItems" {
			w.Write([]byte(`{"items":[{"id":"line-1","productId":"p1","name":"Headphones","price":25,"quantity":1}]}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	}))
	t.Cleanup(srv.Close)

	state, err := storage.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	client := api.NewClient(srv.URL+"/api", state)
	s := NewStore(state, api.NewCartService(client))
	ctx := context.Background()

	require.NoError(t, s.SetAuthenticated(ctx, true))
	require.Equal(t, 1, s.Len())

	assert.Error(t, s.Add(ctx, watch, 1))
	assert.Error(t, s.UpdateQuantity(ctx, "line-1", 5))
	assert.Error(t, s.Clear(ctx))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}
