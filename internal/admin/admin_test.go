package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/PattyWambere/KapeeFrontend/internal/api"
	"github.com/PattyWambere/KapeeFrontend/internal/models"
	"github.com/PattyWambere/KapeeFrontend/internal/session"
	"github.com/PattyWambere/KapeeFrontend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConsole builds a console whose session role is controlled by the
// profile the fake server answers with.
func newConsole(t *testing.T, role string, extra func(mux *http.ServeMux)) *Console {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok"}`))
	})
	mux.HandleFunc("/api/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"_id":"u1","email":"u@example.com","role":"` + role + `"}`))
	})
	if extra != nil {
		extra(mux)
	}

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	state, err := storage.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	client := api.NewClient(srv.URL+"/api", state)

	sess := session.NewStore(client, api.NewAuthService(client))
	_, err = sess.Login(context.Background(), "u@example.com", "secret")
	require.NoError(t, err)

	return NewConsole(sess,
		api.NewProductService(client),
		api.NewCategoryService(client),
		api.NewOrderService(client))
}

func TestNonAdminRefusedLocally(t *testing.T) {
	c := newConsole(t, models.RoleCustomer, func(mux *http.ServeMux) {
		mux.HandleFunc("/api/products/", func(w http.ResponseWriter, r *http.Request) {
			t.Error("non-admin calls must not reach the server")
		})
		mux.HandleFunc("/api/orders/", func(w http.ResponseWriter, r *http.Request) {
			t.Error("non-admin calls must not reach the server")
		})
	})
	ctx := context.Background()

	_, err := c.CreateProduct(ctx, api.ProductInput{})
	assert.Equal(t, ErrForbidden, err)
	assert.Equal(t, ErrForbidden, c.DeleteProduct(ctx, "p1"))
	_, err = c.SetOrderStatus(ctx, "order-1", models.OrderStatusShipped)
	assert.Equal(t, ErrForbidden, err)
	assert.Equal(t, ErrForbidden, c.DeleteOrder(ctx, "order-1"))
}

func TestSetOrderStatusValidatesStatus(t *testing.T) {
	c := newConsole(t, models.RoleAdmin, nil)

	_, err := c.SetOrderStatus(context.Background(), "order-1", "archived")
	require.Error(t, err)
	assert.NotEqual(t, ErrForbidden, err)
}

func TestAdminOrderOperations(t *testing.T) {
	c := newConsole(t, models.RoleAdmin, func(mux *http.ServeMux) {
		mux.HandleFunc("/api/orders/updateOrders/order-1", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			w.Write([]byte(`{"id":"order-1","status":"shipped"}`))
		})
		mux.HandleFunc("/api/orders/deleteOrders/order-1", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			w.Write([]byte(`{"message":"Order deleted"}`))
		})
	})
	ctx := context.Background()

	order, err := c.SetOrderStatus(ctx, "order-1", models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, order.Status)

	assert.NoError(t, c.DeleteOrder(ctx, "order-1"))
}
