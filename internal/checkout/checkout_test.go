package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/PattyWambere/KapeeFrontend/internal/api"
	"github.com/PattyWambere/KapeeFrontend/internal/cart"
	"github.com/PattyWambere/KapeeFrontend/internal/models"
	"github.com/PattyWambere/KapeeFrontend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBilling() BillingDetails {
	return BillingDetails{
		FirstName:     "Pat",
		LastName:      "W",
		Country:       "Rwanda",
		StreetAddress: "12 KG 7 Ave",
		City:          "Kigali",
		ZipCode:       "00000",
		Phone:         "+250700000000",
		Email:         "pat@example.com",
	}
}

func TestBillingValidation(t *testing.T) {
	assert.NoError(t, validBilling().Validate())

	b := validBilling()
	b.Email = ""
	b.City = "   "
	err := b.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "city")
	assert.Contains(t, err.Error(), "email")

	// Optional fields stay optional.
	b = validBilling()
	b.CompanyName = ""
	b.Apartment = ""
	b.State = ""
	b.OrderNotes = ""
	assert.NoError(t, b.Validate())
}

func TestBeginRequiresNonEmptyCart(t *testing.T) {
	state, err := storage.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	cartStore := cart.NewStore(state, nil)

	f := NewFlow(cartStore, nil)
	assert.Equal(t, ErrEmptyCart, f.Begin())

	_, err = f.Submit(context.Background(), validBilling())
	assert.Equal(t, ErrEmptyCart, err)

	require.NoError(t, cartStore.Add(context.Background(), models.Product{ID: "p1", Price: 25.00}, 1))
	assert.NoError(t, f.Begin())
}

// newCheckoutFixture builds a flow over a guest cart holding one line and
// an order endpoint served by handler.
func newCheckoutFixture(t *testing.T, handler http.HandlerFunc) (*Flow, *cart.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	state, err := storage.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	client := api.NewClient(srv.URL+"/api", state)
	cartStore := cart.NewStore(state, api.NewCartService(client))
	require.NoError(t, cartStore.Add(context.Background(), models.Product{ID: "p1", Name: "Headphones", Price: 25.00}, 2))

	return NewFlow(cartStore, api.NewOrderService(client)), cartStore
}

func TestSubmitPlacesOrderAndClearsCart(t *testing.T) {
	placed := models.Order{
		ID:          "order-1",
		CustomerID:  "u1",
		Items:       []models.OrderItem{{ProductID: "p1", Quantity: 2, Price: 25.00}},
		TotalAmount: 50.00,
		Status:      models.OrderStatusPending,
	}

	f, cartStore := newCheckoutFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders/createOrders", r.URL.Path)
		// The order is created from the server-side cart; no payload.
		body, _ := json.Marshal(placed)
		w.WriteHeader(http.StatusCreated)
		w.Write(body)
	})

	order, err := f.Submit(context.Background(), validBilling())
	require.NoError(t, err)

	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.InDelta(t, 50.00, order.TotalAmount, 1e-9)
	assert.Equal(t, 0, cartStore.Len(), "placing an order empties the cart")

	confirmed, err := f.Confirmation()
	require.NoError(t, err)
	assert.Equal(t, "order-1", confirmed.ID)
}

func TestSubmitRejectsInvalidBilling(t *testing.T) {
	f, cartStore := newCheckoutFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no order call expected for invalid billing")
	})

	b := validBilling()
	b.Phone = ""
	_, err := f.Submit(context.Background(), b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phone")
	assert.Equal(t, 1, cartStore.Len(), "a rejected submission leaves the cart intact")
}

func TestSubmitSurfacesServerError(t *testing.T) {
	f, cartStore := newCheckoutFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Cart is empty"}`))
	})

	_, err := f.Submit(context.Background(), validBilling())
	require.Error(t, err)

	apiErr, ok := err.(*api.Error)
	require.True(t, ok)
	assert.Equal(t, "Cart is empty", apiErr.Message)
	assert.Equal(t, 1, cartStore.Len())

	_, err = f.Confirmation()
	assert.Equal(t, ErrNoOrder, err)
}

func TestConfirmationWithoutOrder(t *testing.T) {
	f := NewFlow(nil, nil)
	_, err := f.Confirmation()
	assert.Equal(t, ErrNoOrder, err)
}

func TestCanCancel(t *testing.T) {
	assert.True(t, CanCancel(&models.Order{Status: models.OrderStatusPending}))
	assert.False(t, CanCancel(&models.Order{Status: models.OrderStatusShipped}))
	assert.False(t, CanCancel(&models.Order{Status: models.OrderStatusDelivered}))
	assert.False(t, CanCancel(&models.Order{Status: models.OrderStatusCancelled}))
	assert.False(t, CanCancel(nil))
}

func TestCancelRefetchesOrder(t *testing.T) {
	var cancelCalled bool
	f, _ := newCheckoutFixture(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/orders/cancelOrders/order-1/cancel":
			cancelCalled = true
			w.Write([]byte(`{"order":{"id":"order-1","status":"cancelled"}}`))
		case "/api/orders/orders/order-1":
			w.Write([]byte(`{"id":"order-1","status":"cancelled","totalAmount":50}`))
		default:
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
	})

	pending := &models.Order{ID: "order-1", Status: models.OrderStatusPending}
	updated, err := f.Cancel(context.Background(), pending)
	require.NoError(t, err)

	assert.True(t, cancelCalled)
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)
	assert.InDelta(t, 50.00, updated.TotalAmount, 1e-9, "the displayed order is the re-fetched record")
}

func TestCancelRejectsNonPending(t *testing.T) {
	f := NewFlow(nil, nil)
	_, err := f.Cancel(context.Background(), &models.Order{ID: "order-1", Status: models.OrderStatusShipped})
	assert.Equal(t, ErrNotCancellable, err)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Processing", StatusLabel(models.OrderStatusPending))
	assert.Equal(t, "shipped", StatusLabel(models.OrderStatusShipped))
	assert.Equal(t, "delivered", StatusLabel(models.OrderStatusDelivered))
	assert.Equal(t, "cancelled", StatusLabel(models.OrderStatusCancelled))
}
