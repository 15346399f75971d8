// Package checkout drives the linear order flow: cart review, billing
// details, order submission, confirmation. The server is the source of
// truth for order line items and totals; the flow only sequences calls.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/PattyWambere/KapeeFrontend/internal/api"
	"github.com/PattyWambere/KapeeFrontend/internal/cart"
	"github.com/PattyWambere/KapeeFrontend/internal/models"
	"github.com/PattyWambere/KapeeFrontend/internal/util"

	"go.uber.org/zap"
)

var (
	// ErrEmptyCart blocks progression past cart review; the view offers a
	// return-to-catalog action instead of the billing form.
	ErrEmptyCart = errors.New("checkout: cart is empty")

	// ErrNoOrder is returned when the confirmation view is reached without
	// an order snapshot; it is never resolved by re-fetching.
	ErrNoOrder = errors.New("checkout: no order found")

	// ErrNotCancellable rejects cancellation of orders past pending.
	ErrNotCancellable = errors.New("checkout: only pending orders can be cancelled")
)

// BillingDetails is the billing form. Validation is client-side
// required-field checking only; the server never sees the address before
// submission in this design.
type BillingDetails struct {
	FirstName     string
	LastName      string
	CompanyName   string
	Country       string
	StreetAddress string
	Apartment     string
	City          string
	State         string
	ZipCode       string
	Phone         string
	Email         string
	OrderNotes    string
}

// Validate reports the missing required fields, if any.
func (b BillingDetails) Validate() error {
	required := []struct {
		name, value string
	}{
		{"first name", b.FirstName},
		{"last name", b.LastName},
		{"country", b.Country},
		{"street address", b.StreetAddress},
		{"city", b.City},
		{"zip code", b.ZipCode},
		{"phone", b.Phone},
		{"email", b.Email},
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("checkout: missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Flow is one checkout attempt over the current cart.
type Flow struct {
	cart   *cart.Store
	orders *api.OrderService
	logger *zap.Logger

	mu           sync.Mutex
	processing   bool
	confirmation *models.Order
}

// NewFlow creates a checkout flow bound to the cart and order service.
func NewFlow(cartStore *cart.Store, orders *api.OrderService) *Flow {
	return &Flow{
		cart:   cartStore,
		orders: orders,
		logger: util.GetLogger(),
	}
}

// Begin gates entry to the billing step on cart non-emptiness.
func (f *Flow) Begin() error {
	if f.cart.Len() == 0 {
		return ErrEmptyCart
	}
	return nil
}

// Processing reports whether a submission is in flight, so views can
// disable the submit action.
func (f *Flow) Processing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.processing
}

// Submit validates the billing form and places the order from the current
// server-side cart. The client sends no line items. On success the local
// cart is cleared and the returned order becomes the confirmation
// snapshot; on failure the server's message is surfaced and prior state is
// left intact so the user stays on the billing step.
func (f *Flow) Submit(ctx context.Context, billing BillingDetails) (*models.Order, error) {
	if err := f.Begin(); err != nil {
		return nil, err
	}
	if err := billing.Validate(); err != nil {
		util.CheckoutFailedTotal.WithLabelValues("validation").Inc()
		return nil, err
	}

	f.mu.Lock()
	f.processing = true
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.processing = false
		f.mu.Unlock()
	}()

	order, err := f.orders.CreateFromCart(ctx)
	if err != nil {
		util.CheckoutFailedTotal.WithLabelValues("server").Inc()
		return nil, err
	}

	if err := f.cart.Clear(ctx); err != nil {
		// The order exists; a stale local cart is the lesser problem.
		f.logger.Warn("Failed to clear cart after order placement",
			zap.String("order_id", order.ID), zap.Error(err))
	}

	f.mu.Lock()
	f.confirmation = order
	f.mu.Unlock()

	util.OrdersPlacedTotal.Inc()
	f.logger.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.Float64("total", order.TotalAmount))
	return order, nil
}

// Confirmation returns the order snapshot carried forward from Submit.
// Reaching the confirmation view without one yields ErrNoOrder; the flow
// never re-fetches.
func (f *Flow) Confirmation() (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.confirmation == nil {
		return nil, ErrNoOrder
	}
	order := *f.confirmation
	return &order, nil
}

// CanCancel reports whether the customer-facing view should offer a
// cancel action.
func CanCancel(order *models.Order) bool {
	return order != nil && order.Status == models.OrderStatusPending
}

// Cancel cancels a pending order and re-fetches it so the displayed state
// is the server's authoritative post-cancel record, not the assumed one.
func (f *Flow) Cancel(ctx context.Context, order *models.Order) (*models.Order, error) {
	if !CanCancel(order) {
		return nil, ErrNotCancellable
	}

	if _, err := f.orders.Cancel(ctx, order.ID); err != nil {
		return nil, err
	}

	util.OrdersCancelledTotal.Inc()
	return f.orders.Get(ctx, order.ID)
}

// StatusLabel maps an order status to its customer-facing label:
// "pending" is presented as "Processing", everything else verbatim.
func StatusLabel(status string) string {
	if status == models.OrderStatusPending {
		return "Processing"
	}
	return status
}
