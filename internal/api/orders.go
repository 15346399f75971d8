package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PattyWambere/KapeeFrontend/internal/models"
)

// OrderService wraps the order endpoints, including the admin-only status
// update and delete operations.
type OrderService struct {
	client *Client
}

// NewOrderService creates an order service over the shared client.
func NewOrderService(client *Client) *OrderService {
	return &OrderService{client: client}
}

// CreateFromCart places an order from the current server-side cart. The
// client sends no line items: the server derives items and total from its
// own cart state and clears that cart atomically.
func (s *OrderService) CreateFromCart(ctx context.Context) (*models.Order, error) {
	var order models.Order
	if err := s.client.do(ctx, http.MethodPost, "/orders/createOrders", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListMine returns the authenticated user's orders.
func (s *OrderService) ListMine(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.client.do(ctx, http.MethodGet, "/orders/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Get returns one order by id.
func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/orders/orders/%s", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Cancel requests cancellation of a pending order.
func (s *OrderService) Cancel(ctx context.Context, id string) (*models.Order, error) {
	var resp struct {
		Order models.Order `json:"order"`
	}
	if err := s.client.do(ctx, http.MethodPatch, fmt.Sprintf("/orders/cancelOrders/%s/cancel", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

// UpdateStatus moves an order to any of the four statuses. Admin only.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	body := map[string]string{"status": status}

	var order models.Order
	if err := s.client.do(ctx, http.MethodPut, fmt.Sprintf("/orders/updateOrders/%s", id), body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Delete removes an order record at any status. Admin only.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/deleteOrders/%s", id), nil, nil)
}
