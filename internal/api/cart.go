package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PattyWambere/KapeeFrontend/internal/models"
)

// CartService wraps the server-side cart endpoints. All operations require
// an authenticated session; without one the server answers 401 and the
// client discards the stored token.
type CartService struct {
	client *Client
}

// NewCartService creates a cart service over the shared client.
func NewCartService(client *Client) *CartService {
	return &CartService{client: client}
}

// Items returns the authenticated user's cart lines, product details
// populated by the server.
func (s *CartService) Items(ctx context.Context) ([]models.CartItem, error) {
	var resp struct {
		Items []models.CartItem `json:"items"`
	}
	if err := s.client.do(ctx, http.MethodGet, "/cart/cartItems", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Add appends a product to the cart or increments its quantity server-side.
func (s *CartService) Add(ctx context.Context, productID string, quantity int) (*models.CartItem, error) {
	body := map[string]interface{}{"productId": productID, "quantity": quantity}

	var item models.CartItem
	if err := s.client.do(ctx, http.MethodPost, "/cart/addCartItem/items", body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateQuantity sets the quantity of one cart line.
func (s *CartService) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	body := map[string]int{"quantity": quantity}
	return s.client.do(ctx, http.MethodPut, fmt.Sprintf("/cart/updateCartItem/items/%s", itemID), body, nil)
}

// Remove deletes one cart line.
func (s *CartService) Remove(ctx context.Context, itemID string) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/deleteCartItem/items/%s", itemID), nil, nil)
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context) error {
	return s.client.do(ctx, http.MethodDelete, "/cart/clearCart/", nil, nil)
}
