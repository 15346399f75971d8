// Package admin is the back-office facade: product, category and order
// management gated by the session role. Non-admin sessions are refused
// locally, before any server call.
package admin

import (
	"context"
	"errors"

	"github.com/PattyWambere/KapeeFrontend/internal/api"
	"github.com/PattyWambere/KapeeFrontend/internal/models"
	"github.com/PattyWambere/KapeeFrontend/internal/session"
)

// ErrForbidden is returned when the current session lacks the admin role.
var ErrForbidden = errors.New("admin: admin role required")

// Console bundles the admin operations over the resource services.
type Console struct {
	session    *session.Store
	products   *api.ProductService
	categories *api.CategoryService
	orders     *api.OrderService
}

// NewConsole creates the admin console.
func NewConsole(sess *session.Store, products *api.ProductService, categories *api.CategoryService, orders *api.OrderService) *Console {
	return &Console{
		session:    sess,
		products:   products,
		categories: categories,
		orders:     orders,
	}
}

func (c *Console) authorize() error {
	if !c.session.User().IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// CreateProduct adds a product to the catalog.
func (c *Console) CreateProduct(ctx context.Context, in api.ProductInput) (*models.Product, error) {
	if err := c.authorize(); err != nil {
		return nil, err
	}
	return c.products.Create(ctx, in)
}

// UpdateProduct submits a replacement for an existing product.
func (c *Console) UpdateProduct(ctx context.Context, id string, in api.ProductInput) (*models.Product, error) {
	if err := c.authorize(); err != nil {
		return nil, err
	}
	return c.products.Update(ctx, id, in)
}

// DeleteProduct removes a product.
func (c *Console) DeleteProduct(ctx context.Context, id string) error {
	if err := c.authorize(); err != nil {
		return err
	}
	return c.products.Delete(ctx, id)
}

// CreateCategory adds a category.
func (c *Console) CreateCategory(ctx context.Context, in api.CategoryInput) (*models.Category, error) {
	if err := c.authorize(); err != nil {
		return nil, err
	}
	return c.categories.Create(ctx, in)
}

// UpdateCategory submits a replacement for an existing category.
func (c *Console) UpdateCategory(ctx context.Context, id string, in api.CategoryInput) (*models.Category, error) {
	if err := c.authorize(); err != nil {
		return nil, err
	}
	return c.categories.Update(ctx, id, in)
}

// DeleteCategory removes a category.
func (c *Console) DeleteCategory(ctx context.Context, id string) error {
	if err := c.authorize(); err != nil {
		return err
	}
	return c.categories.Delete(ctx, id)
}

// SetOrderStatus moves an order directly to any of the four statuses;
// there is no transition-adjacency restriction on the admin surface.
func (c *Console) SetOrderStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	if err := c.authorize(); err != nil {
		return nil, err
	}
	if !models.ValidOrderStatus(status) {
		return nil, errors.New("admin: unknown order status " + status)
	}
	return c.orders.UpdateStatus(ctx, orderID, status)
}

// DeleteOrder hard-deletes an order record at any status.
func (c *Console) DeleteOrder(ctx context.Context, orderID string) error {
	if err := c.authorize(); err != nil {
		return err
	}
	return c.orders.Delete(ctx, orderID)
}
