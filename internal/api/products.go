package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PattyWambere/KapeeFrontend/internal/models"
)

// ProductInput is a partial product record for create/update; the server
// fills defaults for omitted fields.
type ProductInput struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	CategoryID  string   `json:"categoryId,omitempty"`
	InStock     *bool    `json:"inStock,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// ProductService wraps the product resource endpoints.
type ProductService struct {
	client *Client
}

// NewProductService creates a product service over the shared client.
func NewProductService(client *Client) *ProductService {
	return &ProductService{client: client}
}

// List returns all products.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.client.do(ctx, http.MethodGet, "/products/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get returns one product by id.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/products/productsById/%s", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Create creates a product.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	var product models.Product
	if err := s.client.do(ctx, http.MethodPost, "/products/products", in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update replaces the given fields of a product.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	var product models.Product
	if err := s.client.do(ctx, http.MethodPut, fmt.Sprintf("/products/products/%s", id), in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("/products/products/%s", id), nil, nil)
}
