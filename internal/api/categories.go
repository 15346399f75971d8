package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PattyWambere/KapeeFrontend/internal/models"
)

// CategoryInput is a partial category record for create/update.
type CategoryInput struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// CategoryService wraps the category resource endpoints.
type CategoryService struct {
	client *Client
}

// NewCategoryService creates a category service over the shared client.
func NewCategoryService(client *Client) *CategoryService {
	return &CategoryService{client: client}
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.client.do(ctx, http.MethodGet, "/categories/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Get returns one category by id.
func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/categories/categoriesById/%s", id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Create creates a category.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	var category models.Category
	if err := s.client.do(ctx, http.MethodPost, "/categories/categories", in, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update replaces the given fields of a category.
func (s *CategoryService) Update(ctx context.Context, id string, in CategoryInput) (*models.Category, error) {
	var category models.Category
	if err := s.client.do(ctx, http.MethodPut, fmt.Sprintf("/categories/categories/%s", id), in, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes a category.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/categories/%s", id), nil, nil)
}
