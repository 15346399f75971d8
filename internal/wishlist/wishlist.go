// Package wishlist is the in-memory favorites set. Nothing is persisted or
// synced to the server; the set resets with the process.
package wishlist

import (
	"sync"

	"github.com/PattyWambere/KapeeFrontend/internal/models"
)

// Store holds the favorited products, keyed by product id.
type Store struct {
	mu       sync.Mutex
	products []models.Product
}

// NewStore creates an empty wishlist.
func NewStore() *Store {
	return &Store{}
}

// Toggle adds the product when absent and removes it when present.
// Toggling twice restores the original membership.
func (s *Store) Toggle(product models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == product.ID {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return
		}
	}
	s.products = append(s.products, product)
}

// Contains reports membership by product id.
func (s *Store) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// Products returns a copy of the current wishlist.
func (s *Store) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Len returns the number of favorited products.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}
