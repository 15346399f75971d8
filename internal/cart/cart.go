// Package cart manages the shopping cart: a guest cart persisted locally,
// a server-backed cart once a session exists, and the switch between the
// two when authentication state flips.
package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/PattyWambere/KapeeFrontend/internal/api"
	"github.com/PattyWambere/KapeeFrontend/internal/models"
	"github.com/PattyWambere/KapeeFrontend/internal/storage"
	"github.com/PattyWambere/KapeeFrontend/internal/util"

	"go.uber.org/zap"
)

// ErrQuantityTooLow rejects quantities below 1 before any backend call.
var ErrQuantityTooLow = errors.New("cart: quantity must be at least 1")

// backend is the capability set shared by the guest and server carts. Every
// mutation returns the reconciled item list; a failed mutation must leave
// the previous list usable, so the store applies results only on success.
type backend interface {
	Load(ctx context.Context) ([]models.CartItem, error)
	Add(ctx context.Context, items []models.CartItem, product models.Product, quantity int) ([]models.CartItem, error)
	UpdateQuantity(ctx context.Context, items []models.CartItem, itemID string, quantity int) ([]models.CartItem, error)
	Remove(ctx context.Context, items []models.CartItem, itemID string) ([]models.CartItem, error)
	Clear(ctx context.Context) error
	Mode() string
}

// Store holds the cart line items and the cart-panel visibility flag.
// Mutations are serialized: the lock is held across the backend round-trip,
// so two rapid updates on the same line cannot land out of order.
type Store struct {
	state  storage.StateStore
	server *api.CartService
	logger *zap.Logger

	mu      sync.Mutex
	backend backend
	items   []models.CartItem
	open    bool
	loading bool
}

// NewStore creates a cart store in guest mode, restoring any persisted
// guest snapshot. Server mode is entered through SetAuthenticated.
func NewStore(state storage.StateStore, server *api.CartService) *Store {
	s := &Store{
		state:   state,
		server:  server,
		logger:  util.GetLogger(),
		backend: newLocalBackend(state),
	}

	items, err := s.backend.Load(context.Background())
	if err != nil {
		s.logger.Warn("Failed to restore guest cart", zap.Error(err))
		items = nil
	}
	s.items = items
	return s
}

// SetAuthenticated switches between the guest and server backends. On the
// flip to authenticated the current list is discarded and replaced by the
// server cart; guest contents are not merged. On the flip back to guest the
// persisted guest snapshot is restored.
func (s *Store) SetAuthenticated(ctx context.Context, authenticated bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if authenticated {
		s.backend = newServerBackend(s.server)
	} else {
		s.backend = newLocalBackend(s.state)
	}

	s.loading = true
	items, err := s.backend.Load(ctx)
	s.loading = false
	if err != nil {
		s.items = nil
		return err
	}
	s.items = items
	return nil
}

// Items returns a copy of the current cart lines.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Subtotal is the sum of price times quantity over the current lines,
// recomputed on every call and never cached.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Len returns the number of cart lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Open reports whether the cart panel is visible.
func (s *Store) Open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// SetOpen shows or hides the cart panel.
func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = open
}

// Loading reports whether a backend fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Add puts a product in the cart, incrementing the existing line when the
// product is already present. It opens the cart panel on success.
func (s *Store) Add(ctx context.Context, product models.Product, quantity int) error {
	if quantity < 1 {
		return ErrQuantityTooLow
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.backend.Add(ctx, s.items, product, quantity)
	if err != nil {
		return err
	}

	util.CartMutationsTotal.WithLabelValues("add", s.backend.Mode()).Inc()
	s.items = items
	s.open = true
	return nil
}

// UpdateQuantity sets the quantity of one line. Values below 1 are rejected
// without a backend call and leave the line unchanged.
func (s *Store) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity < 1 {
		return ErrQuantityTooLow
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.backend.UpdateQuantity(ctx, s.items, itemID, quantity)
	if err != nil {
		return err
	}

	util.CartMutationsTotal.WithLabelValues("update", s.backend.Mode()).Inc()
	s.items = items
	return nil
}

// Remove deletes one line.
func (s *Store) Remove(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.backend.Remove(ctx, s.items, itemID)
	if err != nil {
		return err
	}

	util.CartMutationsTotal.WithLabelValues("remove", s.backend.Mode()).Inc()
	s.items = items
	return nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Clear(ctx); err != nil {
		return err
	}

	util.CartMutationsTotal.WithLabelValues("clear", s.backend.Mode()).Inc()
	s.items = nil
	return nil
}
