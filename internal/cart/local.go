package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PattyWambere/KapeeFrontend/internal/models"
	"github.com/PattyWambere/KapeeFrontend/internal/storage"
)

// localBackend is the guest cart: lines live in memory, identity key is the
// product id, and a full snapshot is written to the state store after every
// mutation so a restart restores the cart.
type localBackend struct {
	state storage.StateStore
}

func newLocalBackend(state storage.StateStore) *localBackend {
	return &localBackend{state: state}
}

func (b *localBackend) Mode() string { return "guest" }

func (b *localBackend) Load(ctx context.Context) ([]models.CartItem, error) {
	raw, err := b.state.Get(storage.KeyGuestCart)
	if err == storage.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse guest cart snapshot: %w", err)
	}
	return items, nil
}

func (b *localBackend) Add(ctx context.Context, items []models.CartItem, product models.Product, quantity int) ([]models.CartItem, error) {
	next := make([]models.CartItem, len(items))
	copy(next, items)

	found := false
	for i := range next {
		if next[i].ProductID == product.ID {
			next[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		next = append(next, models.CartItem{
			ID:        product.ID,
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Images:    product.Images,
			Quantity:  quantity,
		})
	}

	return next, b.persist(next)
}

func (b *localBackend) UpdateQuantity(ctx context.Context, items []models.CartItem, itemID string, quantity int) ([]models.CartItem, error) {
	next := make([]models.CartItem, len(items))
	copy(next, items)

	for i := range next {
		if next[i].ID == itemID {
			next[i].Quantity = quantity
			break
		}
	}
	return next, b.persist(next)
}

func (b *localBackend) Remove(ctx context.Context, items []models.CartItem, itemID string) ([]models.CartItem, error) {
	next := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ID != itemID {
			next = append(next, item)
		}
	}
	return next, b.persist(next)
}

func (b *localBackend) Clear(ctx context.Context) error {
	return b.persist(nil)
}

func (b *localBackend) persist(items []models.CartItem) error {
	if items == nil {
		items = []models.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode guest cart snapshot: %w", err)
	}
	return b.state.Set(storage.KeyGuestCart, raw)
}
