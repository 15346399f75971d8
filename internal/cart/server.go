package cart

import (
	"context"

	"github.com/PattyWambere/KapeeFrontend/internal/api"
	"github.com/PattyWambere/KapeeFrontend/internal/models"
)

// serverBackend is the authenticated cart: every mutation goes to the
// server first and the in-memory list is reconciled only after it
// succeeds, so a failed call leaves the list unchanged. Identity key is
// the server-assigned cart-item id.
type serverBackend struct {
	svc *api.CartService
}

func newServerBackend(svc *api.CartService) *serverBackend {
	return &serverBackend{svc: svc}
}

func (b *serverBackend) Mode() string { return "server" }

func (b *serverBackend) Load(ctx context.Context) ([]models.CartItem, error) {
	return b.svc.Items(ctx)
}

func (b *serverBackend) Add(ctx context.Context, items []models.CartItem, product models.Product, quantity int) ([]models.CartItem, error) {
	created, err := b.svc.Add(ctx, product.ID, quantity)
	if err != nil {
		return nil, err
	}

	next := make([]models.CartItem, len(items))
	copy(next, items)

	for i := range next {
		if next[i].ProductID == product.ID {
			next[i].Quantity += quantity
			return next, nil
		}
	}

	// New line: take the server record, enriched with the display fields
	// we already have from the product the caller handed us.
	line := *created
	if line.Name == "" {
		line.Name = product.Name
	}
	if line.Price == 0 {
		line.Price = product.Price
	}
	if len(line.Images) == 0 {
		line.Images = product.Images
	}
	return append(next, line), nil
}

func (b *serverBackend) UpdateQuantity(ctx context.Context, items []models.CartItem, itemID string, quantity int) ([]models.CartItem, error) {
	if err := b.svc.UpdateQuantity(ctx, itemID, quantity); err != nil {
		return nil, err
	}

	next := make([]models.CartItem, len(items))
	copy(next, items)
	for i := range next {
		if next[i].ID == itemID {
			next[i].Quantity = quantity
			break
		}
	}
	return next, nil
}

func (b *serverBackend) Remove(ctx context.Context, items []models.CartItem, itemID string) ([]models.CartItem, error) {
	if err := b.svc.Remove(ctx, itemID); err != nil {
		return nil, err
	}

	next := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ID != itemID {
			next = append(next, item)
		}
	}
	return next, nil
}

func (b *serverBackend) Clear(ctx context.Context) error {
	return b.svc.Clear(ctx)
}
