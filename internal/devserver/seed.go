package devserver

import (
	"context"
	"fmt"

	"github.com/PattyWambere/KapeeFrontend/internal/devserver/store"
	"github.com/PattyWambere/KapeeFrontend/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Seed populates the store with an admin account and a small catalog so a
// fresh dev server is immediately usable. Existing records are left alone.
func Seed(ctx context.Context, st store.Store) error {
	if _, err := st.AccountByEmail(ctx, "admin@kapee.local"); err == store.ErrNotFound {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := &store.Account{
			ID:           uuid.New().String(),
			FirstName:    "Kapee",
			LastName:     "Admin",
			Email:        "admin@kapee.local",
			PasswordHash: hash,
			Role:         "admin",
		}
		if err := st.CreateAccount(ctx, admin); err != nil {
			return fmt.Errorf("failed to seed admin account: %w", err)
		}
	}

	existing, err := st.Categories(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	electronics := models.Category{
		ID:          uuid.New().String(),
		Name:        "Electronics",
		Description: "Phones, audio and accessories",
	}
	if err := st.CreateCategory(ctx, &electronics); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	products := []models.Product{
		{
			ID:         uuid.New().String(),
			Name:       "Wireless Headphones",
			Price:      89.99,
			CategoryID: electronics.ID,
			InStock:    true,
			Quantity:   25,
			Images:     []string{"/images/headphones.jpg"},
		},
		{
			ID:         uuid.New().String(),
			Name:       "Smart Watch",
			Price:      149.00,
			CategoryID: electronics.ID,
			InStock:    true,
			Quantity:   12,
			Images:     []string{"/images/watch.jpg"},
		},
	}
	for i := range products {
		if err := st.CreateProduct(ctx, &products[i]); err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
	}
	return nil
}
