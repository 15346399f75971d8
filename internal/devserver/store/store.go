// Package store persists the development API server's state. The memory
// implementation backs tests and the default dev setup; the Postgres
// implementation backs persistent dev environments.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/PattyWambere/KapeeFrontend/internal/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("store: not found")
	ErrConflict = errors.New("store: already exists")
)

func newID() string {
	return uuid.New().String()
}

// Account is a server-side user record. PasswordHash is a bcrypt hash.
type Account struct {
	ID           string    `db:"id"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Email        string    `db:"email"`
	PasswordHash []byte    `db:"password_hash"`
	Role         string    `db:"role"`
	Avatar       string    `db:"avatar"`
	ResetToken   string    `db:"reset_token"`
	ResetExpiry  time.Time `db:"reset_expiry"`
}

// User converts the account to its public shape.
func (a *Account) User() *models.User {
	return &models.User{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Role:      a.Role,
		Avatar:    a.Avatar,
	}
}

// Session is an issued bearer token.
type Session struct {
	Token     string    `db:"token"`
	AccountID string    `db:"account_id"`
	ExpiresAt time.Time `db:"expires_at"`
}

// CartLine is one row of a user's server-side cart. The line id is
// distinct from the product id.
type CartLine struct {
	ID        string `db:"id"`
	AccountID string `db:"account_id"`
	ProductID string `db:"product_id"`
	Quantity  int    `db:"quantity"`
}

// Store is the persistence contract of the development API server.
type Store interface {
	CreateAccount(ctx context.Context, account *Account) error
	AccountByID(ctx context.Context, id string) (*Account, error)
	AccountByEmail(ctx context.Context, email string) (*Account, error)
	AccountByResetToken(ctx context.Context, token string) (*Account, error)
	UpdateAccount(ctx context.Context, account *Account) error

	CreateSession(ctx context.Context, session *Session) error
	SessionByToken(ctx context.Context, token string) (*Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)

	CreateProduct(ctx context.Context, product *models.Product) error
	ProductByID(ctx context.Context, id string) (*models.Product, error)
	Products(ctx context.Context) ([]models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, category *models.Category) error
	CategoryByID(ctx context.Context, id string) (*models.Category, error)
	Categories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id string) error

	CartLines(ctx context.Context, accountID string) ([]CartLine, error)
	CartLineByID(ctx context.Context, id string) (*CartLine, error)
	UpsertCartLine(ctx context.Context, accountID, productID string, quantity int) (*CartLine, error)
	UpdateCartLineQuantity(ctx context.Context, id string, quantity int) error
	DeleteCartLine(ctx context.Context, id string) error
	ClearCart(ctx context.Context, accountID string) error

	CreateOrder(ctx context.Context, order *models.Order) error
	OrderByID(ctx context.Context, id string) (*models.Order, error)
	OrdersByCustomer(ctx context.Context, customerID string) ([]models.Order, error)
	OrdersByStatus(ctx context.Context, status string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error
	DeleteOrder(ctx context.Context, id string) error

	Close() error
}
