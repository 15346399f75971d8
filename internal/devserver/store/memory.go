package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/PattyWambere/KapeeFrontend/internal/models"

	"github.com/google/uuid"
)

// Memory is the in-memory store used by tests and the default dev setup.
type Memory struct {
	mu         sync.Mutex
	accounts   map[string]*Account
	sessions   map[string]*Session
	products   map[string]*models.Product
	categories map[string]*models.Category
	cartLines  map[string]*CartLine
	orders     map[string]*models.Order
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		accounts:   make(map[string]*Account),
		sessions:   make(map[string]*Session),
		products:   make(map[string]*models.Product),
		categories: make(map[string]*models.Category),
		cartLines:  make(map[string]*CartLine),
		orders:     make(map[string]*models.Order),
	}
}

func (m *Memory) Close() error { return nil }

func (m *Memory) CreateAccount(ctx context.Context, account *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.accounts {
		if a.Email == account.Email {
			return ErrConflict
		}
	}
	cp := *account
	m.accounts[account.ID] = &cp
	return nil
}

func (m *Memory) AccountByID(ctx context.Context, id string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *Memory) AccountByEmail(ctx context.Context, email string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) AccountByResetToken(ctx context.Context, token string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.accounts {
		if a.ResetToken != "" && a.ResetToken == token {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UpdateAccount(ctx context.Context, account *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[account.ID]; !ok {
		return ErrNotFound
	}
	cp := *account
	m.accounts[account.ID] = &cp
	return nil
}

func (m *Memory) CreateSession(ctx context.Context, session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *session
	m.sessions[session.Token] = &cp
	return nil
}

func (m *Memory) SessionByToken(ctx context.Context, token string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *Memory) DeleteSession(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *Memory) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for token, s := range m.sessions {
		if s.ExpiresAt.Before(now) {
			delete(m.sessions, token)
			n++
		}
	}
	return n, nil
}

func (m *Memory) CreateProduct(ctx context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[product.ID]; ok {
		return ErrConflict
	}
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *Memory) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *Memory) Products(ctx context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) UpdateProduct(ctx context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[product.ID]; !ok {
		return ErrNotFound
	}
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *Memory) DeleteProduct(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *Memory) CreateCategory(ctx context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[category.ID]; ok {
		return ErrConflict
	}
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *Memory) CategoryByID(ctx context.Context, id string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *Memory) Categories(ctx context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) UpdateCategory(ctx context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[category.ID]; !ok {
		return ErrNotFound
	}
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *Memory) DeleteCategory(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[id]; !ok {
		return ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *Memory) CartLines(ctx context.Context, accountID string) ([]CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]CartLine, 0)
	for _, l := range m.cartLines {
		if l.AccountID == accountID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) CartLineByID(ctx context.Context, id string) (*CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.cartLines[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *Memory) UpsertCartLine(ctx context.Context, accountID, productID string, quantity int) (*CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range m.cartLines {
		if l.AccountID == accountID && l.ProductID == productID {
			l.Quantity += quantity
			cp := *l
			return &cp, nil
		}
	}

	line := &CartLine{
		ID:        uuid.New().String(),
		AccountID: accountID,
		ProductID: productID,
		Quantity:  quantity,
	}
	m.cartLines[line.ID] = line
	cp := *line
	return &cp, nil
}

func (m *Memory) UpdateCartLineQuantity(ctx context.Context, id string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.cartLines[id]
	if !ok {
		return ErrNotFound
	}
	l.Quantity = quantity
	return nil
}

func (m *Memory) DeleteCartLine(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cartLines[id]; !ok {
		return ErrNotFound
	}
	delete(m.cartLines, id)
	return nil
}

func (m *Memory) ClearCart(ctx context.Context, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, l := range m.cartLines {
		if l.AccountID == accountID {
			delete(m.cartLines, id)
		}
	}
	return nil
}

func (m *Memory) CreateOrder(ctx context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.orders[order.ID]; ok {
		return ErrConflict
	}
	cp := *order
	cp.Items = append([]models.OrderItem(nil), order.Items...)
	m.orders[order.ID] = &cp
	return nil
}

func (m *Memory) OrderByID(ctx context.Context, id string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (m *Memory) OrdersByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Order, 0)
	for _, o := range m.orders {
		if o.CustomerID == customerID {
			cp := *o
			cp.Items = append([]models.OrderItem(nil), o.Items...)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) OrdersByStatus(ctx context.Context, status string) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Order, 0)
	for _, o := range m.orders {
		if o.Status == status {
			cp := *o
			cp.Items = append([]models.OrderItem(nil), o.Items...)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) UpdateOrderStatus(ctx context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

func (m *Memory) DeleteOrder(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.orders[id]; !ok {
		return ErrNotFound
	}
	delete(m.orders, id)
	return nil
}
