package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/PattyWambere/KapeeFrontend/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Postgres persists the dev server's state in PostgreSQL.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres connects to the database and creates missing tables.
func NewPostgres(databaseURL string) (*Postgres, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Postgres{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// newPostgresWithDB wraps an existing connection; used by tests.
func newPostgresWithDB(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Close() error {
	return s.db.Close()
}

func (s *Postgres) ensureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash BYTEA NOT NULL,
		role TEXT NOT NULL DEFAULT 'customer',
		avatar TEXT NOT NULL DEFAULT '',
		reset_token TEXT NOT NULL DEFAULT '',
		reset_expiry TIMESTAMPTZ NOT NULL DEFAULT 'epoch'
	);
	CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		expires_at TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price DOUBLE PRECISION NOT NULL,
		category_id TEXT NOT NULL DEFAULT '',
		in_stock BOOLEAN NOT NULL DEFAULT TRUE,
		quantity INTEGER NOT NULL DEFAULT 0,
		images TEXT[] NOT NULL DEFAULT '{}',
		rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		reviews INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS cart_lines (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity >= 1),
		UNIQUE (account_id, product_id)
	);
	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL,
		total_amount DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS order_items (
		order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price DOUBLE PRECISION NOT NULL
	);`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

func (s *Postgres) CreateAccount(ctx context.Context, account *Account) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO accounts (id, first_name, last_name, email, password_hash, role, avatar, reset_token, reset_expiry)
		VALUES (:id, :first_name, :last_name, :email, :password_hash, :role, :avatar, :reset_token, :reset_expiry)`,
		account)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		return ErrConflict
	}
	return err
}

func (s *Postgres) AccountByID(ctx context.Context, id string) (*Account, error) {
	var account Account
	err := s.db.GetContext(ctx, &account, "SELECT * FROM accounts WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Postgres) AccountByEmail(ctx context.Context, email string) (*Account, error) {
	var account Account
	err := s.db.GetContext(ctx, &account, "SELECT * FROM accounts WHERE email = $1", email)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Postgres) AccountByResetToken(ctx context.Context, token string) (*Account, error) {
	var account Account
	err := s.db.GetContext(ctx, &account,
		"SELECT * FROM accounts WHERE reset_token = $1 AND reset_token <> ''", token)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Postgres) UpdateAccount(ctx context.Context, account *Account) error {
	res, err := s.db.NamedExecContext(ctx, `
		UPDATE accounts SET first_name = :first_name, last_name = :last_name, email = :email,
			password_hash = :password_hash, role = :role, avatar = :avatar,
			reset_token = :reset_token, reset_expiry = :reset_expiry
		WHERE id = :id`, account)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Postgres) CreateSession(ctx context.Context, session *Session) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (token, account_id, expires_at) VALUES ($1, $2, $3)",
		session.Token, session.AccountID, session.ExpiresAt)
	return err
}

func (s *Postgres) SessionByToken(ctx context.Context, token string) (*Session, error) {
	var session Session
	err := s.db.GetContext(ctx, &session, "SELECT * FROM sessions WHERE token = $1", token)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Postgres) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

func (s *Postgres) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < $1", now)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// productRow carries the database shape of a product; images are a
// Postgres text array.
type productRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Price       float64        `db:"price"`
	CategoryID  string         `db:"category_id"`
	InStock     bool           `db:"in_stock"`
	Quantity    int            `db:"quantity"`
	Images      pq.StringArray `db:"images"`
	Rating      float64        `db:"rating"`
	Reviews     int            `db:"reviews"`
}

func (r *productRow) product() models.Product {
	return models.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		CategoryID:  r.CategoryID,
		InStock:     r.InStock,
		Quantity:    r.Quantity,
		Images:      []string(r.Images),
		Rating:      r.Rating,
		Reviews:     r.Reviews,
	}
}

func (s *Postgres) CreateProduct(ctx context.Context, product *models.Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, price, category_id, in_stock, quantity, images, rating, reviews)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		product.ID, product.Name, product.Description, product.Price, product.CategoryID,
		product.InStock, product.Quantity, pq.Array(product.Images), product.Rating, product.Reviews)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		return ErrConflict
	}
	return err
}

func (s *Postgres) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	var row productRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p := row.product()
	return &p, nil
}

func (s *Postgres) Products(ctx context.Context) ([]models.Product, error) {
	var rows []productRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM products ORDER BY id"); err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].product())
	}
	return out, nil
}

func (s *Postgres) UpdateProduct(ctx context.Context, product *models.Product) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE products SET name = $2, description = $3, price = $4, category_id = $5,
			in_stock = $6, quantity = $7, images = $8, rating = $9, reviews = $10
		WHERE id = $1`,
		product.ID, product.Name, product.Description, product.Price, product.CategoryID,
		product.InStock, product.Quantity, pq.Array(product.Images), product.Rating, product.Reviews)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Postgres) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type categoryRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
}

func (s *Postgres) CreateCategory(ctx context.Context, category *models.Category) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (id, name, description) VALUES ($1, $2, $3)",
		category.ID, category.Name, category.Description)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		return ErrConflict
	}
	return err
}

func (s *Postgres) CategoryByID(ctx context.Context, id string) (*models.Category, error) {
	var row categoryRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM categories WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &models.Category{ID: row.ID, Name: row.Name, Description: row.Description}, nil
}

func (s *Postgres) Categories(ctx context.Context) ([]models.Category, error) {
	var rows []categoryRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM categories ORDER BY id"); err != nil {
		return nil, err
	}
	out := make([]models.Category, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Category{ID: r.ID, Name: r.Name, Description: r.Description})
	}
	return out, nil
}

func (s *Postgres) UpdateCategory(ctx context.Context, category *models.Category) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE categories SET name = $2, description = $3 WHERE id = $1",
		category.ID, category.Name, category.Description)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Postgres) DeleteCategory(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Postgres) CartLines(ctx context.Context, accountID string) ([]CartLine, error) {
	var lines []CartLine
	err := s.db.SelectContext(ctx, &lines,
		"SELECT * FROM cart_lines WHERE account_id = $1 ORDER BY id", accountID)
	return lines, err
}

func (s *Postgres) CartLineByID(ctx context.Context, id string) (*CartLine, error) {
	var line CartLine
	err := s.db.GetContext(ctx, &line, "SELECT * FROM cart_lines WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (s *Postgres) UpsertCartLine(ctx context.Context, accountID, productID string, quantity int) (*CartLine, error) {
	var line CartLine
	err := s.db.GetContext(ctx, &line, `
		INSERT INTO cart_lines (id, account_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id, product_id)
		DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
		RETURNING *`,
		newID(), accountID, productID, quantity)
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (s *Postgres) UpdateCartLineQuantity(ctx context.Context, id string, quantity int) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE cart_lines SET quantity = $2 WHERE id = $1", id, quantity)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Postgres) DeleteCartLine(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM cart_lines WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Postgres) ClearCart(ctx context.Context, accountID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM cart_lines WHERE account_id = $1", accountID)
	return err
}

type orderRow struct {
	ID          string    `db:"id"`
	CustomerID  string    `db:"customer_id"`
	TotalAmount float64   `db:"total_amount"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type orderItemRow struct {
	OrderID   string  `db:"order_id"`
	ProductID string  `db:"product_id"`
	Quantity  int     `db:"quantity"`
	Price     float64 `db:"price"`
}

func (s *Postgres) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		order.ID, order.CustomerID, order.TotalAmount, order.Status, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)`,
			order.ID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Postgres) OrderByID(ctx context.Context, id string) (*models.Order, error) {
	var row orderRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	order := models.Order{
		ID:          row.ID,
		CustomerID:  row.CustomerID,
		TotalAmount: row.TotalAmount,
		Status:      row.Status,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	var items []orderItemRow
	if err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM order_items WHERE order_id = $1", id); err != nil {
		return nil, err
	}
	for _, it := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return &order, nil
}

func (s *Postgres) ordersWhere(ctx context.Context, query string, args ...interface{}) ([]models.Order, error) {
	var rows []orderRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		order, err := s.OrderByID(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *order)
	}
	return out, nil
}

func (s *Postgres) OrdersByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	return s.ordersWhere(ctx,
		"SELECT * FROM orders WHERE customer_id = $1 ORDER BY created_at DESC", customerID)
}

func (s *Postgres) OrdersByStatus(ctx context.Context, status string) ([]models.Order, error) {
	return s.ordersWhere(ctx,
		"SELECT * FROM orders WHERE status = $1 ORDER BY id", status)
}

func (s *Postgres) UpdateOrderStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1", id, status)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Postgres) DeleteOrder(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
