package models

import "time"

// User represents an account as returned by the remote API.
type User struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
}

// User roles
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Product represents a catalog product. Owned by the server; the client
// reads it and, on the admin surface, submits full replacements.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	CategoryID  string   `json:"categoryId"`
	InStock     bool     `json:"inStock"`
	Quantity    int      `json:"quantity"`
	Images      []string `json:"images"`
	Rating      float64  `json:"rating,omitempty"`
	Reviews     int      `json:"reviews,omitempty"`
}

// Category represents a catalog category.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CartItem is one cart line. In guest mode ID equals the product id; in
// authenticated mode ID is the server-assigned cart-item id and ProductID
// references the product. Name, Price and Images are a denormalized display
// snapshot of the product.
type CartItem struct {
	ID        string   `json:"id"`
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Images    []string `json:"images,omitempty"`
	Quantity  int      `json:"quantity"`
}

// OrderItem is one line of a placed order, priced at creation time.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order represents a placed order. ID is the client-facing identifier,
// distinct from any internal storage id. TotalAmount is computed by the
// server at creation time and is never recomputed on the client.
type Order struct {
	ID          string      `json:"id"`
	CustomerID  string      `json:"customerId"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses lists every valid status, in lifecycle order. The admin
// surface may set any of them directly.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ValidOrderStatus reports whether s is one of the four known statuses.
func ValidOrderStatus(s string) bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}
