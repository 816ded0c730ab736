package model

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line of a shopping cart with the product details captured at
// add time.
type CartItem struct {
	ProductID int64   `json:"productId" db:"product_id"`
	Name      string  `json:"name" db:"product_name"`
	Price     float64 `json:"price" db:"price"`
	ImageURL  string  `json:"imageUrl" db:"image_url"`
	Quantity  int     `json:"quantity" db:"quantity"`
}

// Total returns the line total.
func (c CartItem) Total() float64 {
	return c.Price * float64(c.Quantity)
}

// CartLine is the persistent form of a cart item, keyed by the owning user.
type CartLine struct {
	ID        int64     `json:"-" db:"id"`
	UserID    uuid.UUID `json:"-" db:"user_id"`
	ProductID int64     `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"product_name"`
	Price     float64   `json:"price" db:"price"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}

// CartOwner identifies who a cart belongs to: an authenticated user, or an
// anonymous visitor holding a session token.
type CartOwner struct {
	UserID       uuid.UUID
	SessionToken string
}

// Authenticated reports whether the owner is a signed-in user.
func (o CartOwner) Authenticated() bool {
	return o.UserID != uuid.Nil
}

// CartTotal sums the line totals of a cart.
func CartTotal(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Total()
	}
	return total
}

// AddToCartRequest is the payload for adding a product to the cart.
type AddToCartRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// UpdateQuantityRequest is the payload for setting a cart line's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse is the payload returned for cart reads and mutations.
type CartResponse struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}
