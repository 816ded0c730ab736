package service

import (
	"context"
	"io"

	"shop-online/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// GetAll retrieves products matching the filter with the total count.
	GetAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error)

	// GetByID retrieves a single product. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create adds a new product to the catalogue.
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// Update rewrites a product's editable fields.
	Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id int64) error

	// BulkDelete removes several products and reports how many were deleted.
	BulkDelete(ctx context.Context, ids []int64) (int, error)

	// SetStock sets a product's stock counter to an absolute value.
	SetStock(ctx context.Context, id int64, stock int) (*model.Product, error)

	// BulkAdjustPrice applies a percentage change to the given products.
	BulkAdjustPrice(ctx context.Context, ids []int64, percentage float64, direction string) (int, error)

	// AddImages stores uploaded images and appends them to the product's
	// gallery; the first image of an empty gallery becomes the cover.
	AddImages(ctx context.Context, id int64, uploads []Upload) (*model.Product, error)
}

// Upload is one uploaded file handed to the product service.
type Upload struct {
	Filename string
	Reader   io.Reader
}

// CategoryService defines operations for category management.
type CategoryService interface {
	GetAll(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, c *model.Category) error
}

// CartService defines operations on a shopping cart. The owner resolves to
// either the user's persistent cart or an anonymous session cart.
type CartService interface {
	// Get retrieves the owner's cart.
	Get(ctx context.Context, owner model.CartOwner) ([]model.CartItem, error)

	// Add puts qty units of a product into the cart, capping the first add at
	// the available stock and rejecting increments past it.
	Add(ctx context.Context, owner model.CartOwner, productID int64, qty int) error

	// Increase adds one unit to an existing line.
	Increase(ctx context.Context, owner model.CartOwner, productID int64) error

	// Decrease removes one unit from an existing line, deleting it at zero.
	Decrease(ctx context.Context, owner model.CartOwner, productID int64) error

	// SetQuantity sets a line's quantity; zero or less deletes the line.
	SetQuantity(ctx context.Context, owner model.CartOwner, productID int64, qty int) error

	// Remove deletes a line.
	Remove(ctx context.Context, owner model.CartOwner, productID int64) error

	// Clear empties the cart. Clearing an already-empty cart is a no-op.
	Clear(ctx context.Context, owner model.CartOwner) error

	// Merge folds a guest session cart into the user's persistent cart and
	// drops the session entry.
	Merge(ctx context.Context, sessionToken string, userID uuid.UUID) error
}

// CheckoutService turns a cart into an order.
type CheckoutService interface {
	// PlaceOrder validates stock for every cart line and, if all pass,
	// creates the order, decrements stock and clears the cart in one
	// transaction. Blank shipping fields fall back to the user's profile and
	// then to their most recent order.
	PlaceOrder(ctx context.Context, user *model.User, shipping model.ShippingInfo) (*model.CheckoutResponse, error)

	// QuickCheckout places an order using only inferred shipping details.
	QuickCheckout(ctx context.Context, user *model.User) (*model.CheckoutResponse, error)
}

// OrderService defines read and admin operations on placed orders.
type OrderService interface {
	// GetByID retrieves an order with its items. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// GetByUser retrieves a user's orders, newest first.
	GetByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// Search retrieves orders matching the admin filter with the total count.
	Search(ctx context.Context, filter model.OrderFilter) ([]model.Order, int, error)

	// UpdateStatus sets an order's status; values outside the five allowed
	// states are rejected.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error
}

// UserService defines account and profile operations.
type UserService interface {
	// Register creates an account with a hashed password.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)

	// Login verifies credentials and returns a signed token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)

	// GetByID retrieves a user. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// UpdateProfile rewrites the user's shipping profile fields.
	UpdateProfile(ctx context.Context, id uuid.UUID, profile model.ProfileRequest) error

	// List retrieves users page by page along with shop statistics.
	List(ctx context.Context, page, pageSize int) (*model.UserListResponse, error)
}
