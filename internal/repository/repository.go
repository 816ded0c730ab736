package repository

import (
	"context"

	"shop-online/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves products matching the filter, newest first, along with
	// the total count for pagination.
	GetAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error)

	// GetByID retrieves a single product by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetByIDsForUpdate retrieves the given product rows inside tx with row
	// locks held until the transaction ends. Missing IDs are simply absent
	// from the result.
	GetByIDsForUpdate(ctx context.Context, tx pgx.Tx, ids []int64) ([]model.Product, error)

	// Create inserts a new product and fills in its generated ID.
	Create(ctx context.Context, p *model.Product) error

	// Update rewrites a product's editable fields.
	Update(ctx context.Context, p *model.Product) error

	// Delete removes a product. Returns model.ErrProductNotFound when absent.
	Delete(ctx context.Context, id int64) error

	// DeleteMany removes several products and reports how many were deleted.
	DeleteMany(ctx context.Context, ids []int64) (int, error)

	// SetStock sets a product's stock counter to an absolute value.
	SetStock(ctx context.Context, id int64, stock int) error

	// AdjustPrices applies a percentage increase or decrease to the given
	// products and reports how many were updated.
	AdjustPrices(ctx context.Context, ids []int64, percentage float64, direction string) (int, error)

	// DecrementStock subtracts qty from a product's stock inside tx. It fails
	// if the decrement would drive the counter negative.
	DecrementStock(ctx context.Context, tx pgx.Tx, id int64, qty int) error
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, c *model.Category) error
}

// CartRepository defines the interface for persistent, user-keyed carts.
// Mutations go through Replace, which rewrites the owner's lines wholesale.
type CartRepository interface {
	// Get retrieves the user's cart lines as cart items.
	Get(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error)

	// Replace overwrites the user's cart with the given items.
	Replace(ctx context.Context, userID uuid.UUID, items []model.CartItem) error

	// Clear removes every line owned by the user. Clearing an empty cart is a
	// no-op.
	Clear(ctx context.Context, userID uuid.UUID) error

	// ClearTx removes every line owned by the user within the provided
	// transaction, so checkout can clear the cart atomically with the order.
	ClearTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order header within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order with its items. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// GetByUser retrieves a user's orders with items, newest first.
	GetByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// GetLastByUser retrieves the user's most recent order, or nil.
	GetLastByUser(ctx context.Context, userID uuid.UUID) (*model.Order, error)

	// Search retrieves orders matching the admin filter, newest first, along
	// with the total count for pagination.
	Search(ctx context.Context, filter model.OrderFilter) ([]model.Order, int, error)

	// UpdateStatus sets an order's status. Returns model.ErrOrderNotFound
	// when the order does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error

	// GetByEmail retrieves a user by email. Returns nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID retrieves a user by ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// UpdateProfile rewrites the user's shipping profile fields.
	UpdateProfile(ctx context.Context, id uuid.UUID, profile model.ProfileRequest) error

	// List retrieves users page by page along with the total count.
	List(ctx context.Context, page, pageSize int) ([]model.User, int, error)

	// Stats computes the aggregate shop figures for the admin dashboard.
	Stats(ctx context.Context) (model.ShopStats, error)
}
