package integration

import (
	"context"
	"testing"
	"time"

	"shop-online/internal/model"
	"shop-online/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCategory(t *testing.T, db *TestDB, name string) int64 {
	t.Helper()
	var id int64
	err := db.Pool.QueryRow(context.Background(),
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedUser(t *testing.T, db *TestDB, email string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := db.Pool.Exec(context.Background(),
		`INSERT INTO users (id, email, password_hash, full_name, address, phone_number, role, created_at)
		 VALUES ($1, $2, 'x', 'Nguyễn Văn An', '12 Lý Thường Kiệt, Hà Nội', '0912345678', 'customer', now())`,
		id, email)
	require.NoError(t, err)
	return id
}

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()
	logger := zerolog.Nop()
	repo := repository.NewProductRepository(db.Pool, logger)

	categoryID := seedCategory(t, db, "Áo nam")

	product := &model.Product{
		Name:         "Áo thun nam",
		CategoryID:   categoryID,
		Price:        150000,
		Description:  "Cotton 100%",
		ImageGallery: []string{},
		Stock:        5,
	}
	require.NoError(t, repo.Create(ctx, product))
	require.NotZero(t, product.ID)

	t.Run("GetByID", func(t *testing.T) {
		got, err := repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Áo thun nam", got.Name)
		assert.Equal(t, "Áo nam", got.CategoryName)
		assert.Equal(t, 5, got.Stock)
	})

	t.Run("GetByID absent returns nil", func(t *testing.T) {
		got, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("GetAll with search", func(t *testing.T) {
		products, total, err := repo.GetAll(ctx, model.ProductFilter{Search: "thun", Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, products, 1)
		assert.Equal(t, product.ID, products[0].ID)
	})

	t.Run("SetStock", func(t *testing.T) {
		require.NoError(t, repo.SetStock(ctx, product.ID, 9))
		got, err := repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 9, got.Stock)
	})

	t.Run("AdjustPrices", func(t *testing.T) {
		updated, err := repo.AdjustPrices(ctx, []int64{product.ID}, 10, model.PriceIncrease)
		require.NoError(t, err)
		assert.Equal(t, 1, updated)

		got, err := repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.InDelta(t, 165000, got.Price, 0.01)
	})

	t.Run("DecrementStock guards against negatives", func(t *testing.T) {
		tx, err := db.Pool.Begin(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		err = repo.DecrementStock(ctx, tx, product.ID, 100)
		require.Error(t, err)

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeInsufficientStock, domainErr.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, product.ID))
		assert.ErrorIs(t, repo.Delete(ctx, product.ID), model.ErrProductNotFound)
	})
}

func TestCartRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()
	repo := repository.NewCartRepository(db.Pool, zerolog.Nop())

	userID := seedUser(t, db, "an.nguyen@example.com")

	items := []model.CartItem{
		{ProductID: 1, Name: "Áo thun nam", Price: 150000, Quantity: 2},
		{ProductID: 2, Name: "Quần jean", Price: 450000, Quantity: 1},
	}
	require.NoError(t, repo.Replace(ctx, userID, items))

	got, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Quantity)

	// Replace rewrites the cart wholesale.
	require.NoError(t, repo.Replace(ctx, userID, items[:1]))
	got, err = repo.Get(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// Clear is idempotent.
	require.NoError(t, repo.Clear(ctx, userID))
	require.NoError(t, repo.Clear(ctx, userID))
	got, err = repo.Get(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()
	repo := repository.NewOrderRepository(db.Pool, zerolog.Nop())

	userID := seedUser(t, db, "an.nguyen@example.com")

	placeOrder := func(createdAt time.Time, status model.OrderStatus) *model.Order {
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		order := &model.Order{
			ID:           uuid.New(),
			UserID:       userID,
			CustomerName: "Nguyễn Văn An",
			Email:        "an.nguyen@example.com",
			Address:      "12 Lý Thường Kiệt, Hà Nội",
			PhoneNumber:  "0912345678",
			Status:       status,
			CreatedAt:    createdAt,
		}
		require.NoError(t, repo.CreateOrder(ctx, tx, order))
		require.NoError(t, repo.CreateOrderItems(ctx, tx, []model.OrderItem{
			{ID: uuid.New(), OrderID: order.ID, ProductID: 1, ProductName: "Áo thun nam", Price: 150000, Quantity: 2},
		}))
		require.NoError(t, tx.Commit(ctx))
		return order
	}

	older := placeOrder(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), model.StatusDelivered)
	newer := placeOrder(time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC), model.StatusPending)

	t.Run("GetByID loads items", func(t *testing.T) {
		got, err := repo.GetByID(ctx, older.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Len(t, got.Items, 1)
		assert.Equal(t, float64(300000), got.Total())
	})

	t.Run("GetByUser newest first", func(t *testing.T) {
		orders, err := repo.GetByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, newer.ID, orders[0].ID)
		assert.Equal(t, older.ID, orders[1].ID)
	})

	t.Run("GetLastByUser", func(t *testing.T) {
		last, err := repo.GetLastByUser(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.Equal(t, newer.ID, last.ID)
	})

	t.Run("Search by status", func(t *testing.T) {
		orders, total, err := repo.Search(ctx, model.OrderFilter{Status: model.StatusPending, Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, orders, 1)
		assert.Equal(t, newer.ID, orders[0].ID)
	})

	t.Run("Search by date range", func(t *testing.T) {
		from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		orders, total, err := repo.Search(ctx, model.OrderFilter{From: &from, To: &to, Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, orders, 1)
		assert.Equal(t, older.ID, orders[0].ID)
	})

	t.Run("Search by customer text", func(t *testing.T) {
		_, total, err := repo.Search(ctx, model.OrderFilter{Search: "an.nguyen", Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, newer.ID, model.StatusShipped))
		got, err := repo.GetByID(ctx, newer.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusShipped, got.Status)

		assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), model.StatusShipped), model.ErrOrderNotFound)
	})
}

func TestUserRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()
	repo := repository.NewUserRepository(db.Pool, zerolog.Nop())

	user := &model.User{
		Email:        "an.nguyen@example.com",
		PasswordHash: "$2a$10$hash",
		FullName:     "Nguyễn Văn An",
		Role:         model.RoleCustomer,
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotEqual(t, uuid.Nil, user.ID)

	got, err := repo.GetByEmail(ctx, "an.nguyen@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)

	missing, err := repo.GetByEmail(ctx, "khong.ton.tai@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.UpdateProfile(ctx, user.ID, model.ProfileRequest{
		FullName:    "Nguyễn Văn An",
		Address:     "45 Nguyễn Huệ, Đà Nẵng",
		PhoneNumber: "0987654321",
	}))
	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "45 Nguyễn Huệ, Đà Nẵng", got.Address)

	users, total, err := repo.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, users, 1)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalUsers)
	assert.Equal(t, 0, stats.TotalOrders)
}
