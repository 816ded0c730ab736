package service

import (
	"context"
	"fmt"
	"time"

	"shop-online/internal/model"
	"shop-online/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService. The stock check and the stock
// decrement run against the same row-locked snapshot, so two simultaneous
// checkouts for the last unit serialize and exactly one succeeds.
type checkoutService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	logger      zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		logger:      logger.With().Str("service", "checkout").Logger(),
	}
}

// QuickCheckout places an order using only inferred shipping details.
func (s *checkoutService) QuickCheckout(ctx context.Context, user *model.User) (*model.CheckoutResponse, error) {
	return s.PlaceOrder(ctx, user, model.ShippingInfo{})
}

// PlaceOrder validates every cart line against live stock and, if all pass,
// persists the order, decrements stock and clears the cart atomically.
func (s *checkoutService) PlaceOrder(ctx context.Context, user *model.User, shipping model.ShippingInfo) (*model.CheckoutResponse, error) {
	shipping, err := s.resolveShipping(ctx, user, shipping)
	if err != nil {
		return nil, err
	}

	items, err := s.cartRepo.Get(ctx, user.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(items) == 0 {
		return nil, model.ErrEmptyCart
	}

	productIDs := make([]int64, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}

	// Start transaction
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	// Re-fetch authoritative product rows with row locks held until commit.
	products, err := s.productRepo.GetByIDsForUpdate(ctx, tx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to lock products")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// Collect every failing line rather than stopping at the first, so the
	// user sees the complete list of problems in one round trip.
	var problems []model.StockProblem
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			problems = append(problems, model.StockProblem{
				ProductID:   item.ProductID,
				ProductName: item.Name,
				Requested:   item.Quantity,
				Gone:        true,
			})
			continue
		}
		if product.Stock < item.Quantity {
			problems = append(problems, model.StockProblem{
				ProductID:   item.ProductID,
				ProductName: item.Name,
				Available:   product.Stock,
				Requested:   item.Quantity,
			})
		}
	}

	if len(problems) > 0 {
		s.logger.Warn().
			Str("user_id", user.ID.String()).
			Int("failed_lines", len(problems)).
			Msg("checkout failed stock validation")
		err = &model.CheckoutError{Problems: problems}
		return nil, err
	}

	// Create order header + snapshot items from the cart lines.
	order := &model.Order{
		ID:           uuid.New(),
		UserID:       user.ID,
		CustomerName: shipping.CustomerName,
		Email:        shipping.Email,
		Address:      shipping.Address,
		PhoneNumber:  shipping.PhoneNumber,
		Status:       model.StatusPending,
		CreatedAt:    time.Now(),
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	orderItems := make([]model.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = model.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Price:       item.Price,
			ImageURL:    item.ImageURL,
			Quantity:    item.Quantity,
		}
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(orderItems)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Deduct stock under the locks taken above.
	for _, item := range items {
		if err = s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			s.logger.Error().
				Err(err).
				Int64("product_id", item.ProductID).
				Msg("failed to decrement stock")
			return nil, fmt.Errorf("failed to place order: %w", err)
		}
	}

	// Clear the cart inside the same transaction so a crash can never leave
	// a stale cart pointing at a fulfilled order.
	if err = s.cartRepo.ClearTx(ctx, tx, user.ID); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to clear cart")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", user.ID.String()).
		Int("item_count", len(orderItems)).
		Msg("order placed")

	return &model.CheckoutResponse{
		OrderID: order.ID,
		Message: "Đặt hàng thành công! Cảm ơn bạn đã mua sắm.",
	}, nil
}

// resolveShipping fills blank fields from the user's profile, then from their
// most recent order, and fails if the result is still incomplete.
func (s *checkoutService) resolveShipping(ctx context.Context, user *model.User, shipping model.ShippingInfo) (model.ShippingInfo, error) {
	if shipping.CustomerName == "" {
		shipping.CustomerName = user.DisplayName()
	}
	if shipping.Email == "" {
		shipping.Email = user.Email
	}
	if shipping.Address == "" {
		shipping.Address = user.Address
	}
	if shipping.PhoneNumber == "" {
		shipping.PhoneNumber = user.PhoneNumber
	}

	if !shipping.Complete() {
		lastOrder, err := s.orderRepo.GetLastByUser(ctx, user.ID)
		if err != nil {
			s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to load last order")
			return shipping, fmt.Errorf("failed to resolve shipping info: %w", err)
		}
		if lastOrder != nil {
			if shipping.CustomerName == "" {
				shipping.CustomerName = lastOrder.CustomerName
			}
			if shipping.Email == "" {
				shipping.Email = lastOrder.Email
			}
			if shipping.Address == "" {
				shipping.Address = lastOrder.Address
			}
			if shipping.PhoneNumber == "" {
				shipping.PhoneNumber = lastOrder.PhoneNumber
			}
		}
	}

	if !shipping.Complete() {
		return shipping, model.ErrMissingShipping
	}

	return shipping, nil
}
