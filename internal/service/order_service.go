package service

import (
	"context"
	"fmt"

	"shop-online/internal/model"
	"shop-online/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository, logger zerolog.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// GetByID retrieves an order with its items.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// GetByUser retrieves a user's orders, newest first.
func (s *orderService) GetByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orderRepo.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get user orders")
		return nil, fmt.Errorf("failed to get user orders: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// Search retrieves orders matching the admin filter.
func (s *orderService) Search(ctx context.Context, filter model.OrderFilter) ([]model.Order, int, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, model.ErrInvalidStatus
	}

	orders, total, err := s.orderRepo.Search(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to search orders")
		return nil, 0, fmt.Errorf("failed to search orders: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, total, nil
}

// UpdateStatus sets an order's status after validating it against the closed
// set of allowed values.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	if !status.Valid() {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("status", string(status)).
			Msg("rejected unknown order status")
		return model.ErrInvalidStatus
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		if err == model.ErrOrderNotFound {
			return err
		}
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update status")
		return fmt.Errorf("failed to update status: %w", err)
	}

	return nil
}
