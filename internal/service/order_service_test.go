package service

import (
	"context"
	"testing"
	"time"

	"shop-online/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderService_UpdateStatus_ValidTransition(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	svc := NewOrderService(orderRepo, zerolog.Nop())
	ctx := context.Background()
	orderID := uuid.New()

	orderRepo.On("UpdateStatus", ctx, orderID, model.StatusShipped).Return(nil)

	err := svc.UpdateStatus(ctx, orderID, model.StatusShipped)
	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	svc := NewOrderService(orderRepo, zerolog.Nop())

	err := svc.UpdateStatus(context.Background(), uuid.New(), model.OrderStatus("Teleported"))
	assert.ErrorIs(t, err, model.ErrInvalidStatus)
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_UpdateStatus_NotFound(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	svc := NewOrderService(orderRepo, zerolog.Nop())
	ctx := context.Background()
	orderID := uuid.New()

	orderRepo.On("UpdateStatus", ctx, orderID, model.StatusCancelled).Return(model.ErrOrderNotFound)

	err := svc.UpdateStatus(ctx, orderID, model.StatusCancelled)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestOrderService_Search_RejectsUnknownStatusFilter(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	svc := NewOrderService(orderRepo, zerolog.Nop())

	_, _, err := svc.Search(context.Background(), model.OrderFilter{Status: "Lost"})
	assert.ErrorIs(t, err, model.ErrInvalidStatus)
}

func TestOrderService_Search_PassesFilterThrough(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	svc := NewOrderService(orderRepo, zerolog.Nop())
	ctx := context.Background()

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	filter := model.OrderFilter{Status: model.StatusPending, Search: "an.nguyen", From: &from, Page: 2, PageSize: 10}

	orderRepo.On("Search", ctx, filter).Return([]model.Order{{ID: uuid.New()}}, 11, nil)

	orders, total, err := svc.Search(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, 11, total)
}

func TestOrderService_GetByUser_NilBecomesEmpty(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	svc := NewOrderService(orderRepo, zerolog.Nop())
	ctx := context.Background()
	userID := uuid.New()

	orderRepo.On("GetByUser", ctx, userID).Return(nil, nil)

	orders, err := svc.GetByUser(ctx, userID)
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}
