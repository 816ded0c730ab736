package handler

import (
	"context"

	"shop-online/internal/model"
	"shop-online/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCartService is a mock implementation of service.CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Get(ctx context.Context, owner model.CartOwner) ([]model.CartItem, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartItem), args.Error(1)
}

func (m *MockCartService) Add(ctx context.Context, owner model.CartOwner, productID int64, qty int) error {
	args := m.Called(ctx, owner, productID, qty)
	return args.Error(0)
}

func (m *MockCartService) Increase(ctx context.Context, owner model.CartOwner, productID int64) error {
	args := m.Called(ctx, owner, productID)
	return args.Error(0)
}

func (m *MockCartService) Decrease(ctx context.Context, owner model.CartOwner, productID int64) error {
	args := m.Called(ctx, owner, productID)
	return args.Error(0)
}

func (m *MockCartService) SetQuantity(ctx context.Context, owner model.CartOwner, productID int64, qty int) error {
	args := m.Called(ctx, owner, productID, qty)
	return args.Error(0)
}

func (m *MockCartService) Remove(ctx context.Context, owner model.CartOwner, productID int64) error {
	args := m.Called(ctx, owner, productID)
	return args.Error(0)
}

func (m *MockCartService) Clear(ctx context.Context, owner model.CartOwner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockCartService) Merge(ctx context.Context, sessionToken string, userID uuid.UUID) error {
	args := m.Called(ctx, sessionToken, userID)
	return args.Error(0)
}

// MockCheckoutService is a mock implementation of service.CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) PlaceOrder(ctx context.Context, user *model.User, shipping model.ShippingInfo) (*model.CheckoutResponse, error) {
	args := m.Called(ctx, user, shipping)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutResponse), args.Error(1)
}

func (m *MockCheckoutService) QuickCheckout(ctx context.Context, user *model.User) (*model.CheckoutResponse, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutResponse), args.Error(1)
}

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) GetByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) Search(ctx context.Context, filter model.OrderFilter) ([]model.Order, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.Order), args.Int(1), args.Error(2)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LoginResponse), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id uuid.UUID, profile model.ProfileRequest) error {
	args := m.Called(ctx, id, profile)
	return args.Error(0)
}

func (m *MockUserService) List(ctx context.Context, page, pageSize int) (*model.UserListResponse, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserListResponse), args.Error(1)
}

// verify mocks satisfy the service interfaces
var (
	_ service.CartService     = (*MockCartService)(nil)
	_ service.CheckoutService = (*MockCheckoutService)(nil)
	_ service.OrderService    = (*MockOrderService)(nil)
	_ service.UserService     = (*MockUserService)(nil)
)
