package service

import (
	"context"
	"testing"
	"time"

	"shop-online/internal/model"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func userFixture(t *testing.T) (*MockUserRepository, UserService) {
	t.Helper()
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, testSecret, time.Hour, zerolog.Nop())
	return userRepo, svc
}

func TestUserService_Register_Success(t *testing.T) {
	userRepo, svc := userFixture(t)
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "an.nguyen@example.com").Return(nil, nil)
	userRepo.On("Create", ctx, mock.AnythingOfType("*model.User")).Return(nil)

	user, err := svc.Register(ctx, &model.RegisterRequest{
		Email:    "  An.Nguyen@Example.com ",
		Password: "matkhau123",
		FullName: "Nguyễn Văn An",
	})
	require.NoError(t, err)

	assert.Equal(t, "an.nguyen@example.com", user.Email)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.NotEqual(t, uuid.Nil, user.ID)
	// The stored hash verifies against the original password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("matkhau123")))
}

func TestUserService_Register_EmailTaken(t *testing.T) {
	userRepo, svc := userFixture(t)
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "an.nguyen@example.com").Return(&model.User{ID: uuid.New()}, nil)

	_, err := svc.Register(ctx, &model.RegisterRequest{
		Email:    "an.nguyen@example.com",
		Password: "matkhau123",
	})
	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestUserService_Register_MissingFields(t *testing.T) {
	_, svc := userFixture(t)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{Email: "a@b.vn"})
	require.Error(t, err)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeMissingField, domainErr.Code)
}

func TestUserService_Login_Success(t *testing.T) {
	userRepo, svc := userFixture(t)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("matkhau123"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &model.User{
		ID:           uuid.New(),
		Email:        "an.nguyen@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleCustomer,
	}
	userRepo.On("GetByEmail", ctx, "an.nguyen@example.com").Return(stored, nil)

	resp, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "AN.NGUYEN@example.com",
		Password: "matkhau123",
	})
	require.NoError(t, err)
	assert.Equal(t, stored.ID, resp.UserID)
	assert.Equal(t, model.RoleCustomer, resp.Role)

	// The token must carry the identity claims and verify with the secret.
	token, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, stored.ID.String(), claims["sub"])
	assert.Equal(t, stored.Email, claims["email"])
	assert.Equal(t, model.RoleCustomer, claims["role"])
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	userRepo, svc := userFixture(t)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("matkhau123"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo.On("GetByEmail", ctx, "an.nguyen@example.com").Return(&model.User{
		ID:           uuid.New(),
		Email:        "an.nguyen@example.com",
		PasswordHash: string(hash),
	}, nil)

	_, err = svc.Login(ctx, &model.LoginRequest{
		Email:    "an.nguyen@example.com",
		Password: "saimatkhau",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	userRepo, svc := userFixture(t)
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "khong.ton.tai@example.com").Return(nil, nil)

	_, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "khong.ton.tai@example.com",
		Password: "matkhau123",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestUserService_List_IncludesStats(t *testing.T) {
	userRepo, svc := userFixture(t)
	ctx := context.Background()

	userRepo.On("List", ctx, 1, 20).Return([]model.User{
		{ID: uuid.New(), Email: "an.nguyen@example.com"},
	}, 1, nil)
	userRepo.On("Stats", ctx).Return(model.ShopStats{
		TotalUsers:   1,
		TotalOrders:  4,
		TotalRevenue: 1200000,
	}, nil)

	resp, err := svc.List(ctx, 1, 20)
	require.NoError(t, err)
	assert.Len(t, resp.Users, 1)
	assert.Equal(t, 4, resp.Stats.TotalOrders)
	assert.Equal(t, float64(1200000), resp.Stats.TotalRevenue)
}
