package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shop-online/internal/model"
	"shop-online/internal/repository"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// userService implements UserService.
type userService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) UserService {
	return &userService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("service", "user").Logger(),
	}
}

// Register creates an account with a hashed password.
func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if req == nil || req.Email == "" || req.Password == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Email và mật khẩu không được để trống")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to check email")
		return nil, fmt.Errorf("failed to register: %w", err)
	}
	if existing != nil {
		return nil, model.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         model.RoleCustomer,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to create user")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return user, nil
}

// Login verifies credentials and returns a signed token.
func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if req == nil || req.Email == "" || req.Password == "" {
		return nil, model.ErrInvalidCredentials
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load user")
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	if user == nil {
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn().Str("email", email).Msg("invalid password")
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.createToken(user)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to sign token")
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	return &model.LoginResponse{
		Token:  token,
		UserID: user.ID,
		Role:   user.Role,
	}, nil
}

// createToken signs an HS256 token carrying the user's identity and role.
func (s *userService) createToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetByID retrieves a user.
func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to get user")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfile rewrites the user's shipping profile fields.
func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, profile model.ProfileRequest) error {
	if err := s.userRepo.UpdateProfile(ctx, id, profile); err != nil {
		if err == model.ErrUserNotFound {
			return err
		}
		s.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to update profile")
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// List retrieves users page by page along with shop statistics.
func (s *userService) List(ctx context.Context, page, pageSize int) (*model.UserListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	users, total, err := s.userRepo.List(ctx, page, pageSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}

	stats, err := s.userRepo.Stats(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to compute stats")
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	return &model.UserListResponse{
		Users:      users,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		Stats:      stats,
	}, nil
}
