package service

import (
	"context"
	"fmt"

	"shop-online/internal/model"
	"shop-online/internal/repository"

	"github.com/rs/zerolog"
)

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

// GetAll retrieves all categories.
func (s *categoryService) GetAll(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get categories")
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

// Create adds a new category.
func (s *categoryService) Create(ctx context.Context, c *model.Category) error {
	if c == nil || c.Name == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Tên danh mục không được để trống")
	}

	if err := s.categoryRepo.Create(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("name", c.Name).Msg("failed to create category")
		return fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info().Int64("category_id", c.ID).Str("name", c.Name).Msg("category created")
	return nil
}
