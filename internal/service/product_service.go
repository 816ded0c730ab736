package service

import (
	"context"
	"fmt"

	"shop-online/internal/imagestore"
	"shop-online/internal/model"
	"shop-online/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	images      imagestore.Store
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, images imagestore.Store, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		images:      images,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// GetAll retrieves products matching the filter.
func (s *productService) GetAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error) {
	products, total, err := s.productRepo.GetAll(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get products")
		return nil, 0, fmt.Errorf("failed to get products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, total, nil
}

// GetByID retrieves a single product.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func validateProductRequest(req *model.ProductRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "Thiếu dữ liệu sản phẩm")
	}
	if req.Name == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Tên sản phẩm không được để trống")
	}
	if req.CategoryID <= 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "Danh mục không hợp lệ")
	}
	if req.Price < 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "Giá sản phẩm không hợp lệ")
	}
	if req.Stock < 0 {
		return model.ErrInvalidQuantity
	}
	return nil
}

// Create adds a new product to the catalogue.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:         req.Name,
		CategoryID:   req.CategoryID,
		Price:        req.Price,
		OldPrice:     req.OldPrice,
		Description:  req.Description,
		ImageGallery: []string{},
		Stock:        req.Stock,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Int64("product_id", product.ID).Str("name", product.Name).Msg("product created")
	return product, nil
}

// Update rewrites a product's editable fields, preserving its images.
func (s *productService) Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	product.Name = req.Name
	product.CategoryID = req.CategoryID
	product.Price = req.Price
	product.OldPrice = req.OldPrice
	product.Description = req.Description
	product.Stock = req.Stock

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, err
	}

	return product, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if err == model.ErrProductNotFound {
			return err
		}
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return err
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

// BulkDelete removes several products.
func (s *productService) BulkDelete(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, model.NewDomainError(model.ErrCodeMissingField, "Chưa chọn sản phẩm nào")
	}

	deleted, err := s.productRepo.DeleteMany(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to bulk delete products")
		return 0, err
	}

	s.logger.Info().Int("deleted", deleted).Msg("products deleted")
	return deleted, nil
}

// SetStock sets a product's stock counter to an absolute value.
func (s *productService) SetStock(ctx context.Context, id int64, stock int) (*model.Product, error) {
	if stock < 0 {
		return nil, model.ErrInvalidQuantity
	}

	if err := s.productRepo.SetStock(ctx, id, stock); err != nil {
		if err == model.ErrProductNotFound {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to set stock")
		return nil, err
	}

	return s.productRepo.GetByID(ctx, id)
}

// BulkAdjustPrice applies a percentage change to the given products.
func (s *productService) BulkAdjustPrice(ctx context.Context, ids []int64, percentage float64, direction string) (int, error) {
	if len(ids) == 0 {
		return 0, model.NewDomainError(model.ErrCodeMissingField, "Chưa chọn sản phẩm nào")
	}
	if direction != model.PriceIncrease && direction != model.PriceDecrease {
		return 0, model.NewDomainError(model.ErrCodeMissingField, "Thao tác giá không hợp lệ")
	}
	if percentage <= 0 || percentage >= 100 {
		return 0, model.NewDomainError(model.ErrCodeMissingField, "Phần trăm không hợp lệ")
	}

	updated, err := s.productRepo.AdjustPrices(ctx, ids, percentage, direction)
	if err != nil {
		s.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to adjust prices")
		return 0, err
	}

	s.logger.Info().
		Int("updated", updated).
		Float64("percentage", percentage).
		Str("direction", direction).
		Msg("prices adjusted")

	return updated, nil
}

// AddImages stores uploaded images and appends their URLs to the product's
// gallery; the first image of an empty gallery becomes the cover.
func (s *productService) AddImages(ctx context.Context, id int64, uploads []Upload) (*model.Product, error) {
	if len(uploads) == 0 {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Chưa chọn ảnh nào")
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	for _, upload := range uploads {
		url, err := s.images.Save(ctx, upload.Filename, upload.Reader)
		if err != nil {
			s.logger.Error().Err(err).Str("filename", upload.Filename).Msg("failed to store image")
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		product.ImageGallery = append(product.ImageGallery, url)
	}

	if product.ImageURL == "" && len(product.ImageGallery) > 0 {
		product.ImageURL = product.ImageGallery[0]
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to save image gallery")
		return nil, err
	}

	s.logger.Info().
		Int64("product_id", id).
		Int("uploaded", len(uploads)).
		Msg("product images added")

	return product, nil
}
