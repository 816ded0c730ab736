package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"shop-online/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryImageStore records saved filenames and hands back predictable URLs.
type memoryImageStore struct {
	saved []string
}

func (s *memoryImageStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	s.saved = append(s.saved, filename)
	return fmt.Sprintf("/images/products/%s", filename), nil
}

func productFixture(t *testing.T) (*MockProductRepository, *memoryImageStore, ProductService) {
	t.Helper()
	productRepo := new(MockProductRepository)
	images := &memoryImageStore{}
	svc := NewProductService(productRepo, images, zerolog.Nop())
	return productRepo, images, svc
}

func TestProductService_Create_Validation(t *testing.T) {
	_, _, svc := productFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  *model.ProductRequest
	}{
		{"nil request", nil},
		{"empty name", &model.ProductRequest{CategoryID: 1, Price: 100}},
		{"missing category", &model.ProductRequest{Name: "Áo thun nam", Price: 100}},
		{"negative price", &model.ProductRequest{Name: "Áo thun nam", CategoryID: 1, Price: -5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			require.Error(t, err)

			var domainErr *model.DomainError
			assert.ErrorAs(t, err, &domainErr)
		})
	}
}

func TestProductService_Create_Success(t *testing.T) {
	productRepo, _, svc := productFixture(t)
	ctx := context.Background()

	productRepo.On("Create", ctx, mock.MatchedBy(func(p *model.Product) bool {
		return p.Name == "Áo thun nam" && p.Stock == 10 && p.ImageGallery != nil
	})).Return(nil)

	product, err := svc.Create(ctx, &model.ProductRequest{
		Name:       "Áo thun nam",
		CategoryID: 1,
		Price:      150000,
		Stock:      10,
	})
	require.NoError(t, err)
	assert.Equal(t, "Áo thun nam", product.Name)
	productRepo.AssertExpectations(t)
}

func TestProductService_SetStock_RejectsNegative(t *testing.T) {
	_, _, svc := productFixture(t)

	_, err := svc.SetStock(context.Background(), 1, -1)
	assert.ErrorIs(t, err, model.ErrInvalidQuantity)
}

func TestProductService_BulkAdjustPrice_Validation(t *testing.T) {
	_, _, svc := productFixture(t)
	ctx := context.Background()

	_, err := svc.BulkAdjustPrice(ctx, nil, 10, model.PriceIncrease)
	assert.Error(t, err, "empty selection")

	_, err = svc.BulkAdjustPrice(ctx, []int64{1}, 10, "double")
	assert.Error(t, err, "unknown direction")

	_, err = svc.BulkAdjustPrice(ctx, []int64{1}, 0, model.PriceDecrease)
	assert.Error(t, err, "zero percentage")

	_, err = svc.BulkAdjustPrice(ctx, []int64{1}, 100, model.PriceDecrease)
	assert.Error(t, err, "full discount")
}

func TestProductService_BulkAdjustPrice_Success(t *testing.T) {
	productRepo, _, svc := productFixture(t)
	ctx := context.Background()

	productRepo.On("AdjustPrices", ctx, []int64{1, 2}, 15.0, model.PriceDecrease).Return(2, nil)

	updated, err := svc.BulkAdjustPrice(ctx, []int64{1, 2}, 15, model.PriceDecrease)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)
}

func TestProductService_AddImages_FirstImageBecomesCover(t *testing.T) {
	productRepo, images, svc := productFixture(t)
	ctx := context.Background()

	stored := &model.Product{ID: 7, Name: "Áo thun nam", ImageGallery: []string{}}
	productRepo.On("GetByID", ctx, int64(7)).Return(stored, nil)
	productRepo.On("Update", ctx, mock.MatchedBy(func(p *model.Product) bool {
		return p.ImageURL == "/images/products/front.jpg" && len(p.ImageGallery) == 2
	})).Return(nil)

	product, err := svc.AddImages(ctx, 7, []Upload{
		{Filename: "front.jpg", Reader: strings.NewReader("jpeg-bytes")},
		{Filename: "back.jpg", Reader: strings.NewReader("jpeg-bytes")},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"front.jpg", "back.jpg"}, images.saved)
	assert.Equal(t, "/images/products/front.jpg", product.ImageURL)
	productRepo.AssertExpectations(t)
}

func TestProductService_AddImages_ProductMissing(t *testing.T) {
	productRepo, _, svc := productFixture(t)
	ctx := context.Background()

	productRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

	_, err := svc.AddImages(ctx, 99, []Upload{
		{Filename: "x.jpg", Reader: strings.NewReader("jpeg-bytes")},
	})
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}
