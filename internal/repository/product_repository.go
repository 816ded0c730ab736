package repository

import (
	"context"
	"fmt"
	"time"

	"shop-online/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `p.id, p.name, p.category_id, c.name, p.price, p.old_price,
	p.description, p.image_url, p.image_gallery, p.stock, p.created_at, p.updated_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.CategoryID, &p.CategoryName, &p.Price, &p.OldPrice,
		&p.Description, &p.ImageURL, &p.ImageGallery, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetAll retrieves products matching the filter along with the total count.
func (r *productRepository) GetAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error) {
	where := " WHERE 1=1"
	args := []any{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.description ILIKE $%d OR c.name ILIKE $%d)", n, n, n)
	}
	if filter.CategoryID > 0 {
		args = append(args, filter.CategoryID)
		where += fmt.Sprintf(" AND p.category_id = $%d", len(args))
	}

	base := ` FROM products p JOIN categories c ON c.id = p.category_id` + where

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)`+base, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := `SELECT ` + productColumns + base +
		fmt.Sprintf(` ORDER BY p.id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, total, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p JOIN categories c ON c.id = p.category_id WHERE p.id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// GetByIDsForUpdate retrieves the given product rows with FOR UPDATE locks so
// the stock check and the later decrement observe the same snapshot. Rows are
// locked in id order to keep concurrent checkouts deadlock-free.
func (r *productRepository) GetByIDsForUpdate(ctx context.Context, tx pgx.Tx, ids []int64) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := `
		SELECT id, name, category_id, price, old_price, description, image_url, image_gallery, stock, created_at, updated_at
		FROM products
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := tx.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to lock product rows")
		return nil, fmt.Errorf("failed to lock product rows: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.Price, &p.OldPrice,
			&p.Description, &p.ImageURL, &p.ImageGallery, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (name, category_id, price, old_price, description, image_url, image_gallery, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`

	now := time.Now()
	err := r.pool.QueryRow(ctx, query,
		p.Name, p.CategoryID, p.Price, p.OldPrice, p.Description, p.ImageURL, p.ImageGallery, p.Stock, now,
	).Scan(&p.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("name", p.Name).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	r.logger.Debug().Int64("product_id", p.ID).Msg("product created")
	return nil
}

// Update rewrites a product's editable fields.
func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, category_id = $3, price = $4, old_price = $5, description = $6,
		    image_url = $7, image_gallery = $8, stock = $9, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.CategoryID, p.Price, p.OldPrice, p.Description, p.ImageURL, p.ImageGallery, p.Stock)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", p.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// Delete removes a product.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

// DeleteMany removes several products.
func (r *productRepository) DeleteMany(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to delete products")
		return 0, fmt.Errorf("failed to delete products: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// SetStock sets a product's stock counter to an absolute value.
func (r *productRepository) SetStock(ctx context.Context, id int64, stock int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to set stock")
		return fmt.Errorf("failed to set stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	r.logger.Debug().Int64("product_id", id).Int("stock", stock).Msg("stock updated")
	return nil
}

// AdjustPrices applies a percentage change to the given products.
func (r *productRepository) AdjustPrices(ctx context.Context, ids []int64, percentage float64, direction string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	factor := 1 + percentage/100
	if direction == model.PriceDecrease {
		factor = 1 - percentage/100
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET price = price * $2, updated_at = now() WHERE id = ANY($1)`, ids, factor)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to adjust prices")
		return 0, fmt.Errorf("failed to adjust prices: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// DecrementStock subtracts qty from a product's stock inside tx. The stock
// guard in the WHERE clause keeps the counter from ever going negative even if
// a caller skips the locked re-check.
func (r *productRepository) DecrementStock(ctx context.Context, tx pgx.Tx, id int64, qty int) error {
	tag, err := tx.Exec(ctx,
		`UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2`, id, qty)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Int("qty", qty).Msg("failed to decrement stock")
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewDomainError(model.ErrCodeInsufficientStock,
			fmt.Sprintf("Sản phẩm %d không đủ hàng", id))
	}
	return nil
}
