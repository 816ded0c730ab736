package repository

import (
	"context"
	"fmt"

	"shop-online/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
// Mutations rewrite the owner's lines wholesale, mirroring how the in-memory
// guest store overwrites a session's items.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// Get retrieves the user's cart lines as cart items.
func (r *cartRepository) Get(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	query := `
		SELECT product_id, product_name, price, image_url, quantity
		FROM cart_lines
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query cart lines")
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var item model.CartItem
		err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.ImageURL, &item.Quantity)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart line")
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart lines")
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}

	return items, nil
}

// Replace overwrites the user's cart with the given items in one transaction.
func (r *cartRepository) Replace(ctx context.Context, userID uuid.UUID, items []model.CartItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear cart lines")
		return fmt.Errorf("failed to clear cart lines: %w", err)
	}

	if len(items) > 0 {
		query := `
			INSERT INTO cart_lines (user_id, product_id, product_name, price, image_url, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
		`

		batch := &pgx.Batch{}
		for _, item := range items {
			batch.Queue(query, userID, item.ProductID, item.Name, item.Price, item.ImageURL, item.Quantity)
		}

		results := tx.SendBatch(ctx, batch)
		for i := 0; i < len(items); i++ {
			if _, err := results.Exec(); err != nil {
				results.Close()
				r.logger.Error().
					Err(err).
					Str("user_id", userID.String()).
					Int64("product_id", items[i].ProductID).
					Msg("failed to insert cart line")
				return fmt.Errorf("failed to insert cart line: %w", err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("failed to insert cart lines: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit cart replace")
		return fmt.Errorf("failed to commit cart replace: %w", err)
	}

	r.logger.Debug().
		Str("user_id", userID.String()).
		Int("count", len(items)).
		Msg("cart replaced")

	return nil
}

// Clear removes every line owned by the user. Idempotent.
func (r *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// ClearTx removes every line owned by the user within the provided transaction.
func (r *cartRepository) ClearTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear cart in transaction")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
