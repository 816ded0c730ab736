package service

import (
	"context"
	"fmt"

	"shop-online/internal/model"
	"shop-online/internal/repository"
	"shop-online/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService over two backends: the persistent cart
// repository for authenticated users and the in-memory session store for
// anonymous visitors. Every mutation loads the owner's cart, applies the
// change and writes the whole cart back.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	sessions    *session.Store
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	sessions *session.Store,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		sessions:    sessions,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) load(ctx context.Context, owner model.CartOwner) ([]model.CartItem, error) {
	if owner.Authenticated() {
		return s.cartRepo.Get(ctx, owner.UserID)
	}
	return s.sessions.Get(owner.SessionToken), nil
}

func (s *cartService) save(ctx context.Context, owner model.CartOwner, items []model.CartItem) error {
	if owner.Authenticated() {
		return s.cartRepo.Replace(ctx, owner.UserID, items)
	}
	s.sessions.Set(owner.SessionToken, items)
	return nil
}

// Get retrieves the owner's cart.
func (s *cartService) Get(ctx context.Context, owner model.CartOwner) ([]model.CartItem, error) {
	items, err := s.load(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if items == nil {
		items = []model.CartItem{}
	}
	return items, nil
}

// Add puts qty units of a product into the cart. A first add larger than the
// available stock is capped at the stock; growing an existing line past stock
// fails with the exact remaining headroom.
func (s *cartService) Add(ctx context.Context, owner model.CartOwner, productID int64, qty int) error {
	if qty <= 0 {
		return model.ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}
	if product.Stock <= 0 {
		return model.NewOutOfStockError(product.Name)
	}
	if qty > product.Stock {
		qty = product.Stock
	}

	items, err := s.load(ctx, owner)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	found := false
	for i := range items {
		if items[i].ProductID == productID {
			if items[i].Quantity+qty > product.Stock {
				return model.NewInsufficientStockError(product.Name, product.Stock-items[i].Quantity)
			}
			items[i].Quantity += qty
			found = true
			break
		}
	}

	if !found {
		items = append(items, model.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
			Quantity:  qty,
		})
	}

	if err := s.save(ctx, owner, items); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.Debug().
		Int64("product_id", productID).
		Int("quantity", qty).
		Msg("added to cart")

	return nil
}

// Increase adds one unit to an existing line, rejecting the change when the
// line already holds every unit in stock.
func (s *cartService) Increase(ctx context.Context, owner model.CartOwner, productID int64) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}

	items, err := s.load(ctx, owner)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	for i := range items {
		if items[i].ProductID == productID {
			if items[i].Quantity >= product.Stock {
				return model.NewInsufficientStockError(product.Name, product.Stock)
			}
			items[i].Quantity++
			return s.save(ctx, owner, items)
		}
	}

	return nil
}

// Decrease removes one unit from an existing line, deleting it at zero.
func (s *cartService) Decrease(ctx context.Context, owner model.CartOwner, productID int64) error {
	items, err := s.load(ctx, owner)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity--
			if items[i].Quantity <= 0 {
				items = append(items[:i], items[i+1:]...)
			}
			return s.save(ctx, owner, items)
		}
	}

	return nil
}

// SetQuantity sets a line's quantity; zero or less deletes the line.
func (s *cartService) SetQuantity(ctx context.Context, owner model.CartOwner, productID int64, qty int) error {
	if qty <= 0 {
		return s.Remove(ctx, owner, productID)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}
	if qty > product.Stock {
		return model.NewInsufficientStockError(product.Name, product.Stock)
	}

	items, err := s.load(ctx, owner)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = qty
			return s.save(ctx, owner, items)
		}
	}

	return nil
}

// Remove deletes a line. Removing an absent line is a no-op.
func (s *cartService) Remove(ctx context.Context, owner model.CartOwner, productID int64) error {
	items, err := s.load(ctx, owner)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	for i := range items {
		if items[i].ProductID == productID {
			items = append(items[:i], items[i+1:]...)
			return s.save(ctx, owner, items)
		}
	}

	return nil
}

// Clear empties the cart. Idempotent.
func (s *cartService) Clear(ctx context.Context, owner model.CartOwner) error {
	if owner.Authenticated() {
		return s.cartRepo.Clear(ctx, owner.UserID)
	}
	s.sessions.Clear(owner.SessionToken)
	return nil
}

// Merge folds a guest session cart into the user's persistent cart.
// Quantities for the same product are summed and capped at the live stock;
// lines whose product disappeared are dropped.
func (s *cartService) Merge(ctx context.Context, sessionToken string, userID uuid.UUID) error {
	guestItems := s.sessions.Get(sessionToken)
	if len(guestItems) == 0 {
		return nil
	}

	items, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	for _, guest := range guestItems {
		product, err := s.productRepo.GetByID(ctx, guest.ProductID)
		if err != nil {
			return fmt.Errorf("failed to load product: %w", err)
		}
		if product == nil || product.Stock <= 0 {
			continue
		}

		merged := false
		for i := range items {
			if items[i].ProductID == guest.ProductID {
				items[i].Quantity += guest.Quantity
				if items[i].Quantity > product.Stock {
					items[i].Quantity = product.Stock
				}
				merged = true
				break
			}
		}

		if !merged {
			if guest.Quantity > product.Stock {
				guest.Quantity = product.Stock
			}
			items = append(items, guest)
		}
	}

	if err := s.cartRepo.Replace(ctx, userID, items); err != nil {
		return fmt.Errorf("failed to save merged cart: %w", err)
	}
	s.sessions.Clear(sessionToken)

	s.logger.Info().
		Str("user_id", userID.String()).
		Int("guest_items", len(guestItems)).
		Msg("guest cart merged into user cart")

	return nil
}
