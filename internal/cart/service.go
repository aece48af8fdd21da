package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/krishma/storefront/internal/domain"
)

// Stock-constraint violations surfaced to the user as warnings.
var (
	ErrOutOfStock = errors.New("product is out of stock")
	ErrStockLimit = errors.New("maximum available stock already in cart")
)

// Service is the cart state manager. All mutations go through the store, so
// a failed store write leaves the previous cart intact.
type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Get returns the session's cart, or a fresh empty cart if none exists yet.
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, ErrCartNotFound) {
		now := time.Now()
		return &domain.Cart{SessionID: sessionID, CreatedAt: now, UpdatedAt: now}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// AddProduct adds one unit of product to the cart. It refuses out-of-stock
// products and refuses to push an existing line past the product's stock;
// both refusals leave the cart unchanged. The whole mutation runs inside the
// store's per-session Update, so concurrent adds on one session all land.
func (s *Service) AddProduct(ctx context.Context, sessionID string, product domain.Product) (*domain.Cart, error) {
	if product.Stock <= 0 {
		return nil, ErrOutOfStock
	}

	cart, err := s.store.Update(ctx, sessionID, func(cart *domain.Cart) error {
		if i := cart.Line(product.ID); i >= 0 {
			if cart.Lines[i].Quantity >= product.Stock {
				return ErrStockLimit
			}
			cart.Lines[i].Quantity++
			// Refresh the snapshot so later clamps see current stock.
			cart.Lines[i].Product = product
		} else {
			cart.Lines = append(cart.Lines, domain.CartLine{Product: product, Quantity: 1})
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrStockLimit) {
			return nil, err
		}
		return nil, fmt.Errorf("add to cart: %w", err)
	}
	return cart, nil
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line; a
// request beyond the product's stock clamps to the stock ceiling and reports
// clamped=true so the caller can warn. Updating an absent line is a no-op.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, bool, error) {
	clamped := false
	cart, err := s.store.Update(ctx, sessionID, func(cart *domain.Cart) error {
		i := cart.Line(productID)
		if i < 0 {
			return nil
		}

		if quantity <= 0 {
			cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)
			return nil
		}

		if stock := cart.Lines[i].Product.Stock; quantity > stock {
			quantity = stock
			clamped = true
		}
		cart.Lines[i].Quantity = quantity
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("update quantity: %w", err)
	}
	return cart, clamped, nil
}

// Remove deletes a line unconditionally. Removal is not a purchase; only
// checkout emits purchase events.
func (s *Service) Remove(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	cart, err := s.store.Update(ctx, sessionID, func(cart *domain.Cart) error {
		if i := cart.Line(productID); i >= 0 {
			cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("remove from cart: %w", err)
	}
	return cart, nil
}

// Clear drops the session's cart entirely.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
