// Package checkout turns a cart into an order submission. It is the sole
// source of purchase events.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/krishma/storefront/internal/domain"
)

var (
	ErrNotAuthenticated = errors.New("customer identity required to place an order")
	ErrEmptyCart        = errors.New("cart is empty, nothing to order")
)

// OrderPlacer submits an order to the backend.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, order *domain.OrderSubmission) error
}

// CartManager is the slice of the cart service checkout needs.
type CartManager interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

// EventTracker records purchase telemetry.
type EventTracker interface {
	Track(userID, productID string, kind domain.EventKind, value float64)
}

type Service struct {
	backend OrderPlacer
	cart    CartManager
	tracker EventTracker
	logger  *zap.Logger

	// now is swappable in tests; order ids and dates derive from it.
	now func() time.Time
}

func NewService(backend OrderPlacer, cart CartManager, tracker EventTracker, logger *zap.Logger) *Service {
	return &Service{
		backend: backend,
		cart:    cart,
		tracker: tracker,
		logger:  logger,
		now:     time.Now,
	}
}

// PlaceOrder validates the session's cart, submits a denormalized snapshot
// and on success clears the cart and emits one purchase event per line.
// On any failure the cart is left untouched.
//
// Each call generates a fresh client-side order id, so retrying after a
// transient failure can create duplicate orders. Known limitation.
func (s *Service) PlaceOrder(ctx context.Context, sessionID, customerEmail string) (*domain.OrderSubmission, error) {
	if customerEmail == "" {
		return nil, ErrNotAuthenticated
	}

	cart, err := s.cart.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart.Empty() {
		return nil, ErrEmptyCart
	}

	order := s.buildSubmission(cart, customerEmail)

	if err := s.backend.PlaceOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	// The order is accepted; clearing the cart is local cleanup and must not
	// fail the checkout.
	if err := s.cart.Clear(ctx, sessionID); err != nil {
		s.logger.Error("failed to clear cart after order",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}

	for _, item := range order.Items {
		s.tracker.Track(customerEmail, item.ProductID, domain.EventPurchase, float64(item.Quantity))
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("customer", customerEmail),
		zap.Int("items", len(order.Items)),
		zap.Float64("total", order.Total))

	return order, nil
}

// buildSubmission captures product name, price and image at submission time;
// the snapshot is independent of later catalog changes.
func (s *Service) buildSubmission(cart *domain.Cart, customerEmail string) *domain.OrderSubmission {
	now := s.now()

	items := make([]domain.OrderItem, len(cart.Lines))
	for i, line := range cart.Lines {
		items[i] = domain.OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
			Image:     line.Product.Image,
		}
	}

	return &domain.OrderSubmission{
		ID:            fmt.Sprintf("ORD-%d", now.UnixMilli()),
		CustomerEmail: customerEmail,
		Items:         items,
		Total:         cart.Total(),
		Status:        domain.OrderStatusPending,
		OrderDate:     now.Format("2006-01-02"),
	}
}
