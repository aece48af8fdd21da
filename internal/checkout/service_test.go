package checkout

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/krishma/storefront/internal/domain"
)

type mockBackend struct {
	orders []*domain.OrderSubmission
	err    error
}

func (m *mockBackend) PlaceOrder(_ context.Context, order *domain.OrderSubmission) error {
	if m.err != nil {
		return m.err
	}
	m.orders = append(m.orders, order)
	return nil
}

type mockCart struct {
	cart     *domain.Cart
	getErr   error
	clearErr error
	cleared  bool
}

func (m *mockCart) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.cart == nil {
		return &domain.Cart{SessionID: sessionID}, nil
	}
	return m.cart, nil
}

func (m *mockCart) Clear(context.Context, string) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared = true
	return nil
}

type trackedCall struct {
	userID    string
	productID string
	kind      domain.EventKind
	value     float64
}

type mockTracker struct {
	calls []trackedCall
}

func (m *mockTracker) Track(userID, productID string, kind domain.EventKind, value float64) {
	m.calls = append(m.calls, trackedCall{userID, productID, kind, value})
}

func fixedTime() time.Time {
	return time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
}

func twoLineCart() *domain.Cart {
	return &domain.Cart{
		SessionID: "s1",
		Lines: []domain.CartLine{
			{Product: domain.Product{ID: "p-milk", Name: "Milk 1L", Price: 60, Stock: 5}, Quantity: 2},
			{Product: domain.Product{ID: "p-ghee", Name: "Ghee 500ml", Price: 500, Discount: 10, Stock: 8}, Quantity: 1},
		},
	}
}

func newTestService(backend *mockBackend, cart *mockCart, tracker *mockTracker) *Service {
	svc := NewService(backend, cart, tracker, zap.NewNop())
	svc.now = fixedTime
	return svc
}

func TestPlaceOrder_Success(t *testing.T) {
	backend := &mockBackend{}
	cart := &mockCart{cart: twoLineCart()}
	tracker := &mockTracker{}
	sut := newTestService(backend, cart, tracker)

	order, err := sut.PlaceOrder(context.Background(), "s1", "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, fmt.Sprintf("ORD-%d", fixedTime().UnixMilli()), order.ID)
	assert.Equal(t, "jane@example.com", order.CustomerEmail)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, "2025-03-15", order.OrderDate)
	assert.InDelta(t, 570.0, order.Total, 1e-9)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Milk 1L", order.Items[0].Name)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 60.0, order.Items[0].Price)

	require.Len(t, backend.orders, 1)
	assert.True(t, cart.cleared)
}

func TestPlaceOrder_EmitsOnePurchaseEventPerLine(t *testing.T) {
	backend := &mockBackend{}
	cart := &mockCart{cart: twoLineCart()}
	tracker := &mockTracker{}
	sut := newTestService(backend, cart, tracker)

	_, err := sut.PlaceOrder(context.Background(), "s1", "jane@example.com")
	require.NoError(t, err)

	require.Len(t, tracker.calls, 2)
	assert.Equal(t, trackedCall{"jane@example.com", "p-milk", domain.EventPurchase, 2}, tracker.calls[0])
	assert.Equal(t, trackedCall{"jane@example.com", "p-ghee", domain.EventPurchase, 1}, tracker.calls[1])
}

func TestPlaceOrder_NoIdentity(t *testing.T) {
	backend := &mockBackend{}
	cart := &mockCart{cart: twoLineCart()}
	tracker := &mockTracker{}
	sut := newTestService(backend, cart, tracker)

	order, err := sut.PlaceOrder(context.Background(), "s1", "")
	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Nil(t, order)
	assert.Empty(t, backend.orders)
	assert.False(t, cart.cleared)
	assert.Empty(t, tracker.calls)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	backend := &mockBackend{}
	cart := &mockCart{}
	tracker := &mockTracker{}
	sut := newTestService(backend, cart, tracker)

	order, err := sut.PlaceOrder(context.Background(), "s1", "jane@example.com")
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, order)
	assert.Empty(t, backend.orders)
}

func TestPlaceOrder_BackendFailure_LeavesCart(t *testing.T) {
	backend := &mockBackend{err: fmt.Errorf("backend down")}
	cart := &mockCart{cart: twoLineCart()}
	tracker := &mockTracker{}
	sut := newTestService(backend, cart, tracker)

	order, err := sut.PlaceOrder(context.Background(), "s1", "jane@example.com")
	require.ErrorContains(t, err, "backend down")
	assert.Nil(t, order)
	assert.False(t, cart.cleared)
	assert.Empty(t, tracker.calls)
}

func TestPlaceOrder_ClearFailure_StillSucceeds(t *testing.T) {
	backend := &mockBackend{}
	cart := &mockCart{cart: twoLineCart(), clearErr: fmt.Errorf("store down")}
	tracker := &mockTracker{}
	sut := newTestService(backend, cart, tracker)

	order, err := sut.PlaceOrder(context.Background(), "s1", "jane@example.com")
	require.NoError(t, err)
	assert.NotNil(t, order)
	assert.Len(t, tracker.calls, 2)
}

func TestPlaceOrder_CartLoadFailure(t *testing.T) {
	backend := &mockBackend{}
	cart := &mockCart{getErr: fmt.Errorf("store down")}
	tracker := &mockTracker{}
	sut := newTestService(backend, cart, tracker)

	order, err := sut.PlaceOrder(context.Background(), "s1", "jane@example.com")
	require.ErrorContains(t, err, "store down")
	assert.Nil(t, order)
	assert.Empty(t, backend.orders)
}
