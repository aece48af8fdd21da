// Package cart owns the session-scoped shopping cart: storage, stock
// ceilings and total computation.
package cart

import (
	"context"
	"errors"

	"github.com/krishma/storefront/internal/domain"
)

// Store errors.
var ErrCartNotFound = errors.New("cart not found")

// Store persists carts keyed by session id. Implementations serialize
// concurrent access to the same session; carts are TTL-bound session state,
// not durable storage.
type Store interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Put(ctx context.Context, cart *domain.Cart) error
	// Update applies fn to the session's cart and persists the result as one
	// serialized step, so concurrent mutations of the same session never lose
	// each other's writes. A missing cart starts empty. When fn returns an
	// error nothing is persisted and the error comes back unchanged.
	Update(ctx context.Context, sessionID string, fn func(cart *domain.Cart) error) (*domain.Cart, error)
	Delete(ctx context.Context, sessionID string) error
	Close() error
}
