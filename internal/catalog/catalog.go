// Package catalog fetches product and recommendation lists on behalf of the
// storefront views. Fetches are request-scoped: no retry, no caching beyond
// the request, cancellation via the request context.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/krishma/storefront/internal/domain"
)

// ErrProductNotFound is returned when a product id is not in the catalog.
var ErrProductNotFound = errors.New("product not found")

// Backend is the slice of the backend client the fetcher needs.
type Backend interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	Recommendations(ctx context.Context, userID string) ([]domain.Product, error)
}

// Fetcher lists products and recommendations. Concurrent identical fetches
// collapse into one backend call via singleflight; this is request dedup,
// not a cache.
type Fetcher struct {
	backend Backend
	sfg     singleflight.Group
}

func NewFetcher(backend Backend) *Fetcher {
	return &Fetcher{backend: backend}
}

// Products fetches the full catalog with derived stock status labels.
func (f *Fetcher) Products(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := f.sfg.Do("products", func() (interface{}, error) {
		return f.backend.ListProducts(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return v.([]domain.Product), nil
}

// Product looks up one product by id from the catalog list.
func (f *Fetcher) Product(ctx context.Context, id string) (*domain.Product, error) {
	products, err := f.Products(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

// Recommendations fetches the recommendation list for a user identity,
// capped at limit when limit > 0.
func (f *Fetcher) Recommendations(ctx context.Context, userID string, limit int) ([]domain.Product, error) {
	key := "recommend:" + userID
	v, err, _ := f.sfg.Do(key, func() (interface{}, error) {
		return f.backend.Recommendations(ctx, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch recommendations: %w", err)
	}

	products := v.([]domain.Product)
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}
