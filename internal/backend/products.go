package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/krishma/storefront/internal/domain"
)

// ListProducts fetches the full catalog. Status labels are recomputed from
// stock so stale labels from the backend never leak through.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.getJSON(ctx, "/api/admin/products", &products); err != nil {
		return nil, err
	}
	for i := range products {
		products[i].Status = domain.StockStatus(products[i].Stock)
	}
	return products, nil
}

// CreateProduct adds a product to the catalog.
func (c *Client) CreateProduct(ctx context.Context, p *domain.Product) error {
	p.Status = domain.StockStatus(p.Stock)
	return c.sendJSON(ctx, http.MethodPost, "/api/admin/products", p, nil)
}

// UpdateProduct replaces the product with the given id.
func (c *Client) UpdateProduct(ctx context.Context, id string, p *domain.Product) error {
	p.Status = domain.StockStatus(p.Stock)
	return c.sendJSON(ctx, http.MethodPut, "/api/admin/products/"+url.PathEscape(id), p, nil)
}

// DeleteProduct removes a product from the catalog.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.sendJSON(ctx, http.MethodDelete, "/api/admin/products/"+url.PathEscape(id), nil, nil)
}

// Recommendations fetches the recommended products for a user identity
// ("guest" for anonymous sessions).
func (c *Client) Recommendations(ctx context.Context, userID string) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.getJSON(ctx, "/api/recommend/"+url.PathEscape(userID), &products); err != nil {
		return nil, err
	}
	return products, nil
}
