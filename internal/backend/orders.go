package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/krishma/storefront/internal/domain"
)

// PlaceOrder submits a checkout snapshot. The backend owns the order from
// here on; a non-2xx response means nothing was recorded.
func (c *Client) PlaceOrder(ctx context.Context, order *domain.OrderSubmission) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/customer/orders", order, nil)
}

// OrdersByCustomer fetches the order history for one customer email.
func (c *Client) OrdersByCustomer(ctx context.Context, email string) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.getJSON(ctx, "/api/customer/orders/"+url.PathEscape(email), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrders fetches every order for the back office.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.getJSON(ctx, "/api/admin/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus sets a new status on an order via a partial PUT body.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	return c.sendJSON(ctx, http.MethodPut, "/api/admin/orders/"+url.PathEscape(id), body, nil)
}

// Forecast fetches the sales forecast series.
func (c *Client) Forecast(ctx context.Context) (*domain.ForecastResponse, error) {
	var forecast domain.ForecastResponse
	if err := c.getJSON(ctx, "/api/forecast-sales", &forecast); err != nil {
		return nil, err
	}
	return &forecast, nil
}
