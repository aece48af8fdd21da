package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/krishma/storefront/internal/domain"
)

// ListCustomers fetches all customer records for the back office.
func (c *Client) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	if err := c.getJSON(ctx, "/api/admin/customers", &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// CustomerProfile fetches one customer's profile by email.
func (c *Client) CustomerProfile(ctx context.Context, email string) (*domain.Customer, error) {
	var customer domain.Customer
	if err := c.getJSON(ctx, "/api/customer/profile/"+url.PathEscape(email), &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpdateCustomerProfile replaces a customer's profile.
func (c *Client) UpdateCustomerProfile(ctx context.Context, email string, customer *domain.Customer) error {
	return c.sendJSON(ctx, http.MethodPut, "/api/customer/profile/"+url.PathEscape(email), customer, nil)
}

// AdminProfile fetches the admin account profile by username.
func (c *Client) AdminProfile(ctx context.Context, username string) (*domain.AdminProfile, error) {
	var profile domain.AdminProfile
	if err := c.getJSON(ctx, "/api/admin/profile/"+url.PathEscape(username), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateAdminProfile replaces the admin account profile.
func (c *Client) UpdateAdminProfile(ctx context.Context, username string, profile *domain.AdminProfile) error {
	return c.sendJSON(ctx, http.MethodPut, "/api/admin/profile/"+url.PathEscape(username), profile, nil)
}

// ChangeAdminPassword posts a password change for the admin account.
func (c *Client) ChangeAdminPassword(ctx context.Context, username, current, updated string) error {
	body := map[string]string{"currentPassword": current, "newPassword": updated}
	return c.sendJSON(ctx, http.MethodPut, "/api/admin/change-password/"+url.PathEscape(username), body, nil)
}
