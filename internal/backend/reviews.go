package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/krishma/storefront/internal/domain"
)

// ListReviews fetches all reviews for the back office.
func (c *Client) ListReviews(ctx context.Context) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := c.getJSON(ctx, "/api/admin/reviews", &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// UpdateReviewStatus approves or rejects a review via a partial PUT body.
func (c *Client) UpdateReviewStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	return c.sendJSON(ctx, http.MethodPut, "/api/admin/reviews/"+url.PathEscape(id), body, nil)
}

// SubmitReview posts a new customer review. Reviews start out pending.
func (c *Client) SubmitReview(ctx context.Context, review *domain.Review) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/customer/reviews", review, nil)
}
