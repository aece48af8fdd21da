package backend

import (
	"context"
	"net/http"

	"github.com/krishma/storefront/internal/domain"
)

// PostEvent delivers one telemetry event. The response body is ignored;
// callers treat delivery as best-effort.
func (c *Client) PostEvent(ctx context.Context, event domain.TrackedEvent) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/events", event, nil)
}
