package domain

import "time"

// EventKind is the kind of a tracked interaction.
type EventKind string

const (
	EventView      EventKind = "view"
	EventAddToCart EventKind = "add_to_cart"
	EventPurchase  EventKind = "purchase"
)

// TrackedEvent is a best-effort telemetry record of a user's interaction
// with a product. Events are fire-and-forget and never retained locally.
type TrackedEvent struct {
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	EventType EventKind `json:"eventType"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTrackedEvent builds an event, defaulting value to 1 when the caller
// passes zero or less.
func NewTrackedEvent(userID, productID string, kind EventKind, value float64) TrackedEvent {
	if value <= 0 {
		value = 1
	}
	return TrackedEvent{
		UserID:    userID,
		ProductID: productID,
		EventType: kind,
		Value:     value,
		Timestamp: time.Now(),
	}
}
