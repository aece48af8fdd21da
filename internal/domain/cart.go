package domain

import "time"

// CartLine is one product-plus-quantity entry in a cart. The product fields
// are a snapshot taken when the line was added, so line math stays stable
// even if the catalog changes underneath.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is the discounted unit price times the line quantity.
func (l CartLine) Subtotal() float64 {
	return l.Product.DiscountedPrice() * float64(l.Quantity)
}

// Cart holds the session's selected lines, at most one per product.
type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Line returns the index of the line for productID, or -1.
func (c *Cart) Line(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Total recomputes the cart total from scratch. It is never cached; callers
// invoke it after every mutation.
func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	return total
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}
