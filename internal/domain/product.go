package domain

// Stock status labels shown in the catalog and inventory views.
const (
	StockStatusIn  = "in-stock"
	StockStatusLow = "low-stock"
	StockStatusOut = "out-of-stock"
)

// LowStockThreshold is the stock level at or below which a product is
// labeled low-stock.
const LowStockThreshold = 10

// Product is the catalog entry as served by the backend. The `_id` tag
// matches the backend's document identifiers.
type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount,omitempty"`
	Stock       int     `json:"stock"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`

	// Status is derived from Stock on fetch, never trusted from the wire.
	Status string `json:"status,omitempty"`
}

// DiscountedPrice returns the unit price after the percentage discount.
func (p Product) DiscountedPrice() float64 {
	if p.Discount > 0 {
		return p.Price - p.Price*p.Discount/100
	}
	return p.Price
}

// InStock reports whether at least one unit can be sold.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// StockStatus maps a stock count to its status label.
func StockStatus(stock int) string {
	switch {
	case stock <= 0:
		return StockStatusOut
	case stock <= LowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}
