package domain

// Order status labels used by the backend and the back office.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderItem is a denormalized product snapshot inside an order. It is not a
// live reference; name, price and image are captured at submission time.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	CostPrice float64 `json:"costPrice,omitempty"`
}

// OrderSubmission is the immutable payload posted at checkout. The server
// owns all status transitions after submission.
type OrderSubmission struct {
	ID            string      `json:"id"`
	CustomerEmail string      `json:"customerEmail"`
	Items         []OrderItem `json:"items"`
	Total         float64     `json:"total"`
	Status        string      `json:"status"`
	OrderDate     string      `json:"orderDate"`
}

// OrderCustomer is the customer block attached to orders by the backend.
type OrderCustomer struct {
	ID      string `json:"_id,omitempty"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Order is an order as returned by the backend, used by the back office and
// the customer order history.
type Order struct {
	ID            string         `json:"id"`
	CustomerEmail string         `json:"customerEmail,omitempty"`
	Customer      *OrderCustomer `json:"customer,omitempty"`
	Items         []OrderItem    `json:"items"`
	Total         float64        `json:"total"`
	Status        string         `json:"status"`
	OrderDate     string         `json:"orderDate"`
	PaymentMethod string         `json:"paymentMethod,omitempty"`
}
