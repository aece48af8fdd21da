package domain

// Review status labels. New reviews stay pending until approved by an admin.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// Review is a customer review of a product.
type Review struct {
	ID           string `json:"_id,omitempty"`
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	CustomerName string `json:"customerName,omitempty"`
	Rating       int    `json:"rating"`
	Title        string `json:"title"`
	Comment      string `json:"comment"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}
