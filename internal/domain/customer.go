package domain

// Customer is a back-office customer record.
type Customer struct {
	ID         string  `json:"_id,omitempty"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone,omitempty"`
	Address    string  `json:"address,omitempty"`
	Status     string  `json:"status,omitempty"`
	JoinDate   string  `json:"joinDate,omitempty"`
	TotalSpent float64 `json:"totalSpent,omitempty"`
	Orders     int     `json:"orders,omitempty"`
}

// AdminProfile is the back-office admin account profile.
type AdminProfile struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}
