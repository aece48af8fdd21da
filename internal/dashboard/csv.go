package dashboard

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/krishma/storefront/internal/domain"
)

var csvHeader = []string{
	"Order ID", "Product", "Quantity", "Price Per Unit", "Total",
	"Customer Name", "Email", "Phone", "Address", "Payment Method",
	"Order Date", "Status",
}

// WriteCSV exports one row per order item.
func WriteCSV(w io.Writer, orders []domain.Order) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, o := range orders {
		var name, email, phone, address string
		if o.Customer != nil {
			name, email, phone, address = o.Customer.Name, o.Customer.Email, o.Customer.Phone, o.Customer.Address
		}
		if email == "" {
			email = o.CustomerEmail
		}
		payment := o.PaymentMethod
		if payment == "" {
			payment = "Cash"
		}

		for _, item := range o.Items {
			row := []string{
				o.ID,
				item.Name,
				fmt.Sprintf("%d", item.Quantity),
				fmt.Sprintf("%.2f", item.Price),
				fmt.Sprintf("%.2f", item.Price*float64(item.Quantity)),
				name,
				email,
				phone,
				address,
				payment,
				o.OrderDate,
				o.Status,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
