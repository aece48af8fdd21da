// Package dashboard computes the admin sales dashboard from raw orders and
// the forecast series. All aggregation happens here so handlers stay thin.
package dashboard

import (
	"encoding/json"
	"sort"

	"github.com/krishma/storefront/internal/domain"
)

// Summary is the dashboard header block. All money figures cover delivered
// orders only.
type Summary struct {
	TotalSales         float64 `json:"totalSales"`
	TotalOrders        int     `json:"totalOrders"`
	TotalProducts      int     `json:"totalProducts"`
	MostSellingProduct string  `json:"mostSellingProduct"`
	ActiveCustomers    int     `json:"activeCustomers"`
}

// TrendPoint is one date on the sales trend chart. Series maps a product
// name (or "<name>_pred" for forecasted quantities) to units sold that day.
type TrendPoint struct {
	Date   string
	Series map[string]int
}

// MarshalJSON flattens the point into {"date": ..., "<series>": n, ...} the
// way charting components consume it.
func (p TrendPoint) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(p.Series)+1)
	flat["date"] = p.Date
	for name, qty := range p.Series {
		flat[name] = qty
	}
	return json.Marshal(flat)
}

// Delivered returns only the delivered orders.
func Delivered(orders []domain.Order) []domain.Order {
	delivered := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == domain.OrderStatusDelivered {
			delivered = append(delivered, o)
		}
	}
	return delivered
}

// RecentDelivered returns the n most recent delivered orders, newest first.
func RecentDelivered(orders []domain.Order, n int) []domain.Order {
	delivered := Delivered(orders)
	sort.SliceStable(delivered, func(i, j int) bool {
		return delivered[i].OrderDate > delivered[j].OrderDate
	})
	if len(delivered) > n {
		delivered = delivered[:n]
	}
	return delivered
}

// BuildSummary aggregates delivered orders. totalProducts is the catalog
// size; pass a negative value to fall back to the number of distinct product
// names seen in the orders.
func BuildSummary(orders []domain.Order, totalProducts int) Summary {
	delivered := Delivered(orders)

	var totalSales float64
	productCount := make(map[string]int)
	customers := make(map[string]struct{})

	for _, o := range delivered {
		totalSales += o.Total
		customers[customerKey(o)] = struct{}{}
		for _, item := range o.Items {
			productCount[item.Name] += item.Quantity
		}
	}

	mostSelling := "-"
	best := 0
	// Deterministic over map iteration: higher count wins, ties break on name.
	for name, count := range productCount {
		if count > best || (count == best && mostSelling != "-" && name < mostSelling) {
			mostSelling = name
			best = count
		}
	}

	if totalProducts < 0 {
		totalProducts = len(productCount)
	}

	return Summary{
		TotalSales:         totalSales,
		TotalOrders:        len(delivered),
		TotalProducts:      totalProducts,
		MostSellingProduct: mostSelling,
		ActiveCustomers:    len(customers),
	}
}

// SalesTrend merges actual daily quantities from delivered orders with the
// forecast series. Forecasted quantities appear under "<product>_pred".
// Points are date-sorted ascending with absent series zero-filled.
func SalesTrend(orders []domain.Order, forecasts []domain.ProductForecast) []TrendPoint {
	trend := make(map[string]map[string]int)
	series := make(map[string]struct{})

	day := func(date string) string {
		if len(date) > 10 {
			return date[:10]
		}
		return date
	}

	for _, o := range Delivered(orders) {
		date := day(o.OrderDate)
		if date == "" {
			continue
		}
		if trend[date] == nil {
			trend[date] = make(map[string]int)
		}
		for _, item := range o.Items {
			trend[date][item.Name] += item.Quantity
			series[item.Name] = struct{}{}
		}
	}

	for _, f := range forecasts {
		name := f.Product + "_pred"
		for _, pred := range f.DailyPredictedSales {
			date := day(pred.Date)
			if date == "" {
				continue
			}
			if trend[date] == nil {
				trend[date] = make(map[string]int)
			}
			trend[date][name] = pred.Quantity
			series[name] = struct{}{}
		}
	}

	dates := make([]string, 0, len(trend))
	for date := range trend {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	points := make([]TrendPoint, len(dates))
	for i, date := range dates {
		point := TrendPoint{Date: date, Series: make(map[string]int, len(series))}
		for name := range series {
			point.Series[name] = trend[date][name]
		}
		points[i] = point
	}
	return points
}

// StatusBreakdown counts orders per status across all orders.
func StatusBreakdown(orders []domain.Order) map[string]int {
	breakdown := map[string]int{
		domain.OrderStatusPending:   0,
		domain.OrderStatusShipped:   0,
		domain.OrderStatusDelivered: 0,
		domain.OrderStatusCancelled: 0,
	}
	for _, o := range orders {
		breakdown[o.Status]++
	}
	return breakdown
}

// ProductProfit estimates per-product profit across all orders. Items
// without a cost price assume a 20% margin.
func ProductProfit(orders []domain.Order) map[string]float64 {
	profit := make(map[string]float64)
	for _, o := range orders {
		for _, item := range o.Items {
			cost := item.CostPrice
			if cost == 0 {
				cost = item.Price * 0.8
			}
			profit[item.Name] += (item.Price - cost) * float64(item.Quantity)
		}
	}
	return profit
}

func customerKey(o domain.Order) string {
	if o.Customer != nil {
		if o.Customer.ID != "" {
			return o.Customer.ID
		}
		if o.Customer.Email != "" {
			return o.Customer.Email
		}
	}
	return o.CustomerEmail
}
