package domain

// DailySale is one forecasted day of sales for a product.
type DailySale struct {
	Date     string `json:"date"`
	Quantity int    `json:"quantity"`
}

// ProductForecast is the per-product forecast series from the forecasting
// endpoint.
type ProductForecast struct {
	Product             string      `json:"product"`
	DailyPredictedSales []DailySale `json:"daily_predicted_sales"`
}

// ForecastResponse is the body of GET /api/forecast-sales.
type ForecastResponse struct {
	Forecasts []ProductForecast `json:"forecasts"`
}
