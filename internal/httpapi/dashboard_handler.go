package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/krishma/storefront/internal/dashboard"
	"github.com/krishma/storefront/internal/domain"
	"github.com/krishma/storefront/internal/logger"

	"go.uber.org/zap"
)

// DashboardAPI is the backend surface the sales dashboard aggregates over.
type DashboardAPI interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	Forecast(ctx context.Context) (*domain.ForecastResponse, error)
}

type DashboardHandler struct {
	backend DashboardAPI
	timeout time.Duration
}

func NewDashboardHandler(backend DashboardAPI, timeout time.Duration) *DashboardHandler {
	return &DashboardHandler{backend: backend, timeout: timeout}
}

// recentOrderCount is how many delivered orders the dashboard lists.
const recentOrderCount = 5

type DashboardResponseDTO struct {
	Summary         dashboard.Summary        `json:"summary"`
	RecentOrders    []domain.Order           `json:"recentOrders"`
	SalesTrend      []dashboard.TrendPoint   `json:"salesTrend"`
	StatusBreakdown map[string]int           `json:"statusBreakdown"`
	ProductProfit   map[string]float64       `json:"productProfit"`
	Forecasts       []domain.ProductForecast `json:"forecasts"`
}

// Get builds the whole dashboard in one response. Product-count and forecast
// fetch failures degrade the dashboard instead of failing it, matching the
// per-view error isolation of the storefront.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.backend.ListOrders(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	totalProducts := -1 // fall back to counted product names
	if products, err := h.backend.ListProducts(ctx); err == nil {
		totalProducts = len(products)
	} else {
		logger.FromContext(ctx).Warn("dashboard product count unavailable", zap.Error(err))
	}

	var forecasts []domain.ProductForecast
	if forecast, err := h.backend.Forecast(ctx); err == nil {
		forecasts = forecast.Forecasts
	} else {
		logger.FromContext(ctx).Warn("dashboard forecast unavailable", zap.Error(err))
	}

	respondJSON(w, r, http.StatusOK, DashboardResponseDTO{
		Summary:         dashboard.BuildSummary(orders, totalProducts),
		RecentOrders:    dashboard.RecentDelivered(orders, recentOrderCount),
		SalesTrend:      dashboard.SalesTrend(orders, forecasts),
		StatusBreakdown: dashboard.StatusBreakdown(orders),
		ProductProfit:   dashboard.ProductProfit(orders),
		Forecasts:       forecasts,
	})
}

// Forecast serves the raw forecast series for the forecast view.
func (h *DashboardHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	forecast, err := h.backend.Forecast(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, forecast)
}

// ExportCSV streams the order book as CSV, one row per order item.
func (h *DashboardHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.backend.ListOrders(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="sales_dashboard.csv"`)
	if err := dashboard.WriteCSV(w, orders); err != nil {
		logger.FromContext(ctx).Error("csv export failed", zap.Error(err))
	}
}
