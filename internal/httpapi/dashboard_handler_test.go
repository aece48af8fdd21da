package httpapi

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/krishma/storefront/internal/domain"
)

type dashboardAPIMock struct {
	orders      []domain.Order
	products    []domain.Product
	forecast    *domain.ForecastResponse
	ordersErr   error
	productsErr error
	forecastErr error
}

func (m *dashboardAPIMock) ListOrders(context.Context) ([]domain.Order, error) {
	if m.ordersErr != nil {
		return nil, m.ordersErr
	}
	return m.orders, nil
}

func (m *dashboardAPIMock) ListProducts(context.Context) ([]domain.Product, error) {
	if m.productsErr != nil {
		return nil, m.productsErr
	}
	return m.products, nil
}

func (m *dashboardAPIMock) Forecast(context.Context) (*domain.ForecastResponse, error) {
	if m.forecastErr != nil {
		return nil, m.forecastErr
	}
	return m.forecast, nil
}

func dashboardFixture() *dashboardAPIMock {
	return &dashboardAPIMock{
		orders: []domain.Order{
			{
				ID:        "ORD-1",
				Customer:  &domain.OrderCustomer{ID: "c1", Name: "Jane", Email: "jane@example.com"},
				Status:    domain.OrderStatusDelivered,
				OrderDate: "2025-03-10",
				Total:     120,
				Items:     []domain.OrderItem{{Name: "Milk 1L", Quantity: 2, Price: 60}},
			},
			{
				ID:        "ORD-2",
				Customer:  &domain.OrderCustomer{ID: "c2", Name: "Bob", Email: "bob@example.com"},
				Status:    domain.OrderStatusPending,
				OrderDate: "2025-03-11",
				Total:     450,
				Items:     []domain.OrderItem{{Name: "Ghee 500ml", Quantity: 1, Price: 450}},
			},
		},
		products: []domain.Product{testMilk, testGhee},
		forecast: &domain.ForecastResponse{
			Forecasts: []domain.ProductForecast{
				{Product: "Milk 1L", DailyPredictedSales: []domain.DailySale{{Date: "2025-03-12", Quantity: 4}}},
			},
		},
	}
}

func TestDashboardGet_Success(t *testing.T) {
	handler := NewDashboardHandler(dashboardFixture(), 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.Get(recorder, withSession(httptest.NewRequest("GET", "/api/v1/admin/dashboard", nil)))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, recorder.Code)
	}

	var response DashboardResponseDTO
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// Only the delivered ORD-1 counts toward sales.
	if response.Summary.TotalSales != 120 {
		t.Errorf("expected totalSales 120, got %f", response.Summary.TotalSales)
	}
	if response.Summary.TotalOrders != 1 {
		t.Errorf("expected 1 delivered order, got %d", response.Summary.TotalOrders)
	}
	if response.Summary.TotalProducts != 2 {
		t.Errorf("expected catalog size 2, got %d", response.Summary.TotalProducts)
	}
	if len(response.RecentOrders) != 1 {
		t.Errorf("expected 1 recent order, got %d", len(response.RecentOrders))
	}
	if response.StatusBreakdown[domain.OrderStatusPending] != 1 {
		t.Errorf("expected 1 pending order in breakdown")
	}
	if len(response.Forecasts) != 1 {
		t.Errorf("expected 1 forecast series, got %d", len(response.Forecasts))
	}
}

func TestDashboardGet_TrendIncludesForecastSeries(t *testing.T) {
	handler := NewDashboardHandler(dashboardFixture(), 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.Get(recorder, withSession(httptest.NewRequest("GET", "/api/v1/admin/dashboard", nil)))

	var response struct {
		SalesTrend []map[string]interface{} `json:"salesTrend"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.SalesTrend) != 2 {
		t.Fatalf("expected 2 trend points, got %d", len(response.SalesTrend))
	}

	last := response.SalesTrend[1]
	if last["date"] != "2025-03-12" {
		t.Errorf("expected last point 2025-03-12, got %v", last["date"])
	}
	if last["Milk 1L_pred"] != 4.0 {
		t.Errorf("expected predicted series value 4, got %v", last["Milk 1L_pred"])
	}
}

func TestDashboardGet_OrdersFailureFails(t *testing.T) {
	mock := dashboardFixture()
	mock.ordersErr = fmt.Errorf("backend down")
	handler := NewDashboardHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.Get(recorder, withSession(httptest.NewRequest("GET", "/api/v1/admin/dashboard", nil)))

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("expected %d, got %d", http.StatusInternalServerError, recorder.Code)
	}
}

func TestDashboardGet_ForecastFailureDegrades(t *testing.T) {
	mock := dashboardFixture()
	mock.forecastErr = fmt.Errorf("model offline")
	mock.productsErr = fmt.Errorf("also down")
	handler := NewDashboardHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.Get(recorder, withSession(httptest.NewRequest("GET", "/api/v1/admin/dashboard", nil)))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, recorder.Code)
	}

	var response DashboardResponseDTO
	json.NewDecoder(recorder.Body).Decode(&response)
	if len(response.Forecasts) != 0 {
		t.Errorf("expected no forecasts, got %d", len(response.Forecasts))
	}
	// Falls back to counting distinct product names in delivered orders.
	if response.Summary.TotalProducts != 1 {
		t.Errorf("expected fallback product count 1, got %d", response.Summary.TotalProducts)
	}
}

func TestDashboardForecast_Success(t *testing.T) {
	handler := NewDashboardHandler(dashboardFixture(), 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.Forecast(recorder, withSession(httptest.NewRequest("GET", "/api/v1/admin/forecast", nil)))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, recorder.Code)
	}

	var response domain.ForecastResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if len(response.Forecasts) != 1 {
		t.Errorf("expected 1 forecast series, got %d", len(response.Forecasts))
	}
}

func TestDashboardExportCSV(t *testing.T) {
	handler := NewDashboardHandler(dashboardFixture(), 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.ExportCSV(recorder, withSession(httptest.NewRequest("GET", "/api/v1/admin/dashboard/export", nil)))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, recorder.Code)
	}
	if ct := recorder.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("expected text/csv content type, got '%s'", ct)
	}
	if cd := recorder.Header().Get("Content-Disposition"); !strings.Contains(cd, "sales_dashboard.csv") {
		t.Errorf("expected csv filename in disposition, got '%s'", cd)
	}

	records, err := csv.NewReader(recorder.Body).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse csv: %v", err)
	}
	// Header plus one row per order item.
	if len(records) != 3 {
		t.Fatalf("expected 3 csv records, got %d", len(records))
	}
}
