package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/krishma/storefront/internal/domain"
)

type orderAdminMock struct {
	orders    []domain.Order
	err       error
	gotID     string
	gotStatus string
}

func (m *orderAdminMock) ListOrders(context.Context) ([]domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func (m *orderAdminMock) UpdateOrderStatus(_ context.Context, id, status string) error {
	if m.err != nil {
		return m.err
	}
	m.gotID = id
	m.gotStatus = status
	return nil
}

func adminTestOrders() []domain.Order {
	return []domain.Order{
		{
			ID:       "ORD-1",
			Customer: &domain.OrderCustomer{Name: "Jane", Email: "jane@example.com"},
			Status:   domain.OrderStatusDelivered,
			Items:    []domain.OrderItem{{Name: "Milk 1L", Quantity: 2}},
		},
		{
			ID:       "ORD-2",
			Customer: &domain.OrderCustomer{Name: "Bob", Email: "bob@example.com"},
			Status:   domain.OrderStatusPending,
			Items:    []domain.OrderItem{{Name: "Ghee 500ml", Quantity: 1}},
		},
	}
}

func TestAdminListOrders_All(t *testing.T) {
	handler := NewAdminOrdersHandler(&orderAdminMock{orders: adminTestOrders()}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.List(recorder, withSession(httptest.NewRequest("GET", "/api/v1/admin/orders", nil)))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, recorder.Code)
	}

	var response []domain.Order
	json.NewDecoder(recorder.Body).Decode(&response)
	if len(response) != 2 {
		t.Errorf("expected 2 orders, got %d", len(response))
	}
}

func TestAdminListOrders_SearchByCustomer(t *testing.T) {
	handler := NewAdminOrdersHandler(&orderAdminMock{orders: adminTestOrders()}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.List(recorder, withSession(httptest.NewRequest("GET", "/api/v1/admin/orders?q=jane", nil)))

	var response []domain.Order
	json.NewDecoder(recorder.Body).Decode(&response)
	if len(response) != 1 || response[0].ID != "ORD-1" {
		t.Errorf("expected only ORD-1, got %v", response)
	}
}

func TestAdminListOrders_StatusFilter(t *testing.T) {
	handler := NewAdminOrdersHandler(&orderAdminMock{orders: adminTestOrders()}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.List(recorder, withSession(httptest.NewRequest("GET", "/api/v1/admin/orders?status=pending", nil)))

	var response []domain.Order
	json.NewDecoder(recorder.Body).Decode(&response)
	if len(response) != 1 || response[0].ID != "ORD-2" {
		t.Errorf("expected only ORD-2, got %v", response)
	}
}

func TestAdminListOrders_EmptyIsArrayNotNull(t *testing.T) {
	handler := NewAdminOrdersHandler(&orderAdminMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.List(recorder, withSession(httptest.NewRequest("GET", "/api/v1/admin/orders", nil)))

	var raw json.RawMessage
	if err := json.Unmarshal(recorder.Body.Bytes(), &raw); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if string(raw) == "null" {
		t.Error("expected empty JSON array [], got null")
	}
}

func TestAdminUpdateStatus_Success(t *testing.T) {
	mock := &orderAdminMock{}
	handler := NewAdminOrdersHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	body := strings.NewReader(`{"status":"shipped"}`)
	request := withSession(httptest.NewRequest("PUT", "/api/v1/admin/orders/ORD-1", body))
	request = withURLParam(request, "order_id", "ORD-1")

	handler.UpdateStatus(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, recorder.Code)
	}
	if mock.gotID != "ORD-1" || mock.gotStatus != "shipped" {
		t.Errorf("expected ORD-1/shipped forwarded, got %s/%s", mock.gotID, mock.gotStatus)
	}
}

func TestAdminUpdateStatus_InvalidStatus(t *testing.T) {
	handler := NewAdminOrdersHandler(&orderAdminMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	body := strings.NewReader(`{"status":"teleported"}`)
	request := withSession(httptest.NewRequest("PUT", "/api/v1/admin/orders/ORD-1", body))
	request = withURLParam(request, "order_id", "ORD-1")

	handler.UpdateStatus(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "invalid_status" {
		t.Errorf("expected 'invalid_status', got '%s'", response.Code)
	}
}

func TestAdminUpdateStatus_BackendError(t *testing.T) {
	handler := NewAdminOrdersHandler(&orderAdminMock{err: fmt.Errorf("backend down")}, 5*time.Second)

	recorder := httptest.NewRecorder()
	body := strings.NewReader(`{"status":"shipped"}`)
	request := withSession(httptest.NewRequest("PUT", "/api/v1/admin/orders/ORD-1", body))
	request = withURLParam(request, "order_id", "ORD-1")

	handler.UpdateStatus(recorder, request)

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("expected %d, got %d", http.StatusInternalServerError, recorder.Code)
	}
}
