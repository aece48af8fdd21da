package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/krishma/storefront/internal/auth"
	"github.com/krishma/storefront/internal/domain"
)

type customerAPIMock struct {
	orders   []domain.Order
	profile  *domain.Customer
	err      error
	review   *domain.Review
	gotEmail string
}

func (m *customerAPIMock) OrdersByCustomer(_ context.Context, email string) ([]domain.Order, error) {
	m.gotEmail = email
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func (m *customerAPIMock) SubmitReview(_ context.Context, review *domain.Review) error {
	if m.err != nil {
		return m.err
	}
	m.review = review
	return nil
}

func (m *customerAPIMock) CustomerProfile(_ context.Context, email string) (*domain.Customer, error) {
	m.gotEmail = email
	if m.err != nil {
		return nil, m.err
	}
	return m.profile, nil
}

func (m *customerAPIMock) UpdateCustomerProfile(_ context.Context, email string, _ *domain.Customer) error {
	m.gotEmail = email
	return m.err
}

func customerRequest(method, target string, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	r = withSession(r)
	return withIdentity(r, &auth.Identity{Email: "jane@example.com", Name: "Jane", Role: auth.RoleCustomer})
}

func TestCustomerListOrders_UsesIdentityEmail(t *testing.T) {
	mock := &customerAPIMock{orders: []domain.Order{
		{ID: "ORD-1", Items: []domain.OrderItem{{Name: "Milk 1L", Quantity: 2}}},
		{ID: "ORD-2", Items: []domain.OrderItem{{Name: "Ghee 500ml", Quantity: 1}}},
	}}
	handler := NewCustomerHandler(mock, &catalogServiceMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.ListOrders(recorder, customerRequest("GET", "/api/v1/orders", ""))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, recorder.Code)
	}
	if mock.gotEmail != "jane@example.com" {
		t.Errorf("expected identity email forwarded, got '%s'", mock.gotEmail)
	}

	var response []domain.Order
	json.NewDecoder(recorder.Body).Decode(&response)
	if len(response) != 2 {
		t.Errorf("expected 2 orders, got %d", len(response))
	}
}

func TestCustomerListOrders_SearchByItemName(t *testing.T) {
	mock := &customerAPIMock{orders: []domain.Order{
		{ID: "ORD-1", Items: []domain.OrderItem{{Name: "Milk 1L", Quantity: 2}}},
		{ID: "ORD-2", Items: []domain.OrderItem{{Name: "Ghee 500ml", Quantity: 1}}},
	}}
	handler := NewCustomerHandler(mock, &catalogServiceMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.ListOrders(recorder, customerRequest("GET", "/api/v1/orders?q=milk", ""))

	var response []domain.Order
	json.NewDecoder(recorder.Body).Decode(&response)
	if len(response) != 1 || response[0].ID != "ORD-1" {
		t.Errorf("expected only ORD-1, got %v", response)
	}
}

func TestSubmitReview_Success(t *testing.T) {
	mock := &customerAPIMock{}
	catalogMock := &catalogServiceMock{products: []domain.Product{testMilk}}
	handler := NewCustomerHandler(mock, catalogMock, 5*time.Second)

	recorder := httptest.NewRecorder()
	body := `{"productId":"p-milk","rating":5,"title":"Great","comment":"Very fresh"}`
	handler.SubmitReview(recorder, customerRequest("POST", "/api/v1/reviews", body))

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d", http.StatusCreated, recorder.Code)
	}
	if mock.review == nil {
		t.Fatal("expected review submitted")
	}
	if mock.review.Status != domain.ReviewStatusPending {
		t.Errorf("expected pending status, got '%s'", mock.review.Status)
	}
	if mock.review.ProductName != "Milk 1L" {
		t.Errorf("expected product name resolved, got '%s'", mock.review.ProductName)
	}
	if mock.review.CustomerName != "Jane" {
		t.Errorf("expected customer name from identity, got '%s'", mock.review.CustomerName)
	}
}

func TestSubmitReview_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"missing product", `{"rating":5,"title":"Great","comment":"Fresh"}`, "invalid_product_id"},
		{"rating too low", `{"productId":"p-milk","rating":0,"title":"Great","comment":"Fresh"}`, "invalid_rating"},
		{"rating too high", `{"productId":"p-milk","rating":6,"title":"Great","comment":"Fresh"}`, "invalid_rating"},
		{"missing title", `{"productId":"p-milk","rating":5,"comment":"Fresh"}`, "invalid_title"},
		{"missing comment", `{"productId":"p-milk","rating":5,"title":"Great"}`, "invalid_comment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &customerAPIMock{}
			handler := NewCustomerHandler(mock, &catalogServiceMock{products: []domain.Product{testMilk}}, 5*time.Second)

			recorder := httptest.NewRecorder()
			handler.SubmitReview(recorder, customerRequest("POST", "/api/v1/reviews", tt.body))

			if recorder.Code != http.StatusBadRequest {
				t.Fatalf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
			}

			var response ErrorResponse
			json.NewDecoder(recorder.Body).Decode(&response)
			if response.Code != tt.code {
				t.Errorf("expected '%s', got '%s'", tt.code, response.Code)
			}
			if mock.review != nil {
				t.Error("expected no backend call on validation failure")
			}
		})
	}
}

func TestSubmitReview_UnknownProduct(t *testing.T) {
	handler := NewCustomerHandler(&customerAPIMock{}, &catalogServiceMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	body := `{"productId":"p-missing","rating":5,"title":"Great","comment":"Fresh"}`
	handler.SubmitReview(recorder, customerRequest("POST", "/api/v1/reviews", body))

	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestGetProfile_Success(t *testing.T) {
	mock := &customerAPIMock{profile: &domain.Customer{Name: "Jane", Email: "jane@example.com"}}
	handler := NewCustomerHandler(mock, &catalogServiceMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.GetProfile(recorder, customerRequest("GET", "/api/v1/profile", ""))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, recorder.Code)
	}
	if mock.gotEmail != "jane@example.com" {
		t.Errorf("expected identity email forwarded, got '%s'", mock.gotEmail)
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	mock := &customerAPIMock{}
	handler := NewCustomerHandler(mock, &catalogServiceMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	body := `{"name":"Jane D","phone":"555-0101"}`
	handler.UpdateProfile(recorder, customerRequest("PUT", "/api/v1/profile", body))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, recorder.Code)
	}
	if mock.gotEmail != "jane@example.com" {
		t.Errorf("expected identity email forwarded, got '%s'", mock.gotEmail)
	}
}
