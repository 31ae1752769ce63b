package orderapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rjbuenaventura/kusina-pos/pkg/config"
	pkgerrors "github.com/rjbuenaventura/kusina-pos/pkg/errors"
	"github.com/rjbuenaventura/kusina-pos/pkg/types"
	"github.com/shopspring/decimal"
)

func samplePayload() OrderPayload {
	return OrderPayload{
		OrderItems: []OrderItem{
			{ProductID: 1, Quantity: 2, Price: types.NewMoney(decimal.NewFromInt(100))},
		},
		DiscountPercent: 10,
		TotalAmount:     types.NewMoney(decimal.NewFromInt(180)),
		AmountPaid:      types.NewMoney(decimal.NewFromInt(200)),
		PaymentMethod:   "cash",
		OrderType:       "dine-in",
		Change:          types.NewMoney(decimal.NewFromInt(20)),
	}
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(config.BackOfficeConfig{BaseURL: baseURL, Timeout: time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client
}

func TestSubmitAcknowledged(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"order_id":1042}}`))
	}))
	defer server.Close()

	confirmation, err := newTestClient(t, server.URL).Submit(context.Background(), samplePayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if confirmation.OrderID.String() != "1042" {
		t.Fatalf("order id = %s", confirmation.OrderID)
	}

	if got := received["payment_method"]; got != "cash" {
		t.Fatalf("payment_method = %v", got)
	}
	if got := received["total_amount"]; got != float64(180) {
		t.Fatalf("total_amount = %v", got)
	}
	items, ok := received["order_items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("order_items = %v", received["order_items"])
	}
}

func TestSubmitAcknowledgedBareShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"order_id":"77"}`))
	}))
	defer server.Close()

	confirmation, err := newTestClient(t, server.URL).Submit(context.Background(), samplePayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if confirmation.OrderID.String() != "77" {
		t.Fatalf("order id = %s", confirmation.OrderID)
	}
}

func TestSubmitRejectionCarriesMessageVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"insufficient stock for Rice"}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).Submit(context.Background(), samplePayload())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeRejected {
		t.Fatalf("expected rejection, got %v", err)
	}
	if typed.Message() != "insufficient stock for Rice" {
		t.Fatalf("message = %q", typed.Message())
	}
}

func TestSubmitRejectionNestedErrorShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"order items are required"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).Submit(context.Background(), samplePayload())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Message() != "order items are required" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSubmitRejectionWithoutBodyFallsBackToStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).Submit(context.Background(), samplePayload())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeRejected {
		t.Fatalf("expected rejection, got %v", err)
	}
	if typed.Message() != "order rejected with status 500" {
		t.Fatalf("message = %q", typed.Message())
	}
}

func TestSubmitNetworkFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestClient(t, server.URL).Submit(context.Background(), samplePayload())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
