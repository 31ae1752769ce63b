package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rjbuenaventura/kusina-pos/internal/catalog"
	"github.com/rjbuenaventura/kusina-pos/internal/checkout"
	"github.com/rjbuenaventura/kusina-pos/internal/orderapi"
	"github.com/rjbuenaventura/kusina-pos/internal/sessions"
	"github.com/rjbuenaventura/kusina-pos/pkg/config"
	pkgerrors "github.com/rjbuenaventura/kusina-pos/pkg/errors"
	"github.com/rjbuenaventura/kusina-pos/pkg/types"
	"github.com/shopspring/decimal"
)

type stubProvider struct {
	items map[string][]catalog.Item
}

func (s *stubProvider) List(ctx context.Context, category string) ([]catalog.Item, error) {
	if category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	return s.items[category], nil
}

func (s *stubProvider) Find(ctx context.Context, category string, productID int64) (*catalog.Item, error) {
	for _, item := range s.items[category] {
		if item.ID == productID {
			found := item
			return &found, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found in category")
}

type stubSubmitter struct {
	response *orderapi.Confirmation
	err      error
}

func (s *stubSubmitter) Submit(ctx context.Context, payload orderapi.OrderPayload) (*orderapi.Confirmation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func newTestServer(t *testing.T, submitter checkout.Submitter) *httptest.Server {
	t.Helper()

	provider := &stubProvider{items: map[string][]catalog.Item{
		"mains": {
			{ID: 1, Name: "Rice", UnitPrice: types.NewMoney(decimal.NewFromInt(20)), Availability: catalog.StockTracked{Stock: 2}},
			{ID: 2, Name: "Adobo", UnitPrice: types.NewMoney(decimal.NewFromInt(150)), Availability: catalog.QuantityTracked{AvailableQty: 10}},
		},
	}}

	registry, err := sessions.NewRegistry(func() (*checkout.Coordinator, error) {
		return checkout.NewCoordinator(submitter, checkout.Options{})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := &config.Config{App: config.AppConfig{Env: "test", Port: "0"}}
	server := httptest.NewServer(NewRouter(cfg, nil, nil, provider, registry, nil))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, decoded
}

func openSession(t *testing.T, server *httptest.Server) string {
	t.Helper()
	status, body := doJSON(t, http.MethodPost, server.URL+"/api/v1/sessions", nil)
	if status != http.StatusCreated {
		t.Fatalf("open session status = %d body = %v", status, body)
	}
	data := body["data"].(map[string]any)
	return data["session_id"].(string)
}

func TestHealthLive(t *testing.T) {
	server := newTestServer(t, &stubSubmitter{})
	status, body := doJSON(t, http.MethodGet, server.URL+"/health/live", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	data := body["data"].(map[string]any)
	if data["status"] != "live" {
		t.Fatalf("body = %v", body)
	}
}

func TestCatalogListing(t *testing.T) {
	server := newTestServer(t, &stubSubmitter{})

	status, body := doJSON(t, http.MethodGet, server.URL+"/api/v1/catalog?category=mains", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d body = %v", status, body)
	}
	data := body["data"].(map[string]any)
	items := data["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	status, body = doJSON(t, http.MethodGet, server.URL+"/api/v1/catalog", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("missing category status = %d body = %v", status, body)
	}
}

func TestCartFlowStopsAtStockCeiling(t *testing.T) {
	server := newTestServer(t, &stubSubmitter{})
	sessionID := openSession(t, server)
	base := server.URL + "/api/v1/sessions/" + sessionID

	addBody := map[string]any{"category": "mains", "product_id": 1}
	for i := 0; i < 2; i++ {
		status, body := doJSON(t, http.MethodPost, base+"/cart/items", addBody)
		if status != http.StatusOK {
			t.Fatalf("add status = %d body = %v", status, body)
		}
		data := body["data"].(map[string]any)
		if data["outcome"] != "added" {
			t.Fatalf("outcome = %v", data["outcome"])
		}
	}

	status, body := doJSON(t, http.MethodPost, base+"/cart/items", addBody)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	data := body["data"].(map[string]any)
	if data["outcome"] != "at_limit" {
		t.Fatalf("outcome = %v", data["outcome"])
	}

	cartData := data["cart"].(map[string]any)
	lines := cartData["lines"].([]any)
	line := lines[0].(map[string]any)
	if line["quantity"] != float64(2) {
		t.Fatalf("quantity = %v", line["quantity"])
	}
}

func TestDecrementRemovesLine(t *testing.T) {
	server := newTestServer(t, &stubSubmitter{})
	sessionID := openSession(t, server)
	base := server.URL + "/api/v1/sessions/" + sessionID

	doJSON(t, http.MethodPost, base+"/cart/items", map[string]any{"category": "mains", "product_id": 2})

	status, body := doJSON(t, http.MethodPost, base+"/cart/items/2/decrement", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d body = %v", status, body)
	}
	data := body["data"].(map[string]any)
	cartData := data["cart"].(map[string]any)
	if lines := cartData["lines"].([]any); len(lines) != 0 {
		t.Fatalf("expected empty cart, got %v", lines)
	}
}

func TestDiscountAffectsTotals(t *testing.T) {
	server := newTestServer(t, &stubSubmitter{})
	sessionID := openSession(t, server)
	base := server.URL + "/api/v1/sessions/" + sessionID

	doJSON(t, http.MethodPost, base+"/cart/items", map[string]any{"category": "mains", "product_id": 2})
	doJSON(t, http.MethodPost, base+"/cart/items/2/increment", nil)

	status, body := doJSON(t, http.MethodPut, base+"/cart/discount", map[string]any{"discount_percent": 10})
	if status != http.StatusOK {
		t.Fatalf("status = %d body = %v", status, body)
	}
	data := body["data"].(map[string]any)
	totals := data["cart"].(map[string]any)["totals"].(map[string]any)
	if totals["subtotal"] != float64(300) {
		t.Fatalf("subtotal = %v", totals["subtotal"])
	}
	if totals["discount_amount"] != float64(30) {
		t.Fatalf("discount_amount = %v", totals["discount_amount"])
	}
	if totals["total"] != float64(270) {
		t.Fatalf("total = %v", totals["total"])
	}
}

func TestCheckoutSubmitSuccessResetsSession(t *testing.T) {
	server := newTestServer(t, &stubSubmitter{response: &orderapi.Confirmation{OrderID: "1042"}})
	sessionID := openSession(t, server)
	base := server.URL + "/api/v1/sessions/" + sessionID

	doJSON(t, http.MethodPost, base+"/cart/items", map[string]any{"category": "mains", "product_id": 2})
	status, body := doJSON(t, http.MethodPut, base+"/checkout", map[string]any{
		"order_type":     "dine-in",
		"payment_method": "cash",
		"amount_paid":    "200",
	})
	if status != http.StatusOK {
		t.Fatalf("draft status = %d body = %v", status, body)
	}

	status, body = doJSON(t, http.MethodPost, base+"/checkout/submit", nil)
	if status != http.StatusOK {
		t.Fatalf("submit status = %d body = %v", status, body)
	}
	data := body["data"].(map[string]any)
	checkoutData := data["checkout"].(map[string]any)
	if checkoutData["state"] != "succeeded" {
		t.Fatalf("state = %v", checkoutData["state"])
	}
	confirmation := checkoutData["confirmation"].(map[string]any)
	if confirmation["order_id"] != "1042" {
		t.Fatalf("order_id = %v", confirmation["order_id"])
	}
	if confirmation["change"] != float64(50) {
		t.Fatalf("change = %v", confirmation["change"])
	}

	cartData := data["cart"].(map[string]any)
	if lines := cartData["lines"].([]any); len(lines) != 0 {
		t.Fatalf("cart should reset after submit, got %v", lines)
	}
}

func TestCheckoutSubmitRejectionSurfacesMessage(t *testing.T) {
	server := newTestServer(t, &stubSubmitter{err: pkgerrors.New(pkgerrors.CodeRejected, "insufficient stock for Adobo")})
	sessionID := openSession(t, server)
	base := server.URL + "/api/v1/sessions/" + sessionID

	doJSON(t, http.MethodPost, base+"/cart/items", map[string]any{"category": "mains", "product_id": 2})
	doJSON(t, http.MethodPut, base+"/checkout", map[string]any{
		"order_type":     "dine-in",
		"payment_method": "cash",
		"amount_paid":    "200",
	})

	status, body := doJSON(t, http.MethodPost, base+"/checkout/submit", nil)
	if status != http.StatusConflict {
		t.Fatalf("status = %d body = %v", status, body)
	}
	errBody := body["error"].(map[string]any)
	if errBody["code"] != "ORDER_REJECTED" {
		t.Fatalf("code = %v", errBody["code"])
	}
	if errBody["message"] != "insufficient stock for Adobo" {
		t.Fatalf("message = %v", errBody["message"])
	}

	// cart survives the rejection
	status, body = doJSON(t, http.MethodGet, base, nil)
	if status != http.StatusOK {
		t.Fatalf("get session status = %d", status)
	}
	data := body["data"].(map[string]any)
	cartData := data["cart"].(map[string]any)
	if lines := cartData["lines"].([]any); len(lines) != 1 {
		t.Fatalf("cart should survive rejection, got %v", lines)
	}
	checkoutData := data["checkout"].(map[string]any)
	if checkoutData["state"] != "failed" {
		t.Fatalf("state = %v", checkoutData["state"])
	}
}

func TestUnknownSessionReturnsNotFound(t *testing.T) {
	server := newTestServer(t, &stubSubmitter{})

	status, body := doJSON(t, http.MethodGet, server.URL+"/api/v1/sessions/00000000-0000-0000-0000-000000000001", nil)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d body = %v", status, body)
	}
	errBody := body["error"].(map[string]any)
	if errBody["code"] != "NOT_FOUND" {
		t.Fatalf("code = %v", errBody["code"])
	}
}

func TestSessionCloseDiscardsCart(t *testing.T) {
	server := newTestServer(t, &stubSubmitter{})
	sessionID := openSession(t, server)
	base := server.URL + "/api/v1/sessions/" + sessionID

	doJSON(t, http.MethodPost, base+"/cart/items", map[string]any{"category": "mains", "product_id": 1})

	status, _ := doJSON(t, http.MethodDelete, base, nil)
	if status != http.StatusOK {
		t.Fatalf("close status = %d", status)
	}

	status, _ = doJSON(t, http.MethodGet, base, nil)
	if status != http.StatusNotFound {
		t.Fatalf("closed session still reachable: %d", status)
	}
}
