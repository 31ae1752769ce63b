package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rjbuenaventura/kusina-pos/pkg/config"
	pkgerrors "github.com/rjbuenaventura/kusina-pos/pkg/errors"
	"github.com/rjbuenaventura/kusina-pos/pkg/types"
)

// OrderItem is one submitted line: the product, the quantity and the
// unit price snapshot taken when the product entered the cart.
type OrderItem struct {
	ProductID int64       `json:"product_id"`
	Quantity  int         `json:"quantity"`
	Price     types.Money `json:"price"`
}

// OrderPayload is the immutable order snapshot posted to the back
// office. It is built once per submit attempt; cart mutations made while
// the call is in flight never reach it.
type OrderPayload struct {
	OrderItems      []OrderItem `json:"order_items"`
	DiscountPercent int         `json:"discount_percent"`
	TotalAmount     types.Money `json:"total_amount"`
	AmountPaid      types.Money `json:"amount_paid"`
	PaymentMethod   string      `json:"payment_method"`
	OrderType       string      `json:"order_type"`
	Change          types.Money `json:"change"`
}

// Confirmation is the back office acknowledgement of a created order.
type Confirmation struct {
	OrderID json.Number `json:"order_id"`
}

// Client submits orders to the back office.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds an order client against the configured back office.
func NewClient(cfg config.BackOfficeConfig) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("back office base url required")
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Submit posts the order and interprets the acknowledgement. A rejection
// carries the back office message verbatim so the cashier sees exactly
// what the authority said; a transport fault is reported the same way a
// rejection is, with the cart left for the caller to retry.
func (c *Client) Submit(ctx context.Context, payload OrderPayload) (*Confirmation, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode order payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build order request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submit order")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return decodeConfirmation(resp)
	}
	return nil, decodeRejection(resp)
}

func decodeConfirmation(resp *http.Response) (*Confirmation, error) {
	var wire struct {
		Data    *Confirmation `json:"data"`
		OrderID json.Number   `json:"order_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode order confirmation")
	}
	if wire.Data != nil {
		return wire.Data, nil
	}
	return &Confirmation{OrderID: wire.OrderID}, nil
}

func decodeRejection(resp *http.Response) error {
	var wire struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	message := ""
	if err := json.NewDecoder(resp.Body).Decode(&wire); err == nil {
		message = wire.Message
		if message == "" {
			message = wire.Error.Message
		}
	}
	if message == "" {
		message = fmt.Sprintf("order rejected with status %d", resp.StatusCode)
	}
	return pkgerrors.New(pkgerrors.CodeRejected, message)
}
