package controllers

import (
	"time"

	"github.com/rjbuenaventura/kusina-pos/internal/cart"
	"github.com/rjbuenaventura/kusina-pos/internal/checkout"
	"github.com/rjbuenaventura/kusina-pos/internal/pricing"
	"github.com/rjbuenaventura/kusina-pos/internal/sessions"
	"github.com/rjbuenaventura/kusina-pos/pkg/types"
)

type lineView struct {
	ProductID         int64       `json:"product_id"`
	Name              string      `json:"name"`
	UnitPrice         types.Money `json:"unit_price"`
	ImagePath         string      `json:"image_path,omitempty"`
	Quantity          int         `json:"quantity"`
	RemainingCapacity int         `json:"remaining_capacity"`
}

type totalsView struct {
	Subtotal       types.Money `json:"subtotal"`
	DiscountAmount types.Money `json:"discount_amount"`
	Total          types.Money `json:"total"`
}

type cartView struct {
	Lines           []lineView `json:"lines"`
	DiscountPercent *int       `json:"discount_percent"`
	Totals          totalsView `json:"totals"`
}

type draftView struct {
	OrderType     string `json:"order_type"`
	PaymentMethod string `json:"payment_method"`
	AmountPaid    string `json:"amount_paid"`
}

type confirmationView struct {
	OrderID string      `json:"order_id"`
	Total   types.Money `json:"total"`
	Change  types.Money `json:"change"`
	At      time.Time   `json:"at"`
}

type failureView struct {
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type checkoutView struct {
	State        string            `json:"state"`
	Confirmation *confirmationView `json:"confirmation,omitempty"`
	Failure      *failureView      `json:"failure,omitempty"`
}

type sessionEnvelope struct {
	SessionID string       `json:"session_id"`
	CreatedAt time.Time    `json:"created_at"`
	Cart      cartView     `json:"cart"`
	Draft     draftView    `json:"draft"`
	Checkout  checkoutView `json:"checkout"`
}

type cartResultView struct {
	Outcome string   `json:"outcome,omitempty"`
	Cart    cartView `json:"cart"`
}

func newCartView(ledger cart.Cart) cartView {
	lines := ledger.Lines()
	views := make([]lineView, 0, len(lines))
	for _, line := range lines {
		views = append(views, lineView{
			ProductID:         line.ProductID,
			Name:              line.Name,
			UnitPrice:         types.NewMoney(line.UnitPrice),
			ImagePath:         line.ImagePath,
			Quantity:          line.Quantity,
			RemainingCapacity: line.RemainingCapacity(),
		})
	}

	totals := pricing.Compute(ledger)
	return cartView{
		Lines:           views,
		DiscountPercent: ledger.DiscountPercent(),
		Totals: totalsView{
			Subtotal:       types.NewMoney(totals.Subtotal),
			DiscountAmount: types.NewMoney(totals.DiscountAmount),
			Total:          types.NewMoney(totals.Total),
		},
	}
}

func newDraftView(draft checkout.Draft) draftView {
	return draftView{
		OrderType:     string(draft.OrderType),
		PaymentMethod: string(draft.PaymentMethod),
		AmountPaid:    draft.AmountPaid,
	}
}

func newCheckoutView(coord *checkout.Coordinator) checkoutView {
	view := checkoutView{State: string(coord.State())}
	if confirmation := coord.Confirmation(); confirmation != nil {
		view.Confirmation = &confirmationView{
			OrderID: confirmation.OrderID,
			Total:   types.NewMoney(confirmation.Total),
			Change:  types.NewMoney(confirmation.Change),
			At:      confirmation.At,
		}
	}
	if failure := coord.LastFailure(); failure != nil {
		view.Failure = &failureView{
			Message: failure.Message,
			At:      failure.At,
		}
	}
	return view
}

func newSessionEnvelope(session *sessions.Session) sessionEnvelope {
	return sessionEnvelope{
		SessionID: session.ID.String(),
		CreatedAt: session.CreatedAt,
		Cart:      newCartView(session.Cart()),
		Draft:     newDraftView(session.Draft()),
		Checkout:  newCheckoutView(session.Coordinator()),
	}
}
