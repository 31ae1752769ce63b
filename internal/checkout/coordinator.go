package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rjbuenaventura/kusina-pos/internal/cart"
	"github.com/rjbuenaventura/kusina-pos/internal/orderapi"
	"github.com/rjbuenaventura/kusina-pos/internal/pricing"
	pkgerrors "github.com/rjbuenaventura/kusina-pos/pkg/errors"
	"github.com/rjbuenaventura/kusina-pos/pkg/logger"
	"github.com/rjbuenaventura/kusina-pos/pkg/metrics"
	"github.com/rjbuenaventura/kusina-pos/pkg/types"
	"github.com/shopspring/decimal"
)

// State is the coordinator's position in the submit lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Submitter is the single asynchronous boundary of the engine.
type Submitter interface {
	Submit(ctx context.Context, payload orderapi.OrderPayload) (*orderapi.Confirmation, error)
}

// Confirmation is the notice shown to the cashier after a sale. It
// auto-dismisses once its deadline passes.
type Confirmation struct {
	OrderID string
	Total   decimal.Decimal
	Change  decimal.Decimal
	At      time.Time
}

// Failure is the notice left behind by a rejected or failed submission.
type Failure struct {
	Message string
	At      time.Time
}

// Options configures a coordinator.
type Options struct {
	Metrics         *metrics.CheckoutMetrics
	Logger          *logger.Logger
	ConfirmationTTL time.Duration

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Coordinator owns the submit flow for one cart session: it validates
// preconditions, snapshots the order payload, runs the single in-flight
// network call, and interprets the outcome. While a call is in flight a
// repeated submit intent is rejected so one user action never produces
// two orders.
type Coordinator struct {
	submitter  Submitter
	metrics    *metrics.CheckoutMetrics
	logg       *logger.Logger
	now        func() time.Time
	confirmTTL time.Duration

	mu             sync.Mutex
	state          State
	confirmation   *Confirmation
	confirmedUntil time.Time
	failure        *Failure
}

// NewCoordinator builds a coordinator around the order submitter.
func NewCoordinator(submitter Submitter, opts Options) (*Coordinator, error) {
	if submitter == nil {
		return nil, fmt.Errorf("order submitter required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ttl := opts.ConfirmationTTL
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &Coordinator{
		submitter:  submitter,
		metrics:    opts.Metrics,
		logg:       opts.Logger,
		now:        now,
		confirmTTL: ttl,
		state:      StateIdle,
	}, nil
}

// State reports the current machine state. A succeeded sale auto-returns
// to idle once the confirmation notice expires.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSucceeded && c.now().After(c.confirmedUntil) {
		c.state = StateIdle
		c.confirmation = nil
	}
	return c.state
}

// Confirmation returns the active confirmation notice, nil once it has
// auto-dismissed.
func (c *Coordinator) Confirmation() *Confirmation {
	c.State()
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirmation
}

// LastFailure returns the most recent failure notice, nil if the last
// attempt succeeded or none was made.
func (c *Coordinator) LastFailure() *Failure {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failure
}

// Submit validates the cart and draft, snapshots the payload, and runs
// the order call. On success the caller must clear its cart; on failure
// the caller keeps everything so the cashier can correct and retry.
func (c *Coordinator) Submit(ctx context.Context, ledger cart.Cart, draft Draft) (*Confirmation, error) {
	amountPaid, totals, err := validate(ledger, draft)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "an order submission is already in flight")
	}
	c.state = StateSubmitting
	c.failure = nil
	c.confirmation = nil
	c.mu.Unlock()

	payload := buildPayload(ledger, totals, draft, amountPaid)

	start := c.now()
	acked, submitErr := c.submitter.Submit(ctx, payload)
	c.metrics.ObserveDuration(string(draft.PaymentMethod), c.now().Sub(start))

	c.mu.Lock()
	defer c.mu.Unlock()

	if submitErr != nil {
		c.metrics.IncFailure(string(draft.PaymentMethod))
		c.state = StateFailed
		c.failure = &Failure{Message: failureMessage(submitErr), At: c.now()}
		if c.logg != nil {
			c.logg.Error(ctx, "order.submit.failed", submitErr)
		}
		return nil, submitErr
	}

	c.metrics.IncSuccess(string(draft.PaymentMethod))
	confirmation := &Confirmation{
		OrderID: orderID(acked),
		Total:   totals.Total,
		Change:  pricing.Change(amountPaid, totals),
		At:      c.now(),
	}
	c.state = StateSucceeded
	c.confirmation = confirmation
	c.confirmedUntil = c.now().Add(c.confirmTTL)
	if c.logg != nil {
		c.logg.Info(c.logg.WithField(ctx, "order_id", confirmation.OrderID), "order.submit.acknowledged")
	}
	return confirmation, nil
}

// validate enforces the Idle -> Submitting preconditions: a non-empty
// cart, valid order type and payment method, and tender covering the
// total. Insufficient payment blocks submission instead of producing
// negative change.
func validate(ledger cart.Cart, draft Draft) (decimal.Decimal, pricing.Totals, error) {
	if ledger.Len() == 0 {
		return decimal.Zero, pricing.Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "cart has no items")
	}
	if !draft.OrderType.Valid() {
		return decimal.Zero, pricing.Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "order type must be dine-in or take-out")
	}
	if !draft.PaymentMethod.Valid() {
		return decimal.Zero, pricing.Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "payment method must be cash or gcash")
	}

	amountPaid, err := pricing.ParseAmountPaid(draft.AmountPaid)
	if err != nil {
		return decimal.Zero, pricing.Totals{}, err
	}

	totals := pricing.Compute(ledger)
	if !pricing.Sufficient(amountPaid, totals) {
		return decimal.Zero, pricing.Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "amount paid is less than the total due")
	}
	return amountPaid, totals, nil
}

func buildPayload(ledger cart.Cart, totals pricing.Totals, draft Draft, amountPaid decimal.Decimal) orderapi.OrderPayload {
	lines := ledger.Lines()
	items := make([]orderapi.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, orderapi.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     types.NewMoney(line.UnitPrice),
		})
	}

	percent := 0
	if p := ledger.DiscountPercent(); p != nil {
		percent = *p
	}

	return orderapi.OrderPayload{
		OrderItems:      items,
		DiscountPercent: percent,
		TotalAmount:     types.NewMoney(totals.Total),
		AmountPaid:      types.NewMoney(amountPaid),
		PaymentMethod:   string(draft.PaymentMethod),
		OrderType:       string(draft.OrderType),
		Change:          types.NewMoney(pricing.Change(amountPaid, totals)),
	}
}

func failureMessage(err error) string {
	if typed := pkgerrors.As(err); typed != nil && typed.Message() != "" {
		return typed.Message()
	}
	return "order submission failed"
}

func orderID(acked *orderapi.Confirmation) string {
	if acked == nil {
		return ""
	}
	return acked.OrderID.String()
}
