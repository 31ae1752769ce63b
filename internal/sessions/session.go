package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rjbuenaventura/kusina-pos/internal/cart"
	"github.com/rjbuenaventura/kusina-pos/internal/catalog"
	"github.com/rjbuenaventura/kusina-pos/internal/checkout"
)

// Session is one cashier lane: a single active cart, the payment draft,
// and the coordinator that owns its submit flow. The cart is created
// empty when the session opens and cleared only by a successful submit.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu    sync.Mutex
	cart  cart.Cart
	draft checkout.Draft
	coord *checkout.Coordinator
}

// Cart returns the current ledger snapshot.
func (s *Session) Cart() cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// Draft returns the current payment draft.
func (s *Session) Draft() checkout.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Coordinator exposes the submit state machine for status reads.
func (s *Session) Coordinator() *checkout.Coordinator {
	return s.coord
}

// AddItem routes an add intent through the availability policy.
func (s *Session) AddItem(item catalog.Item) (cart.Cart, cart.AddOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, outcome := s.cart.AddItem(item)
	s.cart = next
	return next, outcome
}

// Increment raises an existing line by one unit.
func (s *Session) Increment(productID int64) (cart.Cart, cart.AddOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, outcome := s.cart.IncrementLine(productID)
	s.cart = next
	return next, outcome
}

// Decrement lowers a line by one unit, dropping it at zero.
func (s *Session) Decrement(productID int64) cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = s.cart.DecrementLine(productID)
	return s.cart
}

// SetDiscount stores the cashier-entered discount percent.
func (s *Session) SetDiscount(percent *int) cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = s.cart.SetDiscountPercent(percent)
	return s.cart
}

// SetDraft stores the payment fields ahead of submit. Values are kept
// verbatim; validation happens at submit time.
func (s *Session) SetDraft(draft checkout.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = draft
}

// Submit snapshots the cart and draft and hands them to the coordinator.
// The session lock is not held during the network call, so the cashier
// can keep editing; those edits never reach the in-flight payload. On
// acknowledgement the cart and draft reset; on failure both are left
// exactly as they were.
func (s *Session) Submit(ctx context.Context) (*checkout.Confirmation, error) {
	s.mu.Lock()
	ledger := s.cart
	draft := s.draft
	s.mu.Unlock()

	confirmation, err := s.coord.Submit(ctx, ledger, draft)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cart = s.cart.Clear()
	s.draft = checkout.DefaultDraft()
	s.mu.Unlock()
	return confirmation, nil
}
