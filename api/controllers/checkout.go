package controllers

import (
	"net/http"

	"github.com/rjbuenaventura/kusina-pos/api/responses"
	"github.com/rjbuenaventura/kusina-pos/api/validators"
	"github.com/rjbuenaventura/kusina-pos/internal/checkout"
	"github.com/rjbuenaventura/kusina-pos/internal/sessions"
	"github.com/rjbuenaventura/kusina-pos/pkg/logger"
)

type checkoutDraftRequest struct {
	OrderType     string `json:"order_type" validate:"required,oneof=dine-in take-out"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash gcash"`
	AmountPaid    string `json:"amount_paid"`
}

// CheckoutDraft stores the payment fields ahead of submit. Amount paid is
// accepted verbatim; it is validated when the cashier confirms.
func CheckoutDraft(registry *sessions.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutDraftRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session.SetDraft(checkout.Draft{
			OrderType:     checkout.OrderType(payload.OrderType),
			PaymentMethod: checkout.PaymentMethod(payload.PaymentMethod),
			AmountPaid:    payload.AmountPaid,
		})
		responses.WriteSuccess(w, newDraftView(session.Draft()))
	}
}

// CheckoutStatus reports the submit machine state and any active notice.
func CheckoutStatus(registry *sessions.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCheckoutView(session.Coordinator()))
	}
}

// CheckoutSubmit confirms the sale. Success returns the confirmation and
// the reset session; any failure leaves cart and draft untouched for the
// cashier to correct and retry.
func CheckoutSubmit(registry *sessions.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithSessionID(ctx, session.ID.String())
		}

		if _, err := session.Submit(ctx); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionEnvelope(session))
	}
}
