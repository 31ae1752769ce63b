package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rjbuenaventura/kusina-pos/api/responses"
	"github.com/rjbuenaventura/kusina-pos/api/validators"
	"github.com/rjbuenaventura/kusina-pos/internal/sessions"
	pkgerrors "github.com/rjbuenaventura/kusina-pos/pkg/errors"
	"github.com/rjbuenaventura/kusina-pos/pkg/logger"
)

type addItemRequest struct {
	Category  string `json:"category" validate:"required"`
	ProductID int64  `json:"product_id" validate:"required,min=1"`
}

type setDiscountRequest struct {
	DiscountPercent *int `json:"discount_percent"`
}

// CartAddItem resolves the tapped product against the category listing
// and routes it through the availability policy. A blocked add is still a
// 200: the outcome field tells the terminal what messaging to show.
func CartAddItem(registry *sessions.Registry, provider CatalogProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if provider == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog provider unavailable"))
			return
		}

		session, err := sessionFromRequest(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := provider.Find(r.Context(), payload.Category, payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ledger, outcome := session.AddItem(*item)
		responses.WriteSuccess(w, cartResultView{
			Outcome: string(outcome),
			Cart:    newCartView(ledger),
		})
	}
}

// CartIncrement raises an existing line by one unit.
func CartIncrement(registry *sessions.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, productID, err := sessionLineFromRequest(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ledger, outcome := session.Increment(productID)
		responses.WriteSuccess(w, cartResultView{
			Outcome: string(outcome),
			Cart:    newCartView(ledger),
		})
	}
}

// CartDecrement lowers a line by one unit; the line disappears at zero.
func CartDecrement(registry *sessions.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, productID, err := sessionLineFromRequest(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ledger := session.Decrement(productID)
		responses.WriteSuccess(w, cartResultView{Cart: newCartView(ledger)})
	}
}

// CartSetDiscount records the cashier-entered discount percent. A null
// body value clears the field back to "not entered".
func CartSetDiscount(registry *sessions.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setDiscountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ledger := session.SetDiscount(payload.DiscountPercent)
		responses.WriteSuccess(w, cartResultView{Cart: newCartView(ledger)})
	}
}

func sessionLineFromRequest(registry *sessions.Registry, r *http.Request) (*sessions.Session, int64, error) {
	session, err := sessionFromRequest(registry, r)
	if err != nil {
		return nil, 0, err
	}
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}
	return session, productID, nil
}
