package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rjbuenaventura/kusina-pos/api/responses"
	"github.com/rjbuenaventura/kusina-pos/internal/sessions"
	pkgerrors "github.com/rjbuenaventura/kusina-pos/pkg/errors"
	"github.com/rjbuenaventura/kusina-pos/pkg/logger"
)

// SessionOpen starts a fresh cashier session with an empty cart.
func SessionOpen(registry *sessions.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if registry == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session registry unavailable"))
			return
		}

		session, err := registry.Open()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			logg.Info(logg.WithSessionID(ctx, session.ID.String()), "session.opened")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newSessionEnvelope(session))
	}
}

// SessionGet returns the full session snapshot: cart, draft and checkout
// state in one read so the terminal renders from a single response.
func SessionGet(registry *sessions.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionEnvelope(session))
	}
}

// SessionClose discards the session and any uncommitted cart.
func SessionClose(registry *sessions.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if registry == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session registry unavailable"))
			return
		}

		id, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := registry.Close(id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithSessionID(r.Context(), id.String()), "session.closed")
		}
		responses.WriteSuccess(w, map[string]string{"status": "closed"})
	}
}

func sessionIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "sessionID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid session id")
	}
	return id, nil
}

func sessionFromRequest(registry *sessions.Registry, r *http.Request) (*sessions.Session, error) {
	if registry == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session registry unavailable")
	}
	id, err := sessionIDFromRequest(r)
	if err != nil {
		return nil, err
	}
	return registry.Get(id)
}
