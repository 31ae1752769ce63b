package controllers

import (
	"context"
	"net/http"

	"github.com/rjbuenaventura/kusina-pos/api/responses"
	"github.com/rjbuenaventura/kusina-pos/pkg/config"
	"github.com/rjbuenaventura/kusina-pos/pkg/logger"
)

type cachePinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Kusina-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, cache cachePinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Kusina-Env", cfg.App.Env)

		status := map[string]string{"status": "ready"}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				if logg != nil {
					logg.Error(r.Context(), "health.cache.unreachable", err)
				}
				status["cache"] = "unreachable"
			} else {
				status["cache"] = "ok"
			}
		}
		responses.WriteSuccess(w, status)
	}
}
