package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rjbuenaventura/kusina-pos/api/controllers"
	"github.com/rjbuenaventura/kusina-pos/api/middleware"
	"github.com/rjbuenaventura/kusina-pos/internal/sessions"
	"github.com/rjbuenaventura/kusina-pos/pkg/config"
	"github.com/rjbuenaventura/kusina-pos/pkg/logger"
	"github.com/rjbuenaventura/kusina-pos/pkg/redis"
)

// NewRouter wires the terminal API surface.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	catalogProvider controllers.CatalogProvider,
	registry *sessions.Registry,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	ready := controllers.HealthReady(cfg, logg, nil)
	if redisClient != nil {
		ready = controllers.HealthReady(cfg, logg, redisClient)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", ready)
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", controllers.CatalogList(catalogProvider, logg))

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", controllers.SessionOpen(registry, logg))

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", controllers.SessionGet(registry, logg))
				r.Delete("/", controllers.SessionClose(registry, logg))

				r.Route("/cart", func(r chi.Router) {
					r.Post("/items", controllers.CartAddItem(registry, catalogProvider, logg))
					r.Post("/items/{productID}/increment", controllers.CartIncrement(registry, logg))
					r.Post("/items/{productID}/decrement", controllers.CartDecrement(registry, logg))
					r.Put("/discount", controllers.CartSetDiscount(registry, logg))
				})

				r.Route("/checkout", func(r chi.Router) {
					r.Get("/", controllers.CheckoutStatus(registry, logg))
					r.Put("/", controllers.CheckoutDraft(registry, logg))
					r.Post("/submit", controllers.CheckoutSubmit(registry, logg))
				})
			})
		})
	})

	return r
}
