package httpserver

import (
	"net/http"

	"recipe-api-go/internal/config"
	sessiondomain "recipe-api-go/internal/domain/session"
	"recipe-api-go/internal/transport/httpserver/handler"
	authmw "recipe-api-go/internal/transport/httpserver/middleware"
	"recipe-api-go/pkg/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, sessions *sessiondomain.Service, registry *prometheus.Registry, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))
	r.Use(authmw.NewMetrics(registry).Middleware)

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		auth := authmw.NewSessionAuth(sessions, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/v1/recipes", handlers.GetRecipe)
		})
	})

	return r
}
