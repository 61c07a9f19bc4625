package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rocklog/internal/config"
	"rocklog/internal/infrastructure"
	custommw "rocklog/internal/middleware"
	"rocklog/internal/validation"
)

// NewRouter assembles the full HTTP surface: middleware chain, the
// compute and health endpoints and the Prometheus metrics handler.
func NewRouter(cfg *config.Config, logger *slog.Logger, providers *infrastructure.OTelProviders, service ComputeServiceInterface) http.Handler {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(logger))
	r.Use(custommw.Recoverer(logger))
	r.Use(custommw.SecurityHeaders)
	if cfg.Limits.RateLimitRPS > 0 {
		r.Use(custommw.NewRateLimiter(cfg.Limits.RateLimitRPS, cfg.Limits.RateLimitBurst, logger).Handler)
	}
	r.Use(custommw.Compress(5))

	validator := validation.NewFileValidator(logger)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/compute", NewComputeHandler(service, validator, cfg.Limits.MaxUploadBytes, logger).Routes())
		r.Mount("/health", NewHealthHandler().Routes())
	})

	metricsHandler := promhttp.Handler()
	if providers != nil && providers.PrometheusHTTP != nil {
		metricsHandler = providers.PrometheusHTTP
	}
	r.Handle("/metrics", metricsHandler)

	return r
}
