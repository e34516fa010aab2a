// Package httpapi serves the FAQ engine and the feedback policy over HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/faq"
)

// Config holds router settings.
type Config struct {
	RequestTimeout time.Duration

	// Threshold and TopK are used when a request omits them
	Threshold float64
	TopK      int

	// Now stamps issued coupons; defaults to time.Now
	Now func() time.Time
}

// DefaultConfig returns router defaults.
func DefaultConfig() Config {
	return Config{
		RequestTimeout: 20 * time.Second,
		Threshold:      faq.DefaultThreshold,
		TopK:           faq.DefaultTopK,
		Now:            time.Now,
	}
}

// NewRouter creates the API router with all routes configured.
func NewRouter(logger zerolog.Logger, engine Engine, cfg Config) http.Handler {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultConfig().RequestTimeout
	}

	h := &handler{
		logger: logger.With().Str("component", "http").Logger(),
		engine: engine,
		cfg:    cfg,
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(h.accessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", h.health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", h.status)
		r.Post("/answer", h.answer)
		r.Post("/feedback", h.feedback)
		r.Post("/reload", h.reload)
	})

	return r
}
