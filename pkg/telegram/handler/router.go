package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Clean1ines/airsongs/pkg/health"
	"github.com/Clean1ines/airsongs/pkg/logging"
	"github.com/Clean1ines/airsongs/pkg/telegram"
)

// NewRouter serves the webhook endpoint and the health check.
func NewRouter(sink telegram.UpdateSink, logger *logging.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", health.Handler)
	r.Post("/webhook", WebhookHandler(sink, logger))
	return r
}
