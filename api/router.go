// Package api assembles the phyloprep REST API.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/aria-lang/phyloprep-go/api/handlers"
	"github.com/aria-lang/phyloprep-go/api/middleware"
)

// NewRouter returns the API routes behind the standard middleware stack.
func NewRouter(log *zap.Logger, timeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(timeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/dates", func(r chi.Router) {
			r.Post("/decimal", handlers.DecimalDateHandler)
			r.Post("/tip", handlers.TipDateHandler)
			r.Post("/range", handlers.DateRangeHandler)
		})

		r.Route("/msa", func(r chi.Router) {
			r.Post("/histogram", handlers.HistogramHandler)
			r.Post("/lengths", handlers.LengthsHandler)
			r.Post("/summary", handlers.SummaryHandler)
			r.Post("/tips", handlers.TipsHandler)
		})
	})

	return r
}
