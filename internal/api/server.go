package api

import (
	"net/http"
	"time"

	"supplypulse/internal/pipeline"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

// Server exposes the cleaned dataset and its aggregate views as plain JSON.
// All rendering, labeling and interactivity live in the presentation layer;
// this surface only hands it structured data.
type Server struct {
	store         *pipeline.Store
	allowedOrigin string
	productLimit  int
}

// NewServer creates an API server backed by a dataset store.
func NewServer(store *pipeline.Store, allowedOrigin string, productLimit int) *Server {
	if productLimit <= 0 {
		productLimit = 15
	}
	return &Server{
		store:         store,
		allowedOrigin: allowedOrigin,
		productLimit:  productLimit,
	}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.AccessHandler(func(req *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(req).Info().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", status).
			Dur("duration", duration).
			Msg("Request handled")
	}))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{s.allowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/overview", s.handleOverview)
		r.Get("/dimensions", s.handleDimensions)
		r.Get("/views/countries", s.handleCountries)
		r.Get("/views/modes", s.handleModes)
		r.Get("/views/products", s.handleProducts)
		r.Get("/views/trends/yearly", s.handleYearlyTrend)
		r.Get("/views/trends/monthly", s.handleMonthlyTrend)
	})

	return r
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	log.Info().Str("addr", addr).Msg("HTTP API listening")
	return http.ListenAndServe(addr, s.Router())
}
