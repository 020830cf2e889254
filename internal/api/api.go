// Package api exposes the engine over a small REST surface.
//
// The API is a thin boundary: it validates input (negative quantities
// are rejected here, before any calculator runs), delegates to the
// engine and store, and serializes results. It never computes its own
// aggregates; score reads return the persisted snapshot.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/verdant-io/verdant/internal/emissions"
	"github.com/verdant-io/verdant/internal/factors"
	"github.com/verdant-io/verdant/internal/logging"
	"github.com/verdant-io/verdant/internal/scoring"
	"github.com/verdant-io/verdant/internal/store"
)

// Server bundles the engine components the handlers need.
type Server struct {
	store    *store.Store
	scoring  *scoring.Service
	calc     *emissions.Calculator
	financed *emissions.FinancedCalculator
	table    *factors.Table
	logger   zerolog.Logger
}

// NewServer wires the handlers to their collaborators.
func NewServer(
	st *store.Store,
	svc *scoring.Service,
	table *factors.Table,
	logger zerolog.Logger,
) *Server {
	return &Server{
		store:    st,
		scoring:  svc,
		calc:     emissions.NewCalculator(table),
		financed: emissions.NewFinancedCalculator(table),
		table:    table,
		logger:   logger,
	}
}

// Router builds the chi router with middleware and all routes.
func (s *Server) Router(allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.requestLogger)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", s.handleHealth)
		r.Get("/factors", s.handleListFactors)
		r.Post("/emissions/financed", s.handleFinanced)

		r.Route("/companies/{companyID}", func(r chi.Router) {
			r.Post("/activities", s.handleInsertActivities)
			r.Post("/emissions/compute", s.handleComputeEmissions)
			r.Get("/emissions/forecast", s.handleForecast)
			r.Get("/scores", s.handleGetScores)
			r.Get("/frameworks/{frameworkID}", s.handleGetFramework)
			r.Put("/frameworks/{frameworkID}/fields/{fieldID}", s.handleSetField)
		})
	})

	return r
}

// requestLogger attaches a request-scoped logger to the context and logs
// each request on completion.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := s.logger.With().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()

		ctx := logging.WithContext(r.Context(), logger)
		next.ServeHTTP(w, r.WithContext(ctx))

		logger.Debug().
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
