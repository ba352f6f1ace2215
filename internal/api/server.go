package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"PriceChart/internal/chart"
	"PriceChart/internal/recorder"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Collector refreshes stored history for one symbol on demand.
type Collector interface {
	Collect(ctx context.Context, symbol string) (int, error)
}

type Server struct {
	charts     *chart.Service
	store      recorder.Recorder
	collector  Collector
	metrics    *metrics
	router     *mux.Router
	httpServer *http.Server
}

// NewServer wires the routes. collector may be nil, which disables
// on-demand refresh.
func NewServer(charts *chart.Service, store recorder.Recorder, collector Collector, port int, corsOrigin string) *Server {
	reg := prometheus.NewRegistry()
	s := &Server{
		charts:    charts,
		store:     store,
		collector: collector,
		metrics:   newMetrics(reg),
		router:    mux.NewRouter(),
	}

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/v1/symbols", s.handleSymbols).Methods(http.MethodGet)
	s.router.HandleFunc("/v1/chart/{symbol}", s.handleChartJSON).Methods(http.MethodGet)
	s.router.HandleFunc("/v1/refresh/{symbol}", s.handleRefresh).Methods(http.MethodPost)
	s.router.HandleFunc("/chart/{symbol}", s.handleChartHTML).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	s.router.Use(s.withMetrics, withLogging)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      corsMiddleware(s.router, corsOrigin),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	log.Info().Str("addr", s.httpServer.Addr).Msg("started serving requests")
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func corsMiddleware(next http.Handler, allowOrigin string) http.Handler {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- response helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
