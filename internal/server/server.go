// Package server exposes the KEGG operations as a JSON HTTP API.
//
// Routes live under /api/v1 and mirror the CLI commands. /healthz reports
// liveness and /metrics serves Prometheus metrics.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/keggrest/kegg/pkg/integrations/kegg"
)

// shutdownTimeout bounds how long in-flight requests may take after the
// server context is cancelled.
const shutdownTimeout = 20 * time.Second

// Server serves the JSON API for one KEGG client.
type Server struct {
	client   *kegg.Client
	logger   *log.Logger
	registry *prometheus.Registry
	mux      chi.Router

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// New creates a Server. Gateway metrics are registered with registry, which
// is also what /metrics serves; pass a registry that already holds the
// client-side collectors to expose them as well.
func New(client *kegg.Client, logger *log.Logger, registry *prometheus.Registry) *Server {
	f := promauto.With(registry)
	s := &Server{
		client:   client,
		logger:   logger,
		registry: registry,
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kegg_gateway_requests_total",
				Help: "Total number of gateway requests by route and status",
			},
			[]string{"route", "status"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kegg_gateway_request_duration_seconds",
				Help:    "Duration of gateway requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
	s.mux = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * time.Minute,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down", "reason", context.Cause(ctx))

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(sctx)
	}()

	s.logger.Info("starting server", "address", addr, "upstream", s.client.BaseURL())
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-shutdownErr
}
