// Package inspect serves a read-only view of the running editor over HTTP:
// GraphQL queries over the latest scene snapshot, Prometheus metrics and a
// health probe.
package inspect

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/attackgraph/pkg/logging"
	"github.com/dd0wney/attackgraph/pkg/metrics"
)

const shutdownTimeout = 5 * time.Second

// Server is the inspection HTTP server.
type Server struct {
	source    SnapshotSource
	metrics   *metrics.Registry
	logger    logging.Logger
	handler   http.Handler
	startTime time.Time
}

// NewServer wires the GraphQL, metrics and health endpoints.
func NewServer(source SnapshotSource, reg *metrics.Registry, logger logging.Logger) (*Server, error) {
	if reg == nil {
		reg = metrics.DefaultRegistry()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	schema, err := NewSchema(source)
	if err != nil {
		return nil, err
	}

	s := &Server{
		source:    source,
		metrics:   reg,
		logger:    logger.With(logging.Component("inspect")),
		startTime: time.Now(),
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", NewGraphQLHandler(schema))
	mux.Handle("/metrics", promhttp.HandlerFor(reg.GetPrometheusRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", s.handleHealth)
	s.handler = s.metricsMiddleware(mux)

	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Serve accepts connections on l until ctx is canceled, then shuts down.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(l)
	}()
	s.logger.Info("inspect server listening", logging.String("addr", l.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("inspect shutdown: %w", err)
	}
	s.logger.Info("inspect server stopped")
	return nil
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("inspect listen %s: %w", addr, err)
	}
	return s.Serve(ctx, l)
}

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
	Frame  uint64 `json:"frame"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	resp := healthResponse{Status: "healthy", Uptime: time.Since(s.startTime).Round(time.Second).String()}
	if snap := s.source.Snapshot(); snap != nil {
		resp.Frame = snap.Frame
	} else {
		resp.Status = "starting"
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		duration := time.Since(start)
		s.metrics.RecordHTTPRequest(r.Method, r.URL.Path, strconv.Itoa(wrapper.statusCode), duration)
		s.metrics.UpdateSystemMetrics(s.startTime)
		s.logger.Debug("request",
			logging.String("method", r.Method),
			logging.Path(r.URL.Path),
			logging.Int("status", wrapper.statusCode),
			logging.Latency(duration),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
