package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/thermal-trace/internal/session"
)

// TraceSource exposes the active trace to other goroutines.
type TraceSource interface {
	sharedobs.ReadinessChecker
	Summary() (session.TraceSummary, bool)
}

// Server exposes health, readiness, metrics, and a read-only view of the
// loaded trace over HTTP.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics,
// /api/trace, and /api/faults routes.
func NewServer(addr string, src TraceSource, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(src))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/trace", handleTrace(src))
	mux.HandleFunc("GET /api/faults", handleFaults(src))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// traceInfo is the /api/trace body: the summary without the fault list.
type traceInfo struct {
	TraceID   string    `json:"trace_id"`
	Readings  int       `json:"readings"`
	Anomalies int       `json:"anomalies"`
	MinTemp   float64   `json:"min_temp"`
	MaxTemp   float64   `json:"max_temp"`
	Threshold float64   `json:"threshold"`
	LoadedAt  time.Time `json:"loaded_at"`
}

func handleTrace(src TraceSource) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		sum, ok := src.Summary()
		if !ok {
			writeNoTrace(w)
			return
		}
		sharedobs.WriteJSON(w, http.StatusOK, traceInfo{
			TraceID:   sum.TraceID,
			Readings:  sum.Readings,
			Anomalies: sum.Anomalies,
			MinTemp:   sum.MinTemp,
			MaxTemp:   sum.MaxTemp,
			Threshold: sum.Threshold,
			LoadedAt:  sum.LoadedAt,
		})
	}
}

func handleFaults(src TraceSource) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		sum, ok := src.Summary()
		if !ok {
			writeNoTrace(w)
			return
		}
		faults := sum.Faults
		if faults == nil {
			faults = []session.FaultRecord{}
		}
		sharedobs.WriteJSON(w, http.StatusOK, faults)
	}
}

func writeNoTrace(w http.ResponseWriter) {
	sharedobs.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
		"status": "not ready",
		"error":  "no trace loaded yet",
	})
}
