package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/helpdesk/helpdesk/internal/version"
)

// Server exposes /metrics and /health
type Server struct {
	logger    zerolog.Logger
	srv       *http.Server
	startTime time.Time
}

// NewServer creates a metrics server bound to addr
func NewServer(addr string, logger zerolog.Logger) *Server {
	s := &Server{
		logger:    logger.With().Str("component", "metrics").Logger(),
		startTime: time.Now(),
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", s.handleHealth)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, for tests
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start listens in the background until ctx is cancelled. Listen errors are
// returned synchronously.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}

	s.logger.Info().Str("address", ln.Addr().String()).Msg("Starting metrics server")

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("Metrics server error")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
	}()

	return nil
}

// handleHealth returns service health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"uptime":  time.Since(s.startTime).Round(time.Second).String(),
		"version": version.GetVersion(),
	})
}
