package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-screenshot-cache/internal/cache/service"
)

// Timeouts for the HTTP listener
type Timeouts struct {
	Read  time.Duration
	Write time.Duration
}

// Server exposes the capture service over HTTP
type Server struct {
	captureService *service.CaptureService
	timeouts       Timeouts
	logger         *zap.Logger
	server         *http.Server
}

// NewServer creates a new screenshot HTTP server
func NewServer(captureService *service.CaptureService, timeouts Timeouts, logger *zap.Logger) *Server {
	return &Server{
		captureService: captureService,
		timeouts:       timeouts,
		logger:         logger,
	}
}

// Start listens on addr and serves until Stop is called
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Serve serves requests on an existing listener
func (s *Server) Serve(listener net.Listener) error {
	s.server = &http.Server{
		Handler:      s.createRouter(),
		ReadTimeout:  s.timeouts.Read,
		WriteTimeout: s.timeouts.Write,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting screenshot HTTP server", zap.String("addr", listener.Addr().String()))
	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.logger.Info("Stopping screenshot HTTP server")
	return s.server.Shutdown(ctx)
}

// createRouter creates and configures the HTTP router
func (s *Server) createRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/screenshot", s.handleScreenshot).Methods("GET")
	router.HandleFunc("/screenshot", s.handleScreenshotPost).Methods("POST")

	// Health check
	router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return router
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC(),
	})
}

// parseRequest parses JSON request body
func (s *Server) parseRequest(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return err
	}
	defer r.Body.Close()

	return json.Unmarshal(body, v)
}

// writeResponse writes JSON response
func (s *Server) writeResponse(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeErrorResponse writes error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	s.writeResponse(w, statusCode, &ErrorResponse{Error: message})
}
