// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input decoding, classifier orchestration, output serialization.
// The API NEVER performs classification logic.
package api

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"presolar/core/batch"
	"presolar/internal/config"
	"presolar/internal/logging"
)

// Server is the API server
type Server struct {
	handler *Handler
	mux     *http.ServeMux
	version string
	cfg     config.ServerConfig
	log     *zap.Logger
}

// NewServer creates a new API server
func NewServer(version string, cfg *config.Config) *Server {
	log := logging.Named("api")
	runner := batch.NewRunner(batch.Options{
		Workers:     cfg.Batch.Workers,
		StopOnError: false,
	})

	s := &Server{
		handler: NewHandler(runner, cfg.Server.MaxBatchSize, cfg.Server.MaxBodyBytes, log),
		mux:     http.NewServeMux(),
		version: version,
		cfg:     cfg.Server,
		log:     log,
	}

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("POST /classify", s.handler.HandleClassify)
	s.mux.HandleFunc("POST /classify/batch", s.handler.HandleBatch)
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Supporting endpoints
	s.mux.HandleFunc("GET /categories", s.handler.HandleCategories)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "presolar",
		"api_version": "v1",
	}, http.StatusOK)
}

// ServeHTTP implements http.Handler. Every request gets an ID and an access log line.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	requestID := r.Header.Get(requestIDHeader)
	if requestID == "" {
		requestID = generateRequestID()
	}
	w.Header().Set(requestIDHeader, requestID)
	r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, requestID))

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)

	s.log.Info("request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", rec.status),
		zap.Duration("duration", time.Since(start)))
}

// ListenAndServe starts the server and stops it when ctx is done
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:        addr,
		Handler:     s,
		ReadTimeout: time.Duration(s.cfg.ReadTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
