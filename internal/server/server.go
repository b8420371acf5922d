// Package server provides the HTTP server and request middleware for
// the conversation gateway.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Server wraps the chi router with the gateway middleware chain.
type Server struct {
	Router *chi.Mux
	Port   int
	logger *slog.Logger
}

// New builds the server with the standard middleware chain: request id,
// structured logging, request timeout, panic recovery, and
// OpenTelemetry HTTP instrumentation.
func New(port int, requestTimeout time.Duration, logger *slog.Logger) *Server {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(TimeoutMiddleware(requestTimeout))
	r.Use(middleware.Recoverer)

	r.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "halo-gateway")
	})

	return &Server{
		Router: r,
		Port:   port,
		logger: logger,
	}
}

// Start blocks serving HTTP on the configured port.
func (s *Server) Start() error {
	s.logger.Info("starting server", slog.Int("port", s.Port))
	return http.ListenAndServe(fmt.Sprintf(":%d", s.Port), s.Router)
}
