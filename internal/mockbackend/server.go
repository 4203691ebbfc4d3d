// Package mockbackend is a stand-in storefront backend serving the chat and
// ping endpoints, for demos and end-to-end tests.
package mockbackend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PingMessage is the body of a successful /ping
const PingMessage = "Backend is running!!!"

// DefaultAddr is the listen address used by Run when none is given
const DefaultAddr = "127.0.0.1:8000"

// DefaultAllowedOrigins are the frontend dev servers permitted by CORS
var DefaultAllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

// Server is the mock backend
type Server struct {
	engine         *gin.Engine
	logger         zerolog.Logger
	allowedOrigins map[string]bool
	answer         AnswerFunc
	latency        time.Duration
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithAllowedOrigins replaces the CORS origin allow-list. "*" allows any.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.allowedOrigins = make(map[string]bool, len(origins))
		for _, o := range origins {
			s.allowedOrigins[o] = true
		}
	}
}

// WithAnswerFunc replaces the canned answer table
func WithAnswerFunc(fn AnswerFunc) Option {
	return func(s *Server) {
		s.answer = fn
	}
}

// WithLatency delays every chat reply
func WithLatency(d time.Duration) Option {
	return func(s *Server) {
		s.latency = d
	}
}

// New builds the server and its routes
func New(opts ...Option) *Server {
	s := &Server{
		logger: zerolog.Nop(),
		answer: CannedAnswer,
	}
	WithAllowedOrigins(DefaultAllowedOrigins...)(s)
	for _, opt := range opts {
		opt(s)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.requestLogger())
	engine.Use(s.cors())

	engine.GET("/ping", s.handlePing)
	engine.POST("/chat", s.handleChat)

	s.engine = engine
	return s
}

// Handler exposes the router for embedding and httptest
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("mock backend listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("mock backend failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info().Msg("mock backend shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("mock backend shutdown: %w", err)
	}
	<-errCh
	return nil
}
