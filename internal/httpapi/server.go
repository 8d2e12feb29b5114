// Package httpapi exposes the connection registry over HTTP. It is the
// transport boundary: handlers translate between JSON requests and registry
// operations, and map the error taxonomy onto status codes.
package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/basehub-labs/basehub/internal/auth"
	"github.com/basehub-labs/basehub/internal/registry"
)

// Server is the HTTP API server.
type Server struct {
	registry     *registry.Registry
	minter       *auth.Minter
	sessionStore *sessions.CookieStore
	port         int
	logger       *slog.Logger
}

// Config holds configuration for the API server.
type Config struct {
	Registry      *registry.Registry
	Minter        *auth.Minter
	Port          int
	SessionSecret string
	Logger        *slog.Logger
}

// NewServer creates a new API server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400) // matches the default session TTL
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		registry:     cfg.Registry,
		minter:       cfg.Minter,
		sessionStore: sessionStore,
		port:         cfg.Port,
		logger:       logger,
	}
}

// Serve starts the API server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting API server", "addr", addr)

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	h := NewHandlers(s.registry, s.minter, s.sessionStore, s.logger)
	h.Routes(r)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
