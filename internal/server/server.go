// internal/server/server.go
// Package server serves benchmark dashboards and table projections over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mwiater/ragbench/internal/logging"
	"github.com/mwiater/ragbench/internal/table"
	"golang.org/x/text/language"
)

// GracefulShutdownTimeout bounds how long Run waits for in-flight requests on shutdown.
const GracefulShutdownTimeout = 10 * time.Second

// Config controls the HTTP server.
type Config struct {
	Addr        string
	Title       string
	Locale      language.Tag
	DefaultSort *table.SortConfig
}

// Server serves dashboards and table projections for the datasets in a Store.
type Server struct {
	Echo *echo.Echo

	cfg   Config
	store *Store
}

// New wires middleware and routes for store.
func New(store *Store, cfg Config) *Server {
	if cfg.Locale == language.Und {
		cfg.Locale = language.English
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler()

	s := &Server{
		Echo:  e,
		cfg:   cfg,
		store: store,
	}
	s.setupMiddlewares()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddlewares() {
	s.Echo.Use(requestLogger())
	s.Echo.Use(middleware.Recover())
}

func (s *Server) setupRoutes() {
	s.Echo.GET("/", s.handleDefaultDashboard)
	s.Echo.GET("/datasets/:name", s.handleDashboard)
	s.Echo.GET("/fixtures/:name", s.handleFixture)
	s.Echo.GET("/health", s.handleHealth)

	api := s.Echo.Group("/api")
	api.GET("/datasets", s.handleListDatasets)
	api.GET("/datasets/:name/results", s.handleResults)
	api.GET("/datasets/:name/winners", s.handleWinners)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logging.LogEvent("serving %d dataset(s) on %s", len(s.store.Names()), s.cfg.Addr)
		if err := s.Echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	if err := s.Echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logging.LogEvent("server stopped")
	return nil
}
