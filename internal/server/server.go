// Package server exposes analysis, screening and catalogs over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"stock-predictor/internal/catalog"
	"stock-predictor/internal/interfaces"
	"stock-predictor/internal/logger"
	"stock-predictor/internal/metrics"
	"stock-predictor/internal/types"
)

const defaultShutdownTimeout = 10 * time.Second

type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Streamer emits screener rows in input order as they complete.
type Streamer interface {
	Stream(ctx context.Context, entries []types.Security, market types.Market) <-chan types.ScreenerRow
}

// Deps are the collaborators behind the routes. Streamer and Metrics are
// optional; without them streaming requests fall back to a full run and
// /metrics is not mounted.
type Deps struct {
	Analyzer interfaces.Analyzer
	Screener interfaces.Screener
	Streamer Streamer
	Catalogs *catalog.Registry
	Metrics  *metrics.Recorder
}

type Server struct {
	echo *echo.Echo
	cfg  Config
	deps Deps
}

func New(cfg Config, deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	e.Use(Recover())
	e.Use(RequestLogging())

	s := &Server{echo: e, cfg: cfg, deps: deps}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/healthz", s.handleHealth)
	if s.deps.Metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.deps.Metrics.Handler()))
	}

	api := s.echo.Group("/api")
	api.GET("/analyze/:ticker", s.handleAnalyze)
	api.POST("/screen", s.handleScreen)
	api.GET("/catalog", s.handleCatalogs)
	api.GET("/catalog/:name", s.handleCatalog)
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		logger.Info(ctx, "HTTP server listening", "addr", s.cfg.Addr)
		if err := s.echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info(ctx, "HTTP server shutting down")
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
