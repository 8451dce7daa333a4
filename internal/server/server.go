// Package server exposes the operational HTTP endpoints: health, scheduler
// status, and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"NepseSentinel/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// StatusSource reports the scheduler state for the /status endpoint.
type StatusSource interface {
	Status() model.SchedulerState
}

// Server wraps the Echo HTTP server.
type Server struct {
	echo *echo.Echo
	addr string
	log  zerolog.Logger
}

// New builds the ops server with its routes registered.
func New(addr string, status StatusSource, gatherer prometheus.Gatherer, log zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/status", func(c echo.Context) error {
		return c.JSON(http.StatusOK, status.Status())
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return &Server{
		echo: e,
		addr: addr,
		log:  log.With().Str("component", "server").Logger(),
	}
}

// Start serves until Shutdown. A closed server returns nil.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.addr).Msg("ops server listening")
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("ops server: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("ops server shutdown: %w", err)
	}
	s.log.Info().Msg("ops server stopped")
	return nil
}
