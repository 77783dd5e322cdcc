// Package server runs the HTTP API and the activity-log consumer as one
// unit with a shared lifetime.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Runner is a background worker that returns once ctx is done.
// *queue.ActivityConsumer satisfies it.
type Runner interface {
	Run(ctx context.Context) error
}

type Server struct {
	http    *echo.Echo
	addr    string
	workers []Runner
}

// New returns a Server listening on addr.  workers run alongside the
// HTTP server and are stopped with it.
func New(e *echo.Echo, addr string, workers ...Runner) *Server {
	return &Server{http: e, addr: addr, workers: workers}
}

// Run serves until ctx is cancelled or any component fails, then shuts
// the HTTP server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, runCtx := errgroup.WithContext(ctx)

	for _, w := range s.workers {
		w := w
		g.Go(func() error {
			if err := w.Run(runCtx); err != nil {
				return fmt.Errorf("running worker: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		logrus.WithField("addr", s.addr).Info("Starting HTTP server...")
		err := s.http.Start(s.addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("starting http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-runCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logrus.Info("Shutting down HTTP server...")
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("waiting for shutdown: %w", err)
	}
	logrus.Info("Shutdown complete.")
	return nil
}
