package server

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workerFunc func(ctx context.Context) error

func (f workerFunc) Run(ctx context.Context) error { return f(ctx) }

func TestRunStopsOnCancel(t *testing.T) {
	e := echo.New()
	e.HideBanner, e.HidePort = true, true
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	stopped := make(chan struct{})
	worker := workerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		close(stopped)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(e, "127.0.0.1:0", worker).Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	<-stopped
}

func TestRunReturnsWorkerFailure(t *testing.T) {
	e := echo.New()
	e.HideBanner, e.HidePort = true, true
	boom := errors.New("boom")

	err := New(e, "127.0.0.1:0", workerFunc(func(context.Context) error { return boom })).Run(context.Background())
	assert.ErrorIs(t, err, boom)
}
