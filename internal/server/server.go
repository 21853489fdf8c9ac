// Package server owns the process lifecycle: config, store connections,
// the middleware kernel, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arifhossen/shopd/app/routes"
	"github.com/arifhossen/shopd/config"
	"github.com/arifhossen/shopd/pkg/cache"
	"github.com/arifhossen/shopd/pkg/database"
	"github.com/arifhossen/shopd/pkg/logger"
	"github.com/arifhossen/shopd/pkg/metrics"
	"github.com/arifhossen/shopd/pkg/middleware"
	"github.com/arifhossen/shopd/pkg/reqid"
	"github.com/arifhossen/shopd/pkg/router"
)

// Start boots the shop: fail fast if the document store is unreachable,
// degrade gracefully if Redis is, then serve until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: config: %w", err)
	}

	if err := database.Connect(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = database.Disconnect(ctx)
	}()

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err := database.EnsureIndexes(indexCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, owner-list cache disabled", "error", err.Error())
	}

	if config.LogToMongo() {
		mh := logger.NewMongoHandler(database.Collection(database.LogCollection))
		defer mh.Close()
		logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), mh))
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           buildHandler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("shop is running", "port", config.AppPort(), "env", config.AppEnv())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return <-errCh
}

// buildHandler assembles the middleware kernel and the route surface.
//
// Middleware stack (outermost → innermost):
//  1. Prometheus metrics — outermost for accurate total latency
//  2. Recovery           — catches panics before they kill the goroutine
//  3. Request ID         — inject unique ID before anything logs
//  4. Logger             — logs request_id from context
//  5. CORS               — set CORS headers
//  6. Rate limiter       — reject abusers early
func buildHandler() http.Handler {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	// Prometheus scrape endpoint — no auth, no rate limit concerns at
	// this traffic level.
	r.HandleFunc("/metrics", metrics.Handler())

	routes.RegisterAPI(r)

	return r.Handler()
}
