package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	httpapi "signup/internal/http"
	"signup/internal/platform/config"
	"signup/internal/platform/httpserver"
	"signup/internal/platform/logger"
	"signup/internal/platform/metrics"
	"signup/internal/platform/otel"
	signuphandler "signup/internal/signup/handler"
	signupmetrics "signup/internal/signup/metrics"
	"signup/internal/signup/views"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	level, _ := cfg.SlogLevel()
	log := logger.New(logger.Options{Level: level, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	shutdownTracing, err := otel.Setup(ctx, cfg.OTelEndpoint, cfg.ServiceName)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}

	v, err := views.New(templateFS(cfg), cfg.ReloadTemplates())
	if err != nil {
		return fmt.Errorf("load views: %w", err)
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	router := httpapi.NewRouter(httpapi.Dependencies{
		Logger:         log,
		Signup:         signuphandler.New(v, log, signupmetrics.New(m.Registerer()), cfg.MaxFormBytes),
		Metrics:        m,
		RequestTimeout: cfg.RequestTimeout,
	})
	srv := httpserver.New(cfg, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting signup server",
			"addr", cfg.Addr,
			"debug", cfg.Debug,
			"template_reload", cfg.ReloadTemplates(),
			"metrics", cfg.MetricsEnabled,
			"tracing", cfg.OTelEndpoint != "",
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			return fmt.Errorf("flush traces: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// templateFS returns the on-disk template directory in reload mode and the
// embedded templates otherwise.
func templateFS(cfg config.Server) fs.FS {
	if cfg.ReloadTemplates() {
		return os.DirFS(cfg.TemplateDir)
	}
	return views.Embedded()
}
