package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	cataloghandler "fittrack/internal/catalog/handler"
	catalogservice "fittrack/internal/catalog/service"
	"fittrack/internal/identity/authn"
	identityhandler "fittrack/internal/identity/handler"
	identityservice "fittrack/internal/identity/service"
	jwttoken "fittrack/internal/jwt_token"
	"fittrack/internal/platform/config"
	"fittrack/internal/platform/httpserver"
	"fittrack/internal/platform/logger"
	"fittrack/internal/platform/metrics"
	progresshandler "fittrack/internal/progress/handler"
	progressservice "fittrack/internal/progress/service"
	schedulehandler "fittrack/internal/schedule/handler"
	scheduleservice "fittrack/internal/schedule/service"
	"fittrack/internal/seed"
	httptransport "fittrack/internal/transport/http"
)

const (
	tokenIssuer   = "fittrack"
	tokenAudience = "fittrack-api"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the feature service packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			log.Error("failed to close backends", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)
	if b.redis != nil {
		if err := b.redis.RegisterPoolMetrics(reg); err != nil {
			return err
		}
	}

	jwt := jwttoken.NewJWTService(cfg.JWTSigningKey, tokenIssuer, tokenAudience)
	auth := authn.New(jwt, b.revocation, b.users, log)

	identity := identityservice.New(b.users, jwt, b.revocation, cfg.TokenTTL,
		identityservice.WithLogger(log), identityservice.WithMetrics(m))
	catalog := catalogservice.New(b.templates,
		catalogservice.WithLogger(log), catalogservice.WithMetrics(m))
	schedule := scheduleservice.New(b.workouts, catalog, b.tracking,
		scheduleservice.WithLogger(log), scheduleservice.WithMetrics(m))
	progress := progressservice.New(b.progress, b.tracking,
		progressservice.WithLogger(log), progressservice.WithMetrics(m))

	if cfg.SeedDemoData {
		if err := seed.Run(ctx, seed.Deps{
			Users:     b.users,
			Identity:  identity,
			Templates: b.templates,
			Schedule:  schedule,
			Progress:  progress,
			Logger:    log,
		}); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	router := httptransport.NewRouter(httptransport.Config{
		Logger:   log,
		Metrics:  m,
		Gatherer: reg,
		Checks:   b.checks,
		Handlers: []httptransport.FeatureHandler{
			identityhandler.New(identity, auth, log),
			cataloghandler.New(catalog, auth, log),
			schedulehandler.New(schedule, auth, log),
			progresshandler.New(progress, auth, log),
		},
	})
	srv := httpserver.New(cfg, router, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting fittrack", "addr", cfg.Addr, "store", b.name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
