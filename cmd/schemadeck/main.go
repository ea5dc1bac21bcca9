package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/schemadeck/app"
	"github.com/dmitrymomot/schemadeck/core/config"
	"github.com/dmitrymomot/schemadeck/core/logger"
	"github.com/dmitrymomot/schemadeck/integration/database/redis"
	"github.com/dmitrymomot/schemadeck/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg app.Config
	config.MustLoad(&cfg) // panic on error

	mode := logger.WithProduction(cfg.AppName)
	if cfg.IsDevelopment() {
		mode = logger.WithDevelopment(cfg.AppName)
	}
	log := logger.SetAsDefault(logger.New(
		mode,
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithContextExtractors(middleware.RequestIDExtractor),
	))

	opts := []app.AppOption{app.WithLogger(log)}

	// Redis is optional; without it rate limits are kept per process.
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Error("Failed to connect to redis", logger.Component("redis"), logger.Error(err))
			os.Exit(1)
		}
		opts = append(opts, app.WithRedis(client))
	}

	a, err := app.New(cfg, opts...)
	if err != nil {
		log.Error("Failed to create application", logger.Component("app"), logger.Error(err))
		os.Exit(1)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(a.Run(ctx))

	runErr := eg.Wait()
	if err := a.Close(); err != nil {
		log.Error("Failed to close application", logger.Component("app"), logger.Error(err))
	}
	if runErr != nil {
		log.Error("Failed to run application", logger.Component("app"), logger.Error(runErr))
		os.Exit(1)
	}

	log.Info("Application stopped")
}
