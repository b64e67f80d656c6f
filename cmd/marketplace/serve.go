package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gigboard/marketplace/internal/api"
	"github.com/gigboard/marketplace/internal/api/middleware"
	"github.com/gigboard/marketplace/internal/core/service"
	"github.com/gigboard/marketplace/internal/infrastructure/db/memory"
	"github.com/gigboard/marketplace/internal/infrastructure/queue"
	"github.com/gigboard/marketplace/internal/pkg/config"
	"github.com/gigboard/marketplace/internal/seed"
	"github.com/gigboard/marketplace/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "marketplace",
	})

	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close(context.Background())

	if cfg.SeedDemoData {
		fixture, err := seed.Demo()
		if err != nil {
			return err
		}
		if err := seed.Load(ctx, fixture, b.accounts, b.jobs, log); err != nil {
			return err
		}
	}

	identity := service.NewIdentityService(ctx, b.accounts, b.sessions, log.With().Str("component", "identity").Logger())
	jobs := service.NewJobService(b.jobs, service.JobOptions{
		AllowDecisionChanges: cfg.AllowDecisionChanges,
	}, log.With().Str("component", "jobs").Logger())
	messages := service.NewMessageService(memory.NewMessageRepository(), log.With().Str("component", "messages").Logger())
	dispatcher := queue.NewDispatcher(cfg.DispatcherWorkers, messages, log.With().Str("component", "dispatcher").Logger())

	e := api.NewRouter(api.Deps{
		Identity:  identity,
		Jobs:      jobs,
		Messages:  messages,
		Queue:     dispatcher,
		Tokens:    middleware.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		JWTSecret: cfg.JWTSecret,
		Pingers:   b.pingers,
		Log:       log,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dispatcher.Run(gctx)
	})
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreBackend).Str("session", cfg.SessionBackend).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
