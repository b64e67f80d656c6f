package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gigboard/marketplace/internal/api/handler"
	"github.com/gigboard/marketplace/internal/core/ports"
	"github.com/gigboard/marketplace/internal/infrastructure/db/memory"
	mongostore "github.com/gigboard/marketplace/internal/infrastructure/db/mongo"
	redisstore "github.com/gigboard/marketplace/internal/infrastructure/db/redis"
	"github.com/gigboard/marketplace/internal/infrastructure/db/sqlite"
	"github.com/gigboard/marketplace/internal/pkg/config"
)

// backends holds the adapters selected by configuration.
type backends struct {
	accounts ports.AccountRepository
	jobs     ports.JobRepository
	sessions ports.SessionStore
	pingers  map[string]handler.Pinger
	closers  []func(context.Context) error
}

func (b *backends) Close(ctx context.Context) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		_ = b.closers[i](ctx)
	}
}

func openBackends(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backends, error) {
	b := &backends{pingers: map[string]handler.Pinger{}}
	slot := cfg.SessionSlot()

	switch cfg.StoreBackend {
	case config.BackendMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, client.Disconnect)
		b.pingers["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }

		accounts := mongostore.NewAccountRepository(db)
		jobs := mongostore.NewJobRepository(db)
		if err := accounts.EnsureIndexes(ctx); err != nil {
			b.Close(ctx)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		if err := jobs.EnsureIndexes(ctx); err != nil {
			b.Close(ctx)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		b.accounts, b.jobs = accounts, jobs
		if slot == config.BackendMongo {
			b.sessions = mongostore.NewSessionStore(db, cfg.SessionKey)
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongodb store")

	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func(context.Context) error { return store.Close() })
		b.pingers["sqlite"] = store.Ping
		b.accounts, b.jobs = store, store
		if slot == config.BackendSQLite {
			b.sessions = store.SessionStore(cfg.SessionKey)
		}
		log.Info().Str("path", cfg.SQLite.Path).Msg("using sqlite store")

	default:
		b.accounts, b.jobs = memory.NewAccountRepository(), memory.NewJobRepository()
		log.Info().Msg("using in-memory store")
	}

	switch slot {
	case config.BackendSQLite, config.BackendMongo:
		// Opened with the store above.
	case config.BackendRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			b.Close(ctx)
			return nil, err
		}
		b.closers = append(b.closers, func(context.Context) error { return client.Close() })
		b.pingers["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		b.sessions = redisstore.NewSessionStore(client, cfg.SessionKey)
	default:
		b.sessions = memory.NewSessionStore()
	}
	log.Info().Str("backend", slot).Str("key", cfg.SessionKey).Msg("session slot ready")

	return b, nil
}
