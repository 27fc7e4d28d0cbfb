package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-reminder/internal/config"
	"github.com/KasumiMercury/primind-reminder/internal/domain"
	"github.com/KasumiMercury/primind-reminder/internal/health"
	"github.com/KasumiMercury/primind-reminder/internal/infra/repository"
	"github.com/KasumiMercury/primind-reminder/internal/infra/sqlitestore"
)

type stores struct {
	reminders domain.ReminderRepository
	users     domain.UserRepository
	sessions  domain.SessionRepository
	name      string
	pinger    health.Pinger
	close     func() error
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendSQLite:
		return openSQLite(ctx, cfg.Store)
	default:
		return openRedis(ctx, cfg.Redis)
	}
}

func openRedis(ctx context.Context, cfg *config.RedisConfig) (*stores, error) {
	opts := &redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		DialTimeout: cfg.DialTimeout,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to instrument redis tracing: %w", err)
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to instrument redis metrics: %w", err)
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect redis: %w", err)
	}

	slog.Info("redis connected",
		slog.String("addr", cfg.Addr),
	)

	return &stores{
		reminders: repository.NewReminderRepository(redisClient),
		users:     repository.NewUserRepository(redisClient),
		sessions:  repository.NewSessionRepository(redisClient),
		name:      "redis",
		pinger:    health.RedisPinger(redisClient),
		close:     redisClient.Close,
	}, nil
}

func openSQLite(ctx context.Context, cfg *config.StoreConfig) (*stores, error) {
	store, err := sqlitestore.Open(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, err
	}

	slog.Info("sqlite store opened",
		slog.String("path", cfg.SQLitePath),
	)

	return &stores{
		reminders: sqlitestore.NewReminderRepository(store),
		users:     sqlitestore.NewUserRepository(store),
		sessions:  sqlitestore.NewSessionRepository(store),
		name:      "sqlite",
		pinger:    health.PingerFunc(store.Ping),
		close:     store.Close,
	}, nil
}
