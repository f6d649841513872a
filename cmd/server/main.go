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
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/fitstack/fitledger/internal/config"
	"github.com/fitstack/fitledger/internal/ledger"
	"github.com/fitstack/fitledger/internal/paths"
	xredis "github.com/fitstack/fitledger/internal/redis"
	"github.com/fitstack/fitledger/internal/server"
	"github.com/fitstack/fitledger/internal/storage"
	"github.com/fitstack/fitledger/internal/xhttp/middleware"
	"github.com/fitstack/fitledger/internal/xslog"
)

const keyPort = "port"

func main() {
	_ = godotenv.Load()

	logger := xslog.NewLoggerFromEnv(os.Stdout)
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	store, err := initStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage backend: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close store", xslog.Error(err))
		}
	}()

	weekStart, err := cfg.WeekStartWeekday()
	if err != nil {
		return err
	}

	ldgr := ledger.New(ctx, store,
		ledger.WithLogger(logger),
		ledger.WithWeekStart(weekStart),
	)

	handler := server.NewHandler(ldgr, store)

	wrapped := middleware.Chain(server.Routes(handler),
		middleware.Recovery,
		middleware.Logging,
		middleware.Logger(logger),
		middleware.RequestID(),
		middleware.SecurityHeaders,
		middleware.RateLimit(cfg.RateLimit, cfg.RateBurst),
	)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           wrapped,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(gctx, "starting server",
			xslog.Version(),
			xslog.Backend(cfg.StorageBackend),
			slog.String(keyPort, cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.InfoContext(ctx, "shutdown signal received, initiating graceful shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.InfoContext(ctx, "server stopped")
	return nil
}

func initStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		logger.InfoContext(ctx, "initializing in-memory store")
		return storage.NewMemoryStore(), nil

	case config.BackendSQLite:
		path := cfg.SQLitePath
		if path == "" {
			var err error
			if _, err = paths.EnsureDir(); err != nil {
				return nil, err
			}
			if path, err = paths.DB(); err != nil {
				return nil, err
			}
		}
		logger.InfoContext(ctx, "initializing SQLite store", xslog.Key(path))
		return storage.NewSQLiteStore(ctx, path)

	case config.BackendRedis:
		logger.InfoContext(ctx, "initializing Redis store")
		client, err := xredis.New(ctx, xredis.Config{URL: cfg.RedisURL})
		if err != nil {
			return nil, err
		}
		return storage.NewRedisStore(storage.RedisConfig{Client: client}), nil

	case config.BackendPostgres:
		logger.InfoContext(ctx, "initializing PostgreSQL store")
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}
		store, err := storage.NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.StorageBackend)
	}
}
