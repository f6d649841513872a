package main

import (
	"context"
	"os"

	"github.com/fitstack/fitledger/internal/config"
	"github.com/fitstack/fitledger/internal/ledger"
	"github.com/fitstack/fitledger/internal/paths"
	"github.com/fitstack/fitledger/internal/storage"
	"github.com/fitstack/fitledger/internal/xslog"
)

// openLedger loads the ledger from the local SQLite database. Every
// mutation writes through, so the closer only releases the database.
func openLedger(ctx context.Context) (*ledger.Ledger, func() error, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, nil, err
	}

	path := cfg.SQLitePath
	if path == "" {
		if _, err := paths.EnsureDir(); err != nil {
			return nil, nil, err
		}
		if path, err = paths.DB(); err != nil {
			return nil, nil, err
		}
	}

	store, err := storage.NewSQLiteStore(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	weekStart, err := cfg.WeekStartWeekday()
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	// keep stdout for command output; logs go to stderr
	logger := xslog.NewLoggerFromEnv(os.Stderr)

	l := ledger.New(ctx, store,
		ledger.WithLogger(logger),
		ledger.WithWeekStart(weekStart),
	)
	return l, store.Close, nil
}
