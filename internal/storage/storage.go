package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Keys used by the ledger. Stable strings: changing one orphans
// previously persisted data.
const (
	KeyUserStats      = "user-stats"
	KeyRecentWorkouts = "recent-workouts"
	KeyActiveSession  = "active-session"
	KeyWaterIntake    = "water-intake"
	KeyBodyMetrics    = "body-metrics"
	KeyQuickLogs      = "quick-logs"
	KeyGoals          = "goals"
	KeyLastSyncDate   = "last-sync-date"
)

// Keys lists every ledger key, in the order collections are loaded.
func Keys() []string {
	return []string{
		KeyUserStats,
		KeyRecentWorkouts,
		KeyActiveSession,
		KeyWaterIntake,
		KeyBodyMetrics,
		KeyQuickLogs,
		KeyGoals,
		KeyLastSyncDate,
	}
}

// Store is the opaque durable key-value collaborator the ledger writes
// through to. Get returns ErrNotFound for absent keys. Delete of an
// absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error

	Close() error
}
