package ledger

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/fitstack/fitledger/internal/observability"
	"github.com/fitstack/fitledger/internal/storage"
)

// UpdateFromSync wholesale-replaces user stats and workout history with
// sync-provided values. The sync collaborator resolves conflicts before
// calling; the ledger does not merge.
func (l *Ledger) UpdateFromSync(ctx context.Context, stats UserStats, workouts []Workout, syncTime time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stats = stats
	l.workouts = slices.Clone(workouts)
	if len(l.workouts) > maxRecentWorkouts {
		l.workouts = l.workouts[:maxRecentWorkouts]
	}
	l.lastSync = &syncTime

	observability.RecordOp("update_from_sync")
	return errors.Join(
		l.persist(ctx, storage.KeyUserStats, l.stats),
		l.persist(ctx, storage.KeyRecentWorkouts, l.workouts),
		l.persist(ctx, storage.KeyLastSyncDate, syncTime),
	)
}

// ExportForSync produces the day's outbound snapshot: today's canonical
// water total, the latest weight reading, and today's quick logs.
// Read-only; no state mutation.
func (l *Ledger) ExportForSync() SyncSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snapshot := SyncSnapshot{
		WaterTodayFlOz: l.todayWaterLocked(),
		QuickLogsToday: l.todayQuickLogsLocked(),
		ExportedAt:     l.now(),
	}

	var latest *BodyMetricEntry
	for i := range l.body {
		e := l.body[i]
		if e.Kind != BodyMetricWeight {
			continue
		}
		if latest == nil || !e.Timestamp.Before(latest.Timestamp) {
			latest = &l.body[i]
		}
	}
	if latest != nil {
		weight := latest.Value
		snapshot.LatestWeight = &weight
	}

	return snapshot
}
