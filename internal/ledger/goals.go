package ledger

import (
	"context"

	"github.com/fitstack/fitledger/internal/observability"
	"github.com/fitstack/fitledger/internal/storage"
)

// UpdateGoalProgress upserts the current value of the goal matching
// kind. Target, unit, and deadline are untouched. A missing goal is a
// no-op, not an error: callers that need one must seed it first.
func (l *Ledger) UpdateGoalProgress(ctx context.Context, kind GoalKind, progress float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.upsertGoalCurrentLocked(kind, progress) {
		return nil
	}

	observability.RecordOp("update_goal_progress")
	return l.persist(ctx, storage.KeyGoals, l.goals)
}

// upsertGoalCurrentLocked writes current into the first goal of the
// given kind and drops any duplicates of that kind, keeping the
// single-record-per-kind invariant even over corrupted data.
func (l *Ledger) upsertGoalCurrentLocked(kind GoalKind, current float64) bool {
	updated := false
	kept := l.goals[:0]
	for _, g := range l.goals {
		if g.Kind == kind {
			if updated {
				continue
			}
			g.Current = current
			updated = true
		}
		kept = append(kept, g)
	}
	l.goals = kept
	return updated
}
