package ledger

import (
	"context"
	"errors"

	"github.com/fitstack/fitledger/internal/observability"
	"github.com/fitstack/fitledger/internal/storage"
)

// AddQuickLog appends a quick log entry. Calorie entries accumulate into
// the integer calorie counter, truncating toward zero to match the
// original accumulator's behavior. Protein accumulates as a float.
func (l *Ledger) AddQuickLog(ctx context.Context, kind QuickLogKind, value float64, note *string) (QuickLogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := QuickLogEntry{
		Kind:      kind,
		Value:     value,
		Note:      note,
		Timestamp: l.now(),
	}
	l.quickLogs = append(l.quickLogs, entry)

	errs := []error{l.persist(ctx, storage.KeyQuickLogs, l.quickLogs)}

	statsChanged := false
	switch kind {
	case QuickLogCalories:
		l.stats.CaloriesToday += int(value)
		statsChanged = true
	case QuickLogProtein:
		l.stats.ProteinToday += value
		statsChanged = true
	}
	if statsChanged {
		l.bumpStats()
		errs = append(errs, l.persist(ctx, storage.KeyUserStats, l.stats))
	}

	observability.RecordOp("add_quick_log")
	return entry, errors.Join(errs...)
}

// TodayQuickLogs returns entries logged during the current local day.
func (l *Ledger) TodayQuickLogs() []QuickLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.todayQuickLogsLocked()
}

func (l *Ledger) todayQuickLogsLocked() []QuickLogEntry {
	dayStart := l.startOfDay(l.now())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var today []QuickLogEntry
	for _, e := range l.quickLogs {
		if !e.Timestamp.Before(dayStart) && e.Timestamp.Before(dayEnd) {
			today = append(today, e)
		}
	}
	return today
}
