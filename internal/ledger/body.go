package ledger

import (
	"context"
	"errors"

	"github.com/fitstack/fitledger/internal/observability"
	"github.com/fitstack/fitledger/internal/storage"
)

// AddBodyMetric appends a body metric entry. Weight entries also update
// UserStats.CurrentWeight; every other stats field is carried over.
func (l *Ledger) AddBodyMetric(ctx context.Context, kind BodyMetricKind, value float64, unit string) (BodyMetricEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := BodyMetricEntry{
		Kind:      kind,
		Value:     value,
		Unit:      unit,
		Timestamp: l.now(),
	}
	l.body = append(l.body, entry)

	errs := []error{l.persist(ctx, storage.KeyBodyMetrics, l.body)}

	if kind == BodyMetricWeight {
		weight := value
		l.stats.CurrentWeight = &weight
		l.bumpStats()
		errs = append(errs, l.persist(ctx, storage.KeyUserStats, l.stats))
	}

	observability.RecordOp("add_body_metric")
	return entry, errors.Join(errs...)
}

// LatestBodyMetric returns the entry of the given kind with the maximum
// timestamp. On equal timestamps the last-inserted entry wins.
func (l *Ledger) LatestBodyMetric(kind BodyMetricKind) (BodyMetricEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var latest BodyMetricEntry
	found := false
	for _, e := range l.body {
		if e.Kind != kind {
			continue
		}
		if !found || !e.Timestamp.Before(latest.Timestamp) {
			latest = e
			found = true
		}
	}
	return latest, found
}
