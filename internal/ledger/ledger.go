// Package ledger owns the in-memory authoritative state of a user's
// fitness metrics: stats, workout history, the active workout session,
// time-bounded logs, and goals. Every mutation is written through to an
// injected key-value store; the in-memory state stays the source of
// truth for the current process even when a write fails.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/fitstack/fitledger/internal/observability"
	"github.com/fitstack/fitledger/internal/storage"
	"github.com/fitstack/fitledger/internal/xslog"
)

const maxRecentWorkouts = 20

// Retention windows, applied on load. Entries strictly older than the
// cutoff are dropped permanently.
const (
	waterRetention      = 7 * 24 * time.Hour
	quickLogRetention   = 7 * 24 * time.Hour
	bodyMetricRetention = 30 * 24 * time.Hour
)

type Ledger struct {
	mu        sync.Mutex
	store     storage.Store
	logger    *slog.Logger
	now       func() time.Time
	weekStart time.Weekday

	stats     UserStats
	workouts  []Workout
	session   *WorkoutSession
	water     []WaterEntry
	body      []BodyMetricEntry
	quickLogs []QuickLogEntry
	goals     []FitnessGoal
	lastSync  *time.Time
}

type Option func(*Ledger)

// WithClock overrides the wall clock. Calendar windows (today, current
// week) and retention cutoffs all derive from this clock.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithWeekStart pins the weekday the weekly workout count rolls over on.
func WithWeekStart(day time.Weekday) Option {
	return func(l *Ledger) { l.weekStart = day }
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// New loads every collection from the store and applies retention.
// Deserialization failures never abort startup: the affected collection
// degrades to its empty or default value with a warning logged.
func New(ctx context.Context, store storage.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:     store,
		logger:    slog.Default(),
		now:       time.Now,
		weekStart: time.Monday,
	}
	for _, opt := range opts {
		opt(l)
	}

	loadValue(ctx, l, storage.KeyUserStats, &l.stats)
	loadValue(ctx, l, storage.KeyRecentWorkouts, &l.workouts)
	loadValue(ctx, l, storage.KeyWaterIntake, &l.water)
	loadValue(ctx, l, storage.KeyBodyMetrics, &l.body)
	loadValue(ctx, l, storage.KeyQuickLogs, &l.quickLogs)

	var session WorkoutSession
	if loadValue(ctx, l, storage.KeyActiveSession, &session) {
		l.session = &session
	}

	if !loadValue(ctx, l, storage.KeyGoals, &l.goals) || len(l.goals) == 0 {
		l.goals = defaultGoals()
	}

	var lastSync time.Time
	if loadValue(ctx, l, storage.KeyLastSyncDate, &lastSync) {
		l.lastSync = &lastSync
	}

	l.pruneExpired(ctx)

	return l
}

// loadValue reads and decodes one key. Absent keys are silent; store or
// decode failures are logged and leave dst untouched.
func loadValue[T any](ctx context.Context, l *Ledger, key string, dst *T) bool {
	data, err := l.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false
	}
	if err != nil {
		l.logger.WarnContext(ctx, "failed to read persisted state, using default",
			xslog.Key(key), xslog.Error(err))
		return false
	}

	if err := go_json.Unmarshal(data, dst); err != nil {
		l.logger.WarnContext(ctx, "failed to decode persisted state, using default",
			xslog.Key(key), xslog.Error(err))
		var zero T
		*dst = zero
		return false
	}
	return true
}

func defaultGoals() []FitnessGoal {
	return []FitnessGoal{
		{ID: uuid.NewString(), Kind: GoalWater, Target: 64, Unit: "fl oz"},
		{ID: uuid.NewString(), Kind: GoalWorkouts, Target: 5, Unit: "workouts"},
		{ID: uuid.NewString(), Kind: GoalCalories, Target: 2200, Unit: "kcal"},
		{ID: uuid.NewString(), Kind: GoalProtein, Target: 140, Unit: "g"},
	}
}

// pruneExpired drops entries past their retention window and writes the
// trimmed collections back, making the drop permanent. Pruning is a
// fixed point: a second load with the same clock changes nothing.
func (l *Ledger) pruneExpired(ctx context.Context) {
	now := l.now()

	if pruned, changed := pruneBefore(l.water, now.Add(-waterRetention),
		func(e WaterEntry) time.Time { return e.Timestamp }); changed {
		l.water = pruned
		l.persistBestEffort(ctx, storage.KeyWaterIntake, l.water)
	}
	if pruned, changed := pruneBefore(l.quickLogs, now.Add(-quickLogRetention),
		func(e QuickLogEntry) time.Time { return e.Timestamp }); changed {
		l.quickLogs = pruned
		l.persistBestEffort(ctx, storage.KeyQuickLogs, l.quickLogs)
	}
	if pruned, changed := pruneBefore(l.body, now.Add(-bodyMetricRetention),
		func(e BodyMetricEntry) time.Time { return e.Timestamp }); changed {
		l.body = pruned
		l.persistBestEffort(ctx, storage.KeyBodyMetrics, l.body)
	}
}

func pruneBefore[T any](entries []T, cutoff time.Time, timestamp func(T) time.Time) ([]T, bool) {
	kept := make([]T, 0, len(entries))
	for _, e := range entries {
		if !timestamp(e).Before(cutoff) {
			kept = append(kept, e)
		}
	}
	return kept, len(kept) != len(entries)
}

// persist encodes and writes one key. Failures surface as a
// PersistError; the caller's in-memory mutation is never rolled back.
func (l *Ledger) persist(ctx context.Context, key string, v any) error {
	data, err := go_json.Marshal(v)
	if err != nil {
		observability.RecordPersistFailure()
		return &PersistError{Key: key, Cause: err}
	}
	if err := l.store.Set(ctx, key, data); err != nil {
		observability.RecordPersistFailure()
		return &PersistError{Key: key, Cause: err}
	}
	observability.RecordPersisted(l.now())
	return nil
}

func (l *Ledger) persistBestEffort(ctx context.Context, key string, v any) {
	if err := l.persist(ctx, key, v); err != nil {
		l.logger.WarnContext(ctx, "write-through failed, keeping in-memory state",
			xslog.Key(key), xslog.Error(err))
	}
}

func (l *Ledger) startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek rolls back to the configured week-start weekday at local
// midnight.
func (l *Ledger) startOfWeek(t time.Time) time.Time {
	day := l.startOfDay(t)
	offset := (int(day.Weekday()) - int(l.weekStart) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

func (l *Ledger) bumpStats() {
	l.stats.LastUpdated = l.now()
}

// Stats returns a copy of the current user statistics.
func (l *Ledger) Stats() UserStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// RecentWorkouts returns the workout history, newest first.
func (l *Ledger) RecentWorkouts() []Workout {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.workouts)
}

func (l *Ledger) WaterEntries() []WaterEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.water)
}

func (l *Ledger) BodyMetrics() []BodyMetricEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.body)
}

func (l *Ledger) QuickLogs() []QuickLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.quickLogs)
}

func (l *Ledger) Goals() []FitnessGoal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.goals)
}

// Goal returns the goal for a kind. First match wins, but the ledger
// upserts by kind so duplicates never exist.
func (l *Ledger) Goal(kind GoalKind) (FitnessGoal, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.goalLocked(kind)
}

func (l *Ledger) goalLocked(kind GoalKind) (FitnessGoal, bool) {
	for _, g := range l.goals {
		if g.Kind == kind {
			return g, true
		}
	}
	return FitnessGoal{}, false
}

// ActiveSession returns a copy of the active session, if any.
func (l *Ledger) ActiveSession() (WorkoutSession, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.session == nil {
		return WorkoutSession{}, false
	}
	session := *l.session
	session.HeartRateSamples = slices.Clone(l.session.HeartRateSamples)
	return session, true
}

func (l *Ledger) LastSyncDate() (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lastSync == nil {
		return time.Time{}, false
	}
	return *l.lastSync, true
}

// ClearAllData resets every collection to its empty or default state and
// erases all persisted keys. Irreversible; used for account reset.
func (l *Ledger) ClearAllData(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stats = UserStats{}
	l.workouts = nil
	l.session = nil
	l.water = nil
	l.body = nil
	l.quickLogs = nil
	l.goals = defaultGoals()
	l.lastSync = nil

	var errs []error
	for _, key := range storage.Keys() {
		if err := l.store.Delete(ctx, key); err != nil {
			errs = append(errs, &PersistError{Key: key, Cause: err})
		}
	}

	observability.RecordOp("clear_all_data")
	return errors.Join(errs...)
}
