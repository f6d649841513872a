package ledger

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/fitstack/fitledger/internal/observability"
	"github.com/fitstack/fitledger/internal/storage"
)

const defaultWorkoutName = "Workout"

// StartWorkoutSession opens a session bound to the workout's id and
// activity kind. At most one session may be active system-wide; a second
// start fails with ErrSessionConflict and leaves the first untouched.
func (l *Ledger) StartWorkoutSession(ctx context.Context, workout Workout) (WorkoutSession, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.session != nil {
		return WorkoutSession{}, ErrSessionConflict
	}

	workoutID := workout.ID
	if workoutID == "" {
		workoutID = uuid.NewString()
	}

	session := WorkoutSession{
		ID:        uuid.NewString(),
		WorkoutID: workoutID,
		Name:      workout.Name,
		Activity:  workout.Activity,
		Start:     l.now(),
	}
	l.session = &session

	observability.RecordOp("start_session")
	return session, l.persist(ctx, storage.KeyActiveSession, l.session)
}

// EndWorkoutSession closes the active session and converts it into a
// completed workout at the head of the history. With no active session
// it is a no-op returning (nil, nil).
func (l *Ledger) EndWorkoutSession(ctx context.Context) (*Workout, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.session == nil {
		return nil, nil
	}

	now := l.now()
	session := l.session

	end := now
	if end.Before(session.Start) {
		// clock skew: clamp duration to zero rather than go negative
		end = session.Start
	}
	session.End = &end

	name := session.Name
	if name == "" {
		name = defaultWorkoutName
	}

	workout := Workout{
		ID:              session.WorkoutID,
		Name:            name,
		Activity:        session.Activity,
		DurationSeconds: end.Sub(session.Start).Seconds(),
		Start:           session.Start,
		End:             end,
		Completed:       true,
	}
	if session.CaloriesBurned > 0 {
		calories := session.CaloriesBurned
		workout.CaloriesBurned = &calories
	}

	l.workouts = slices.Insert(l.workouts, 0, workout)
	if len(l.workouts) > maxRecentWorkouts {
		l.workouts = l.workouts[:maxRecentWorkouts]
	}
	l.session = nil

	weekly := l.weeklyWorkoutCountLocked(now)
	l.stats.WorkoutsThisWeek = weekly
	l.bumpStats()
	l.upsertGoalCurrentLocked(GoalWorkouts, float64(weekly))

	observability.RecordOp("end_session")

	var deleteErr error
	if err := l.store.Delete(ctx, storage.KeyActiveSession); err != nil {
		deleteErr = &PersistError{Key: storage.KeyActiveSession, Cause: err}
	}

	return &workout, errors.Join(
		l.persist(ctx, storage.KeyRecentWorkouts, l.workouts),
		l.persist(ctx, storage.KeyUserStats, l.stats),
		l.persist(ctx, storage.KeyGoals, l.goals),
		deleteErr,
	)
}

// AddHeartRateSample appends a sensor reading to the active session.
// Samples with no active session are dropped with ErrNoActiveSession.
func (l *Ledger) AddHeartRateSample(ctx context.Context, bpm float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.session == nil {
		return ErrNoActiveSession
	}

	l.session.HeartRateSamples = append(l.session.HeartRateSamples, bpm)

	observability.RecordOp("add_heart_rate")
	return l.persist(ctx, storage.KeyActiveSession, l.session)
}

// AddEnergySample adds burned calories from the sensor bridge to the
// active session's running total.
func (l *Ledger) AddEnergySample(ctx context.Context, kilocalories float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.session == nil {
		return ErrNoActiveSession
	}

	l.session.CaloriesBurned += kilocalories

	observability.RecordOp("add_energy")
	return l.persist(ctx, storage.KeyActiveSession, l.session)
}

// weeklyWorkoutCountLocked counts completed workouts whose start falls
// within the current week, per the configured week-start weekday.
func (l *Ledger) weeklyWorkoutCountLocked(now time.Time) int {
	weekStart := l.startOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	count := 0
	for _, w := range l.workouts {
		if w.Completed && !w.Start.Before(weekStart) && w.Start.Before(weekEnd) {
			count++
		}
	}
	return count
}
