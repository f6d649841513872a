package ledger

import (
	"context"
	"errors"

	"github.com/fitstack/fitledger/internal/observability"
	"github.com/fitstack/fitledger/internal/storage"
)

// AddWaterEntry appends a water entry, recomputes today's canonical
// total, and upserts the water goal's current to that total.
func (l *Ledger) AddWaterEntry(ctx context.Context, amount float64, unit VolumeUnit) (WaterEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := WaterEntry{
		Amount:    amount,
		Unit:      unit,
		Timestamp: l.now(),
	}
	l.water = append(l.water, entry)

	total := l.todayWaterLocked()
	l.upsertGoalCurrentLocked(GoalWater, total)

	observability.RecordOp("add_water")

	return entry, errors.Join(
		l.persist(ctx, storage.KeyWaterIntake, l.water),
		l.persist(ctx, storage.KeyGoals, l.goals),
	)
}

// TodayWaterIntake sums canonical fluid-ounce amounts for entries whose
// timestamp falls within the current local calendar day.
func (l *Ledger) TodayWaterIntake() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.todayWaterLocked()
}

func (l *Ledger) todayWaterLocked() float64 {
	dayStart := l.startOfDay(l.now())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var total float64
	for _, e := range l.water {
		if !e.Timestamp.Before(dayStart) && e.Timestamp.Before(dayEnd) {
			total += e.FluidOunces()
		}
	}
	return total
}
