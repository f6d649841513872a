package ledger

import "time"

type UserStats struct {
	CurrentWeight    *float64  `json:"current_weight"`
	GoalWeight       *float64  `json:"goal_weight"`
	WorkoutsThisWeek int       `json:"workouts_this_week"`
	WorkoutGoal      int       `json:"workout_goal"`
	CaloriesToday    int       `json:"calories_today"`
	CalorieGoal      int       `json:"calorie_goal"`
	ProteinToday     float64   `json:"protein_today"`
	ProteinGoal      float64   `json:"protein_goal"`
	LastUpdated      time.Time `json:"last_updated"`
}

type Workout struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Activity        ActivityKind `json:"activity"`
	DurationSeconds float64      `json:"duration_seconds"`
	CaloriesBurned  *float64     `json:"calories_burned"`
	Start           time.Time    `json:"start"`
	End             time.Time    `json:"end"`
	Completed       bool         `json:"completed"`
}

// WorkoutSession is the bookkeeping side of an in-progress workout. The
// sensor bridge pushes samples in; the session never drives the sensors.
type WorkoutSession struct {
	ID               string       `json:"id"`
	WorkoutID        string       `json:"workout_id"`
	Name             string       `json:"name"`
	Activity         ActivityKind `json:"activity"`
	Start            time.Time    `json:"start"`
	End              *time.Time   `json:"end"`
	HeartRateSamples []float64    `json:"heart_rate_samples"`
	CaloriesBurned   float64      `json:"calories_burned"`
}

func (s *WorkoutSession) IsActive() bool {
	return s.End == nil
}

// AverageHeartRate is derived on read, never stored.
func (s *WorkoutSession) AverageHeartRate() float64 {
	if len(s.HeartRateSamples) == 0 {
		return 0
	}
	var sum float64
	for _, bpm := range s.HeartRateSamples {
		sum += bpm
	}
	return sum / float64(len(s.HeartRateSamples))
}

type WaterEntry struct {
	Amount    float64    `json:"amount"`
	Unit      VolumeUnit `json:"unit"`
	Timestamp time.Time  `json:"timestamp"`
}

// FluidOunces returns the entry amount in the canonical unit.
func (e WaterEntry) FluidOunces() float64 {
	return e.Amount * e.Unit.FluidOunces()
}

type BodyMetricEntry struct {
	Kind      BodyMetricKind `json:"kind"`
	Value     float64        `json:"value"`
	Unit      string         `json:"unit"`
	Timestamp time.Time      `json:"timestamp"`
}

type QuickLogEntry struct {
	Kind      QuickLogKind `json:"kind"`
	Value     float64      `json:"value"`
	Note      *string      `json:"note"`
	Timestamp time.Time    `json:"timestamp"`
}

type FitnessGoal struct {
	ID       string     `json:"id"`
	Kind     GoalKind   `json:"kind"`
	Target   float64    `json:"target"`
	Current  float64    `json:"current"`
	Unit     string     `json:"unit"`
	Deadline *time.Time `json:"deadline"`
}

// Progress reports completion in [0, 1].
func (g FitnessGoal) Progress() float64 {
	if g.Target <= 0 {
		return 0
	}
	p := g.Current / g.Target
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (g FitnessGoal) IsCompleted() bool {
	return g.Current >= g.Target
}

// SyncSnapshot is the day's outbound payload for the sync collaborator.
type SyncSnapshot struct {
	WaterTodayFlOz float64         `json:"water_today_floz"`
	LatestWeight   *float64        `json:"latest_weight"`
	QuickLogsToday []QuickLogEntry `json:"quick_logs_today"`
	ExportedAt     time.Time       `json:"exported_at"`
}
