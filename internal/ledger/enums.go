package ledger

import "fmt"

type ActivityKind string

const (
	ActivityRunning  ActivityKind = "running"
	ActivityWalking  ActivityKind = "walking"
	ActivityCycling  ActivityKind = "cycling"
	ActivitySwimming ActivityKind = "swimming"
	ActivityStrength ActivityKind = "strength"
	ActivityYoga     ActivityKind = "yoga"
	ActivityHIIT     ActivityKind = "hiit"
	ActivityOther    ActivityKind = "other"
)

func (a ActivityKind) DisplayName() string {
	switch a {
	case ActivityRunning:
		return "Running"
	case ActivityWalking:
		return "Walking"
	case ActivityCycling:
		return "Cycling"
	case ActivitySwimming:
		return "Swimming"
	case ActivityStrength:
		return "Strength Training"
	case ActivityYoga:
		return "Yoga"
	case ActivityHIIT:
		return "HIIT"
	default:
		return "Workout"
	}
}

// VolumeUnit is a water-intake input unit. All aggregation happens in
// fluid ounces, the canonical unit.
type VolumeUnit string

const (
	VolumeFluidOunce VolumeUnit = "floz"
	VolumeMilliliter VolumeUnit = "ml"
	VolumeCup        VolumeUnit = "cup"
	VolumeLiter      VolumeUnit = "l"
)

// FluidOunces converts one unit of the volume to canonical fluid ounces.
func (u VolumeUnit) FluidOunces() float64 {
	switch u {
	case VolumeMilliliter:
		return 0.033814
	case VolumeCup:
		return 8
	case VolumeLiter:
		return 33.814
	case VolumeFluidOunce:
		return 1
	default:
		return 1
	}
}

func ParseVolumeUnit(s string) (VolumeUnit, error) {
	switch VolumeUnit(s) {
	case VolumeFluidOunce, VolumeMilliliter, VolumeCup, VolumeLiter:
		return VolumeUnit(s), nil
	default:
		return "", fmt.Errorf("invalid volume unit: %q (valid: floz, ml, cup, l)", s)
	}
}

type BodyMetricKind string

const (
	BodyMetricWeight     BodyMetricKind = "weight"
	BodyMetricBodyFat    BodyMetricKind = "body_fat"
	BodyMetricMuscleMass BodyMetricKind = "muscle_mass"
	BodyMetricWaist      BodyMetricKind = "waist"
	BodyMetricChest      BodyMetricKind = "chest"
	BodyMetricArms       BodyMetricKind = "arms"
)

func ParseBodyMetricKind(s string) (BodyMetricKind, error) {
	switch BodyMetricKind(s) {
	case BodyMetricWeight, BodyMetricBodyFat, BodyMetricMuscleMass,
		BodyMetricWaist, BodyMetricChest, BodyMetricArms:
		return BodyMetricKind(s), nil
	default:
		return "", fmt.Errorf("invalid body metric kind: %q", s)
	}
}

type QuickLogKind string

const (
	QuickLogCalories QuickLogKind = "calories"
	QuickLogProtein  QuickLogKind = "protein"
	QuickLogCarbs    QuickLogKind = "carbs"
	QuickLogFats     QuickLogKind = "fats"
	QuickLogMood     QuickLogKind = "mood"
	QuickLogEnergy   QuickLogKind = "energy"
)

func ParseQuickLogKind(s string) (QuickLogKind, error) {
	switch QuickLogKind(s) {
	case QuickLogCalories, QuickLogProtein, QuickLogCarbs,
		QuickLogFats, QuickLogMood, QuickLogEnergy:
		return QuickLogKind(s), nil
	default:
		return "", fmt.Errorf("invalid quick log kind: %q", s)
	}
}

type GoalKind string

const (
	GoalWater          GoalKind = "water"
	GoalWorkouts       GoalKind = "workouts"
	GoalCalories       GoalKind = "calories"
	GoalProtein        GoalKind = "protein"
	GoalSteps          GoalKind = "steps"
	GoalActiveCalories GoalKind = "active_calories"
)

func ParseGoalKind(s string) (GoalKind, error) {
	switch GoalKind(s) {
	case GoalWater, GoalWorkouts, GoalCalories,
		GoalProtein, GoalSteps, GoalActiveCalories:
		return GoalKind(s), nil
	default:
		return "", fmt.Errorf("invalid goal kind: %q", s)
	}
}
