package ledger

import (
	"testing"
)

func TestParseVolumeUnit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		want    VolumeUnit
		wantErr bool
	}{
		{input: "floz", want: VolumeFluidOunce},
		{input: "ml", want: VolumeMilliliter},
		{input: "cup", want: VolumeCup},
		{input: "l", want: VolumeLiter},
		{input: "gallon", wantErr: true},
		{input: "", wantErr: true},
		{input: "ML", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseVolumeUnit(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseVolumeUnit(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVolumeUnit(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseVolumeUnit(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVolumeUnitFluidOunces(t *testing.T) {
	t.Parallel()
	tests := []struct {
		unit VolumeUnit
		want float64
	}{
		{unit: VolumeFluidOunce, want: 1},
		{unit: VolumeMilliliter, want: 0.033814},
		{unit: VolumeCup, want: 8},
		{unit: VolumeLiter, want: 33.814},
	}

	for _, tt := range tests {
		if got := tt.unit.FluidOunces(); got != tt.want {
			t.Errorf("%s.FluidOunces() = %v, want %v", tt.unit, got, tt.want)
		}
	}
}

func TestParseGoalKind(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"water", "workouts", "calories", "protein", "steps", "active_calories"} {
		if _, err := ParseGoalKind(valid); err != nil {
			t.Errorf("ParseGoalKind(%q) error = %v", valid, err)
		}
	}
	if _, err := ParseGoalKind("distance"); err == nil {
		t.Error("ParseGoalKind(\"distance\") error = nil, want error")
	}
}

func TestActivityDisplayName(t *testing.T) {
	t.Parallel()

	if got := ActivityStrength.DisplayName(); got != "Strength Training" {
		t.Errorf("DisplayName() = %q, want %q", got, "Strength Training")
	}
	// unknown kinds fall back to the generic label
	if got := ActivityKind("skydiving").DisplayName(); got != "Workout" {
		t.Errorf("DisplayName() for unknown kind = %q, want %q", got, "Workout")
	}
}
