package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fitstack/fitledger/internal/ledger"
)

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the active workout session",
	}
	cmd.AddCommand(sessionStartCmd(), sessionEndCmd(), sessionHeartRateCmd(), sessionShowCmd())
	return cmd
}

func sessionStartCmd() *cobra.Command {
	var (
		name     string
		activity string
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a workout session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			session, err := l.StartWorkoutSession(cmd.Context(), ledger.Workout{
				Name:     name,
				Activity: ledger.ActivityKind(activity),
			})
			if errors.Is(err, ledger.ErrSessionConflict) {
				return fmt.Errorf("a session is already active; end it first with `fitledger session end`")
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Started %s session at %s\n",
				session.Activity.DisplayName(), session.Start.Format("15:04:05"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "workout name")
	cmd.Flags().StringVarP(&activity, "activity", "a", string(ledger.ActivityOther), "activity kind")
	return cmd
}

func sessionEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End the active session and record the workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			workout, err := l.EndWorkoutSession(cmd.Context())
			if err != nil {
				return err
			}
			if workout == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No active session")
				return nil
			}

			stats := l.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %q: %.0fs. Workouts this week: %d\n",
				workout.Name, workout.DurationSeconds, stats.WorkoutsThisWeek)
			return nil
		},
	}
}

func sessionHeartRateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hr <bpm>",
		Short: "Record a heart-rate sample on the active session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bpm, err := strconv.ParseFloat(args[0], 64)
			if err != nil || bpm <= 0 {
				return fmt.Errorf("bpm must be a positive number, got %q", args[0])
			}

			l, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			if err := l.AddHeartRateSample(cmd.Context(), bpm); err != nil {
				if errors.Is(err, ledger.ErrNoActiveSession) {
					return fmt.Errorf("no active session; start one with `fitledger session start`")
				}
				return err
			}

			if session, ok := l.ActiveSession(); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded %.0f bpm (avg %.0f)\n", bpm, session.AverageHeartRate())
			}
			return nil
		},
	}
}

func sessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			session, ok := l.ActiveSession()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No active session")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s since %s, %d samples, avg %.0f bpm, %.0f kcal\n",
				session.Activity.DisplayName(),
				session.Start.Format("15:04:05"),
				len(session.HeartRateSamples),
				session.AverageHeartRate(),
				session.CaloriesBurned)
			return nil
		},
	}
}
