package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's totals and goal progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			stats := l.Stats()

			fmt.Fprintf(out, "Water today:    %.1f fl oz\n", l.TodayWaterIntake())
			fmt.Fprintf(out, "Calories today: %d\n", stats.CaloriesToday)
			fmt.Fprintf(out, "Protein today:  %.1f g\n", stats.ProteinToday)
			fmt.Fprintf(out, "Workouts this week: %d\n", stats.WorkoutsThisWeek)
			if stats.CurrentWeight != nil {
				fmt.Fprintf(out, "Current weight: %.1f\n", *stats.CurrentWeight)
			}

			fmt.Fprintln(out, "\nGoals:")
			for _, goal := range l.Goals() {
				fmt.Fprintf(out, "  %-16s %.1f / %.1f %s (%.0f%%)\n",
					goal.Kind, goal.Current, goal.Target, goal.Unit, goal.Progress()*100)
			}
			return nil
		},
	}
}
