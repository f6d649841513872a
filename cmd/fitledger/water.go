package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fitstack/fitledger/internal/ledger"
)

func waterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "water",
		Short: "Track water intake",
	}
	cmd.AddCommand(waterAddCmd(), waterTodayCmd())
	return cmd
}

func waterAddCmd() *cobra.Command {
	var unit string

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Log a water entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil || amount <= 0 {
				return fmt.Errorf("amount must be a positive number, got %q", args[0])
			}
			volumeUnit, err := ledger.ParseVolumeUnit(unit)
			if err != nil {
				return err
			}

			l, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			if _, err := l.AddWaterEntry(cmd.Context(), amount, volumeUnit); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged %.1f %s. Today: %.1f fl oz\n",
				amount, volumeUnit, l.TodayWaterIntake())
			return nil
		},
	}

	cmd.Flags().StringVarP(&unit, "unit", "u", string(ledger.VolumeFluidOunce), "volume unit (floz, ml, cup, l)")
	return cmd
}

func waterTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's water intake",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			total := l.TodayWaterIntake()
			fmt.Fprintf(cmd.OutOrStdout(), "Today: %.1f fl oz", total)
			if goal, ok := l.Goal(ledger.GoalWater); ok {
				fmt.Fprintf(cmd.OutOrStdout(), " (%.0f%% of %.0f %s)", goal.Progress()*100, goal.Target, goal.Unit)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}
