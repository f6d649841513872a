package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fitstack/fitledger/internal/ledger"
)

func metricCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metric",
		Short: "Track body metrics",
	}
	cmd.AddCommand(metricAddCmd(), metricLatestCmd())
	return cmd
}

func metricAddCmd() *cobra.Command {
	var unit string

	cmd := &cobra.Command{
		Use:   "add <kind> <value>",
		Short: "Log a body metric (weight, body_fat, muscle_mass, waist, chest, arms)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := ledger.ParseBodyMetricKind(args[0])
			if err != nil {
				return err
			}
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("value must be a number, got %q", args[1])
			}

			l, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			if _, err := l.AddBodyMetric(cmd.Context(), kind, value, unit); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s: %.1f %s\n", kind, value, unit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&unit, "unit", "u", "lb", "measurement unit")
	return cmd
}

func metricLatestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "latest <kind>",
		Short: "Show the latest entry of a kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := ledger.ParseBodyMetricKind(args[0])
			if err != nil {
				return err
			}

			l, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			entry, ok := l.LatestBodyMetric(kind)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s entries recorded\n", kind)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %.1f %s (%s)\n",
				entry.Kind, entry.Value, entry.Unit, entry.Timestamp.Format("Jan 2 15:04"))
			return nil
		},
	}
}
