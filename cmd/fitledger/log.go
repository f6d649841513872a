package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fitstack/fitledger/internal/ledger"
)

func logCmd() *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "log <kind> <value>",
		Short: "Add a quick log (calories, protein, carbs, fats, mood, energy)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := ledger.ParseQuickLogKind(args[0])
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

			var notePtr *string
			if note != "" {
				notePtr = &note
			}

			if _, err := l.AddQuickLog(cmd.Context(), kind, value, notePtr); err != nil {
				return err
			}

			stats := l.Stats()
			switch kind {
			case ledger.QuickLogCalories:
				fmt.Fprintf(cmd.OutOrStdout(), "Logged. Calories today: %d\n", stats.CaloriesToday)
			case ledger.QuickLogProtein:
				fmt.Fprintf(cmd.OutOrStdout(), "Logged. Protein today: %.1f g\n", stats.ProteinToday)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "Logged %s: %.1f\n", kind, value)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&note, "note", "n", "", "optional note")
	return cmd
}
