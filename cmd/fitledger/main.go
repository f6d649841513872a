package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fitstack/fitledger/internal/version"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "fitledger",
		Short:   "Your fitness ledger in the terminal",
		Version: version.Get(),
	}

	rootCmd.AddCommand(
		waterCmd(),
		metricCmd(),
		logCmd(),
		sessionCmd(),
		statusCmd(),
		exportCmd(),
		resetCmd(),
	)

	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}
