package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"ntl/internal/cli"
	"ntl/internal/cli/commands"
	"ntl/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "ntl",
		Short:         "NUnit-style test report builder",
		Long:          `Aggregates per-test result records from a test host into an NUnit 3 XML report with a nested namespace tree, and keeps the last run around for inspection and history.`,
		Version:       version,
		SilenceErrors: true,
	}

	// Defaults until the root pre-run loads the project config
	cfg := config.New()

	var flags cli.Flags

	commands.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
