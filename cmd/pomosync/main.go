package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pomosync",
		Short: "Pomodoro focus timer with goals, stats and synced background music",
		Long: `pomosync runs a Pomodoro timer as a small HTTP service. The service owns
the countdown, the goal list and the focus statistics, and keeps an
embedded music player in step with focus and break phases.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newClassifyCmd())
	rootCmd.AddCommand(newTUICmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
