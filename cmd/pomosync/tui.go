package main

import (
	"github.com/spf13/cobra"

	"pomosync/internal/tui"
)

func newTUICmd() *cobra.Command {
	var server string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal timer against a running service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(server)
		},
	}
	cmd.Flags().StringVar(&server, "server", "http://localhost:8080", "Service base URL")
	return cmd
}
