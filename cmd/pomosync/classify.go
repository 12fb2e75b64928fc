package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pomosync/internal/media"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <url>...",
		Short: "Show how music URLs are interpreted",
		Example: `  pomosync classify "https://www.youtube.com/watch?v=jfKfPfyJRdk"
  pomosync classify https://youtu.be/abc123 "https://www.youtube.com/playlist?list=PL123"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, raw := range args {
				writeClassification(cmd.OutOrStdout(), raw)
			}
			return nil
		},
	}
}

func writeClassification(out io.Writer, raw string) {
	target := media.Classify(raw)
	if !target.Recognized() {
		fmt.Fprintf(out, "%s\t%s\n", target.Kind, raw)
		return
	}
	fmt.Fprintf(out, "%s\t%s\t%s\n", target.Kind, target.ID, raw)
}
