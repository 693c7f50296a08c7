package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"studyreport/lib/telemetry"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "studyreport",
	Short: "studyreport scrapes student progress stats from IXL and Math Academy and emails a report.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
