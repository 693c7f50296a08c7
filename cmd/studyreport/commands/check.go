package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"studyreport/lib/config"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check-credentials",
	Short: "Verify that every required environment variable is set.",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range config.RequiredVars {
			if os.Getenv(name) != "" {
				fmt.Printf("%s is set\n", name)
			}
		}

		missing := config.MissingVars()
		if len(missing) > 0 {
			fmt.Println("The following required environment variables are missing:")
			for _, name := range missing {
				fmt.Printf("- %s\n", name)
			}
			os.Exit(1)
		}
		fmt.Println("All required environment variables are set.")
	},
}
