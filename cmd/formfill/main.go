package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfill/internal/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "formfill",
		Short:         "Fill a .docx form template from a spreadsheet row",
		Long:          "formfill reads one row of a spreadsheet, fills the matching cells of a fixed-layout Word template and saves a copy named after the location.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level, _ := cmd.Flags().GetString("log-level")
			json, _ := cmd.Flags().GetBool("log-json")
			logger.Setup(level, json)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(profilesCmd())

	if err := rootCmd.Execute(); err != nil {
		logger.Error("formfill failed", "err", err)
		os.Exit(1)
	}
}
