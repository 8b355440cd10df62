package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "expense-api",
	Short:         "Expense tracking API with reports and call statistics",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          serveCmd.RunE,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsWorkerCmd)
	rootCmd.AddCommand(migrateStatsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
