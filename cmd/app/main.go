package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tripwise",
	Short: "Travel itinerary planner",
	Long: `Collects trip details and travel preferences, asks a language model for a
day-by-day itinerary and renders it as a downloadable PDF.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newPlanCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
