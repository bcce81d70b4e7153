// Package cmd provides the command-line interface for secmetasim.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "secmetasim",
	Short: "secmetasim runs the secure metadata cache and PCB pipeline.",
	Long: `secmetasim drives a simulated secure-memory metadata cache and ` +
		`partial-coalescing engine: it can run synthetic workloads against ` +
		`the pipeline, replay counters recorded from a past run, or serve ` +
		`the live monitoring dashboard.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replayCmd)
}
