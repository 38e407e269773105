package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "canopy",
	Short: "Canopy - grammar compiler front end and build tool",
	Long: `Canopy reads grammar description documents and turns them into
validated typed grammars for a downstream parser compiler.

It provides:
  - Strict assembly of JSON/YAML grammar descriptions into typed rule trees
  - Structural and semantic validation with actionable errors
  - A build pipeline that invokes an external parser compiler
  - Automatic rebuilds on file changes
  - An archive of generated parser sources`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "canopy.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
