package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/syncgen/syncgen/internal/cli"
)

const version = "0.3.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "syncgen",
		Short:   "Registry-driven API client generation and drift detection",
		Version: version,
		Long: `syncgen keeps generated API clients in sync with their schemas.

A declarative registry lists the tracked APIs. For each entry, syncgen
hashes the schema, invokes the external generator only when something
changed, and merges fresh definitions into hand-maintained model files
without touching code below the first func declaration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("project", ".", "Root directory of the host project")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable detailed output")
	rootCmd.PersistentFlags().Bool("quiet", false, "Only show errors")

	rootCmd.AddCommand(cli.AddCmd())
	rootCmd.AddCommand(cli.RegenerateCmd())
	rootCmd.AddCommand(cli.ValidateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
