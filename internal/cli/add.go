package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syncgen/syncgen/internal/models"
	"github.com/syncgen/syncgen/internal/pipeline"
)

// AddCmd creates or updates one registry entry and runs the full pipeline
// for it.
func AddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> [url schemaPath entityName idField]",
		Short: "Register an API (or update it) and generate its client",
		Args:  cobra.RangeArgs(1, 5),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, diag, err := buildRunner(cmd)
			if err != nil {
				return err
			}

			if err := runner.Store().Bootstrap(); err != nil {
				return err
			}

			name := args[0]
			entry, exists, err := runner.Store().Get(name)
			if err != nil {
				return err
			}
			if !exists {
				entry = models.RegistryEntry{
					Name:       name,
					EntityName: name,
					Options:    models.GenerationOptions{GenerateModels: true},
				}
			}

			// Positional arguments override the stored values one by one.
			if len(args) > 1 {
				entry.URL = args[1]
			}
			if len(args) > 2 {
				entry.SchemaPath = args[2]
			}
			if len(args) > 3 {
				entry.EntityName = args[3]
			}
			if len(args) > 4 {
				entry.IDField = args[4]
			}

			if entry.SchemaPath == "" {
				return models.NewConfigurationError(
					fmt.Sprintf("entry %q has no schema path", name), nil)
			}

			// Remote schemas are downloaded once, here, so the registry
			// only ever persists local paths.
			entry, err = runner.LocalizeSchema(cmd.Context(), entry)
			if err != nil {
				return err
			}

			if err := runner.Store().Upsert(entry); err != nil {
				return err
			}
			diag.Success("registry entry %q saved", name)

			summary, err := runner.RunAll(cmd.Context(), []string{name}, pipeline.Options{})
			if err != nil {
				return err
			}
			runner.Report(summary)
			return nil
		},
	}
}
