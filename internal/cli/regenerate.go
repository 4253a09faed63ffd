package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/syncgen/syncgen/internal/models"
	"github.com/syncgen/syncgen/internal/pipeline"
)

// RegenerateCmd batch-runs the pipeline over the registry.
func RegenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regenerate [names...]",
		Short: "Regenerate tracked APIs whose schemas changed",
		Long: `Runs the generation pipeline for the named registry entries, or for every
entry when no names are given. Entries whose schema hash is unchanged and
whose generated output is present are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := buildRunner(cmd)
			if err != nil {
				return err
			}

			if list, _ := cmd.Flags().GetBool("list"); list {
				return listEntries(runner)
			}

			force, _ := cmd.Flags().GetBool("force")
			strict, _ := cmd.Flags().GetBool("strict")
			watch, _ := cmd.Flags().GetBool("watch")
			opts := pipeline.Options{Force: force, Strict: strict}

			if watch {
				return runner.Watch(cmd.Context(), args, opts)
			}

			summary, err := runner.RunAll(cmd.Context(), args, opts)
			if err != nil {
				return err
			}
			runner.Report(summary)
			return nil
		},
	}

	cmd.Flags().Bool("list", false, "List registry entries without running the pipeline")
	cmd.Flags().Bool("force", false, "Regenerate even when the schema hash is unchanged")
	cmd.Flags().Bool("strict", false, "Abort the remaining batch on the first failure")
	cmd.Flags().Bool("watch", false, "Re-run automatically when a schema file changes")
	return cmd
}

// listEntries prints the registry in a table.
func listEntries(runner *pipeline.Runner) error {
	entries, err := runner.Store().Load()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tENTITY\tSCHEMA\tOPTIONS")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			entry.Name, entry.EntityName, entry.SchemaPath, optionSummary(entry))
	}
	return w.Flush()
}

// optionSummary renders the enabled options compactly, e.g. "models,api".
func optionSummary(entry models.RegistryEntry) string {
	var on []string
	if entry.Options.GenerateModels {
		on = append(on, "models")
	}
	if entry.Options.GenerateAPI {
		on = append(on, "api")
	}
	if entry.Options.GenerateHandlers {
		on = append(on, "handlers")
	}
	if entry.Options.UpdateRouter {
		on = append(on, "router")
	}
	if len(on) == 0 {
		return "inactive"
	}
	return strings.Join(on, ",")
}
