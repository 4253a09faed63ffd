package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syncgen/syncgen/internal/models"
	"github.com/syncgen/syncgen/internal/pipeline"
)

// ValidateCmd dry-runs reconciliation against the existing generated
// artifacts and reports drift. With --auto-update the merges are applied.
func ValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [names...]",
		Short: "Check stored models for drift against generated definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, diag, err := buildRunner(cmd)
			if err != nil {
				return err
			}

			autoUpdate, _ := cmd.Flags().GetBool("auto-update")
			strict, _ := cmd.Flags().GetBool("strict")

			summary, err := runner.RunAll(cmd.Context(), args, pipeline.Options{
				DryRun:     true,
				AutoUpdate: autoUpdate,
				Strict:     strict,
			})
			if err != nil {
				return err
			}
			runner.Report(summary)

			if summary.Drift() && !autoUpdate {
				return fmt.Errorf("drift detected: %d model(s) differ from their generated definitions", driftCount(summary))
			}
			if summary.Drift() && autoUpdate {
				diag.Success("drift resolved: %d model(s) updated", driftCount(summary))
			}
			return nil
		},
	}

	cmd.Flags().Bool("auto-update", false, "Merge drifted models instead of just reporting them")
	cmd.Flags().Bool("strict", false, "Abort the remaining batch on the first drift or failure")
	return cmd
}

func driftCount(summary *models.RunSummary) int {
	n := 0
	for _, api := range summary.APIs {
		for _, m := range api.Models {
			if m.Result == models.DiffNew || m.Result == models.DiffChanged {
				n++
			}
		}
	}
	return n
}
