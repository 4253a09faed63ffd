package cli

import (
	"github.com/spf13/cobra"

	"github.com/syncgen/syncgen/internal/generator"
	"github.com/syncgen/syncgen/internal/pipeline"
	"github.com/syncgen/syncgen/internal/utils"
)

// buildRunner assembles a pipeline runner from the global flags and the
// environment. Every subcommand goes through here.
func buildRunner(cmd *cobra.Command) (*pipeline.Runner, *utils.DiagnosticSystem, error) {
	project, _ := cmd.Flags().GetString("project")
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	var diag *utils.DiagnosticSystem
	switch {
	case quiet:
		diag = utils.NewQuietDiagnostics()
	case verbose:
		diag = utils.NewVerboseDiagnostics()
	default:
		diag = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	envCfg, err := LoadEnvironment()
	if err != nil {
		return nil, diag, err
	}

	paths := pipeline.DefaultPaths(project, envCfg.StateDir)
	invoker := generator.NewExecInvoker(envCfg.GeneratorBin)

	runner := pipeline.NewRunner(paths, invoker, diag)
	runner.SetGeneratorTimeout(envCfg.GeneratorTimeout)
	return runner, diag, nil
}
