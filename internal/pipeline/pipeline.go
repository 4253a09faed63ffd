// Package pipeline orchestrates the per-API flow: change detection,
// generator invocation, artifact inspection, model reconciliation, bridge
// synthesis, and settings patching. APIs are processed one at a time, in
// registry order; each API is its own failure domain.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/syncgen/syncgen/internal/detect"
	"github.com/syncgen/syncgen/internal/fetch"
	"github.com/syncgen/syncgen/internal/generator"
	"github.com/syncgen/syncgen/internal/models"
	"github.com/syncgen/syncgen/internal/reconcile"
	"github.com/syncgen/syncgen/internal/registry"
	"github.com/syncgen/syncgen/internal/settings"
	"github.com/syncgen/syncgen/internal/utils"
	"github.com/syncgen/syncgen/internal/utils/fileops"

	"github.com/syncgen/syncgen/internal/bridge"
)

// Options select the batch mode.
type Options struct {
	Force      bool // regenerate even when the hash matches
	Strict     bool // abort the remaining batch on any failure
	DryRun     bool // validate mode: reconcile against existing artifacts, no writes
	AutoUpdate bool // validate mode: apply model merges, still no hash updates
}

// Runner wires all pipeline components together.
type Runner struct {
	paths      Paths
	store      *registry.Store
	hashes     *registry.HashStore
	detector   *detect.Detector
	invoker    generator.Invoker
	inspector  *generator.Inspector
	reconciler *reconcile.Reconciler
	fetcher    *fetch.Fetcher
	diag       *utils.DiagnosticSystem
	ops        *fileops.FileOps
	timeout    time.Duration
}

// NewRunner builds a runner over the given project layout. The invoker is
// injected so tests can substitute a fake generator.
func NewRunner(paths Paths, invoker generator.Invoker, diag *utils.DiagnosticSystem) *Runner {
	ops := fileops.NewFileOps()
	hashes := registry.NewHashStore(paths.HashDir, ops)
	return &Runner{
		paths:      paths,
		store:      registry.NewStore(paths.RegistryFile, ops),
		hashes:     hashes,
		detector:   detect.NewDetector(hashes, paths.GeneratedRoot),
		invoker:    invoker,
		inspector:  generator.NewInspector(ops),
		reconciler: reconcile.NewReconciler(paths.ModelsDir, ops),
		fetcher:    fetch.NewFetcher(paths.SchemasDir, ops),
		diag:       diag,
		ops:        ops,
	}
}

// SetGeneratorTimeout bounds each generator invocation. Zero means no limit.
func (r *Runner) SetGeneratorTimeout(d time.Duration) {
	r.timeout = d
}

// Store exposes the registry store for the CLI layer.
func (r *Runner) Store() *registry.Store {
	return r.store
}

// LocalizeSchema downloads a remote schema and rewrites the entry to point
// at the local copy. Persisted entries must always carry local paths, so
// callers localize before the first Upsert.
func (r *Runner) LocalizeSchema(ctx context.Context, entry models.RegistryEntry) (models.RegistryEntry, error) {
	if !entry.RemoteSchema() {
		return entry, nil
	}
	local, err := r.fetcher.Localize(ctx, entry)
	if err != nil {
		return entry, err
	}
	r.diag.Verbose("%s: schema downloaded to %s", entry.Name, local)
	entry.SchemaPath = local
	return entry, nil
}

// RunAll processes the named entries, or every registry entry when names is
// empty. Only configuration errors abort the whole batch.
func (r *Runner) RunAll(ctx context.Context, names []string, opts Options) (*models.RunSummary, error) {
	entries, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	selected, err := selectEntries(entries, names)
	if err != nil {
		return nil, err
	}

	summary := &models.RunSummary{}
	for i, entry := range selected {
		if !entry.Active() {
			summary.Add(models.APIResult{API: entry.Name, Skipped: true, Reason: "no generation options enabled"})
			continue
		}

		result := r.runAPI(ctx, entry, opts)
		summary.Add(result)
		r.reportAPI(result)

		var perr *models.PipelineError
		if errors.As(result.Err, &perr) && perr.Fatal() {
			return summary, result.Err
		}

		if opts.Strict && shouldAbort(result, opts) && i < len(selected)-1 {
			r.diag.Warn("strict mode: aborting remaining %d entries", len(selected)-i-1)
			break
		}
	}
	return summary, nil
}

// runAPI executes the full sub-pipeline for one API. The hash record and
// registry entry are persisted only after everything else succeeded, so a
// recorded hash never stands for a partially-applied generation.
func (r *Runner) runAPI(ctx context.Context, entry models.RegistryEntry, opts Options) models.APIResult {
	result := models.APIResult{API: entry.Name}

	// Entries normally arrive with local paths already; this covers a
	// registry edited by hand to point at a URL again.
	if !opts.DryRun {
		localized, err := r.LocalizeSchema(ctx, entry)
		if err != nil {
			result.Err = err
			return result
		}
		entry = localized
	}

	outputDir := generator.OutputDir(r.paths.GeneratedRoot, entry.Name)

	var artifact *models.ArtifactSet
	var currentHash string

	if opts.DryRun {
		a, err := generator.DiscoverArtifacts(outputDir, entry.Name)
		if err != nil {
			result.Err = models.NewGenerationError(entry.Name, "nothing to validate against", err).
				WithSuggestions("Run `syncgen regenerate " + entry.Name + "` first")
			return result
		}
		artifact = a
	} else {
		decision, err := r.detector.ShouldRegenerate(entry, opts.Force)
		if err != nil {
			result.Err = err
			return result
		}
		if !decision.Regenerate {
			result.Skipped = true
			result.Reason = decision.Reason
			return result
		}
		currentHash = decision.CurrentHash
		r.diag.Verbose("%s: regenerating (%s)", entry.Name, decision.Reason)
		r.diag.Debug("%s: schema hash %s", entry.Name, currentHash)

		a, err := r.generate(ctx, entry, outputDir)
		if err != nil {
			result.Err = err
			return result
		}
		artifact = a
		result.Generated = true
	}

	stage := &Stage{}

	if entry.Options.GenerateModels {
		for _, modelName := range expectedModels(entry) {
			resolved := r.inspector.ResolveExportedName(artifact.Root, modelName)
			if resolved.Fallback {
				r.diag.Warn("%s: no generated declaration found for %q, assuming %s",
					entry.Name, modelName, resolved.Name)
			}

			outcome := r.reconciler.Reconcile(artifact, modelName, resolved)
			result.Models = append(result.Models, models.ModelResult{
				API:    entry.Name,
				Model:  modelName,
				Result: outcome.Result,
				Err:    outcome.Err,
			})
			if outcome.Err != nil {
				continue
			}
			if outcome.Content != "" {
				stage.Add(outcome.Path, outcome.Content)
			}
		}
	}

	if opts.DryRun {
		if opts.AutoUpdate && stage.Len() > 0 {
			if err := stage.Commit(r.ops); err != nil {
				result.Err = models.NewReconciliationError(entry.Name, "", "cannot apply merges", err)
			}
		}
		return result
	}

	bridgeContent, err := r.synthesizeBridge(entry, artifact)
	if err != nil {
		result.Err = err
		return result
	}
	stage.Add(r.paths.BridgeFile, bridgeContent)

	if entry.URL != "" {
		if err := r.stageSettingsKey(stage, entry); err != nil {
			result.Err = err
			return result
		}
	}

	if err := stage.Commit(r.ops); err != nil {
		result.Err = models.NewGenerationError(entry.Name, "cannot commit staged files", err)
		return result
	}

	if modelErrors(result) > 0 {
		result.Reason = "hash not recorded: model reconciliation errors"
		return result
	}

	if err := r.hashes.Put(entry.Name, currentHash); err != nil {
		result.Err = models.NewGenerationError(entry.Name, "cannot record schema hash", err)
		return result
	}
	if err := r.store.Upsert(entry); err != nil {
		result.Err = err
		return result
	}
	return result
}

// generate invokes the external generator and normalizes its output shape.
func (r *Runner) generate(ctx context.Context, entry models.RegistryEntry, outputDir string) (*models.ArtifactSet, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	artifact, err := r.invoker.Invoke(ctx, generator.Config{
		APIName:       entry.Name,
		SchemaPath:    entry.SchemaPath,
		OutputDir:     outputDir,
		PackageName:   generator.PackageName(entry.Name),
		IncludeModels: entry.Options.IncludeModels,
	})
	if err != nil {
		return nil, err
	}

	if err := generator.EnsureSkeleton(artifact, entry.Options); err != nil {
		return nil, models.NewGenerationError(entry.Name, "cannot complete module skeleton", err)
	}
	return artifact, nil
}

// synthesizeBridge regenerates the aggregation module from every active
// entry in the registry, resolving names from the artifacts on disk. The
// current API's freshly generated artifact is used directly.
func (r *Runner) synthesizeBridge(current models.RegistryEntry, currentArtifact *models.ArtifactSet) (string, error) {
	active, err := r.store.ListActive()
	if err != nil {
		return "", err
	}

	// A brand-new entry is upserted only after its first successful run, so
	// make sure the current one participates.
	found := false
	for i := range active {
		if active[i].Name == current.Name {
			active[i] = current
			found = true
			break
		}
	}
	if !found && current.Active() {
		active = append(active, current)
	}

	resolved := make(map[string]models.ResolvedName, len(active))
	included := active[:0]
	for _, entry := range active {
		root := generator.OutputDir(r.paths.GeneratedRoot, entry.Name)
		if entry.Name == current.Name && currentArtifact != nil {
			root = currentArtifact.Root
		} else if _, err := os.Stat(root); err != nil {
			r.diag.Verbose("bridge: skipping %s, no generated output yet", entry.Name)
			continue
		}
		resolved[entry.Name] = r.inspector.ResolveExportedName(root, entry.EntityName)
		included = append(included, entry)
	}

	modulePath, err := utils.ModulePath(r.paths.ProjectDir)
	if err != nil {
		return "", models.NewConfigurationError("cannot resolve host module path", err)
	}

	rel, err := relToProject(r.paths.ProjectDir, r.paths.GeneratedRoot)
	if err != nil {
		return "", models.NewConfigurationError("generated root is outside the project", err)
	}

	synth := bridge.NewSynthesizer(modulePath, rel)
	content, err := synth.Synthesize(included, resolved)
	if err != nil {
		return "", models.NewGenerationError(current.Name, "cannot synthesize bridge module", err)
	}
	return content, nil
}

// stageSettingsKey stages the derived `<name>_url` key under the settings
// section, if it is not already present.
func (r *Runner) stageSettingsKey(stage *Stage, entry models.RegistryEntry) error {
	raw, err := os.ReadFile(r.paths.SettingsFile)
	if err != nil {
		return models.NewConfigurationError(
			fmt.Sprintf("cannot read settings file %s", r.paths.SettingsFile), err)
	}

	patched, changed := settings.EnsureKeyInContent(string(raw),
		r.paths.SettingsSection, entry.Name+"_url", entry.URL)
	if changed {
		stage.Add(r.paths.SettingsFile, patched)
	}
	return nil
}

// expectedModels returns the models to reconcile for an entry: the include
// list when present, otherwise the primary entity, minus exclusions.
func expectedModels(entry models.RegistryEntry) []string {
	candidates := entry.Options.IncludeModels
	if len(candidates) == 0 {
		candidates = []string{entry.EntityName}
	}

	wanted := make([]string, 0, len(candidates))
	for _, name := range candidates {
		if name != "" && entry.WantsModel(name) {
			wanted = append(wanted, name)
		}
	}
	return wanted
}

// selectEntries filters the registry by the requested names, preserving
// registry order. Asking for an unknown name is a configuration error.
func selectEntries(entries []models.RegistryEntry, names []string) ([]models.RegistryEntry, error) {
	if len(names) == 0 {
		return entries, nil
	}

	byName := make(map[string]bool, len(entries))
	for _, entry := range entries {
		byName[entry.Name] = true
	}
	for _, name := range names {
		if !byName[name] {
			return nil, models.NewConfigurationError(
				fmt.Sprintf("no registry entry named %q", name), nil)
		}
	}

	requested := make(map[string]bool, len(names))
	for _, name := range names {
		requested[name] = true
	}

	var selected []models.RegistryEntry
	for _, entry := range entries {
		if requested[entry.Name] {
			selected = append(selected, entry)
		}
	}
	return selected, nil
}

// modelErrors counts models that failed to reconcile.
func modelErrors(result models.APIResult) int {
	n := 0
	for _, m := range result.Models {
		if m.Result == models.DiffError {
			n++
		}
	}
	return n
}

// shouldAbort decides whether strict mode stops the batch after this API.
func shouldAbort(result models.APIResult, opts Options) bool {
	if result.Err != nil || modelErrors(result) > 0 {
		return true
	}
	if opts.DryRun {
		for _, m := range result.Models {
			if m.Result == models.DiffNew || m.Result == models.DiffChanged {
				return true
			}
		}
	}
	return false
}
