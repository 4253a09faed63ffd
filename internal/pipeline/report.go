package pipeline

import (
	"errors"

	"github.com/syncgen/syncgen/internal/models"
)

// reportAPI prints the outcome of one API sub-pipeline as it completes.
func (r *Runner) reportAPI(result models.APIResult) {
	r.diag.APIHeader(result.API)

	switch {
	case result.Err != nil:
		r.diag.Error("%v", result.Err)
		var perr *models.PipelineError
		if errors.As(result.Err, &perr) {
			for _, hint := range perr.Suggestions {
				r.diag.List("%s", hint)
			}
		}
		return
	case result.Skipped:
		r.diag.Info("skipped: %s", result.Reason)
		return
	}

	for _, m := range result.Models {
		r.diag.DiffLine(m.Model, m.Result.String())
		if m.Err != nil {
			r.diag.Indent()
			r.diag.Error("%v", m.Err)
			r.diag.Unindent()
		}
	}
	if result.Reason != "" {
		r.diag.Warn("%s", result.Reason)
	}
}

// Report prints the end-of-batch summary.
func (r *Runner) Report(summary *models.RunSummary) {
	generated, skipped, failed := summary.Counts()
	stats := map[string]interface{}{
		"APIs processed": len(summary.APIs),
		"Regenerated":    generated,
		"Skipped":        skipped,
		"Failed":         failed,
	}
	r.diag.Summary("Pipeline complete", stats)

	if summary.Drift() {
		r.diag.Warn("drift detected: stored models differ from generated definitions")
	}
}
