package models

// ModelResult records the reconciliation outcome for one model of one API.
type ModelResult struct {
	API    string
	Model  string
	Result DiffResult
	Err    error
}

// APIResult records the outcome of the full sub-pipeline for one API.
type APIResult struct {
	API       string
	Skipped   bool   // change detection decided nothing needed to happen
	Reason    string // human-readable skip/failure reason
	Err       error  // per-API failure, nil when the sub-pipeline succeeded
	Models    []ModelResult
	Generated bool // the external generator actually ran
}

// RunSummary aggregates the results of a whole batch run.
type RunSummary struct {
	APIs []APIResult
}

// Add appends one API result to the summary.
func (s *RunSummary) Add(result APIResult) {
	s.APIs = append(s.APIs, result)
}

// Drift reports whether any model was classified New or Changed.
func (s *RunSummary) Drift() bool {
	for _, api := range s.APIs {
		for _, m := range api.Models {
			if m.Result == DiffNew || m.Result == DiffChanged {
				return true
			}
		}
	}
	return false
}

// Failed reports whether any API or model ended in an error.
func (s *RunSummary) Failed() bool {
	for _, api := range s.APIs {
		if api.Err != nil {
			return true
		}
		for _, m := range api.Models {
			if m.Result == DiffError {
				return true
			}
		}
	}
	return false
}

// Counts returns totals for the final summary line.
func (s *RunSummary) Counts() (generated, skipped, failed int) {
	for _, api := range s.APIs {
		switch {
		case api.Err != nil:
			failed++
		case api.Skipped:
			skipped++
		case api.Generated:
			generated++
		}
	}
	return generated, skipped, failed
}
