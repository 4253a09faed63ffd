package pipeline

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/syncgen/syncgen/internal/models"
)

// debounceWindow coalesces editor write bursts into a single rerun.
const debounceWindow = 500 * time.Millisecond

// Watch re-runs the batch whenever a tracked schema file changes. Runs stay
// strictly sequential; events arriving during a run are coalesced into one
// follow-up run.
func (r *Runner) Watch(ctx context.Context, names []string, opts Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return models.NewConfigurationError("cannot create file watcher", err)
	}
	defer watcher.Close()

	entries, err := r.store.Load()
	if err != nil {
		return err
	}
	selected, err := selectEntries(entries, names)
	if err != nil {
		return err
	}

	watched := 0
	for _, entry := range selected {
		if !entry.Active() || entry.RemoteSchema() {
			continue
		}
		if err := watcher.Add(entry.SchemaPath); err != nil {
			r.diag.Warn("cannot watch %s: %v", entry.SchemaPath, err)
			continue
		}
		r.diag.Verbose("watching %s", entry.SchemaPath)
		watched++
	}
	if watched == 0 {
		return models.NewConfigurationError("no local schema files to watch", nil)
	}

	r.diag.Info("watching %d schema file(s), press Ctrl-C to stop", watched)

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
			// Editors that replace files drop the watch; re-add.
			_ = watcher.Add(event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.diag.Warn("watch error: %v", err)
		case <-fire:
			summary, err := r.RunAll(ctx, names, opts)
			if err != nil {
				return err
			}
			r.Report(summary)
		}
	}
}
