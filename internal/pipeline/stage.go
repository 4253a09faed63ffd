package pipeline

import (
	"github.com/syncgen/syncgen/internal/utils/fileops"
)

// stagedWrite is one pending file write.
type stagedWrite struct {
	path    string
	content string
}

// Stage accumulates file contents in memory during a per-API sub-pipeline.
// Nothing touches disk until Commit, so a failure halfway through leaves no
// partially-applied artifacts behind.
type Stage struct {
	writes []stagedWrite
}

// Add queues a file write. Adding the same path twice keeps the later
// content.
func (s *Stage) Add(path, content string) {
	for i := range s.writes {
		if s.writes[i].path == path {
			s.writes[i].content = content
			return
		}
	}
	s.writes = append(s.writes, stagedWrite{path: path, content: content})
}

// Len returns the number of queued writes.
func (s *Stage) Len() int {
	return len(s.writes)
}

// Paths returns the queued target paths in order.
func (s *Stage) Paths() []string {
	paths := make([]string, len(s.writes))
	for i, w := range s.writes {
		paths[i] = w.path
	}
	return paths
}

// Commit flushes every queued write atomically, in order.
func (s *Stage) Commit(ops *fileops.FileOps) error {
	for _, w := range s.writes {
		if err := ops.WriteFileAtomic(w.path, []byte(w.content), 0644); err != nil {
			return err
		}
	}
	return nil
}
