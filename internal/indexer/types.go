package indexer

import "time"

// PipelineResult summarizes the outcome of an indexing run.
type PipelineResult struct {
	Indexed  int
	Skipped  int
	Removed  int
	Rebuilt  bool
	Duration time.Duration
	Errors   []error
}
