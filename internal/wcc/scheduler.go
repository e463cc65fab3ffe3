package wcc

import (
	"context"
	"runtime"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/unbound-force/wcov/internal/complexity"
	"github.com/unbound-force/wcov/internal/coverage"
)

// DefaultWorkers is the default pool size: available parallelism
// minus one, never below one.
func DefaultWorkers() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return n
}

// Runner distributes per-file fusion and scoring across a bounded
// worker pool and merges the results deterministically.
//
// The coverage table and complexity report are read-only during
// fan-out; each worker writes into its own result slot, so no locking
// guards the metric computation itself.
type Runner struct {
	Coverage   coverage.Table
	Complexity complexity.Report
	Thresholds Derived

	// Workers bounds the pool. Zero or negative selects
	// DefaultWorkers().
	Workers int

	// Sort orders the final file list. Applied once, after all
	// aggregation; task completion order never leaks into the output.
	Sort SortKey

	// Progress, when set, is invoked after each file completes. It
	// may be called from multiple goroutines.
	Progress func(done, total int)
}

// fileResult is one worker's slot: either a scored file or the reason
// it was ignored.
type fileResult struct {
	metrics FileMetrics
	totals  FileTotals
	ignored bool
}

// Run fuses and scores every file, aggregates the project rollup, and
// returns the sorted output. Per-file failures degrade the file to
// the ignored set; only context cancellation aborts the run.
func (r *Runner) Run(ctx context.Context) (*Output, error) {
	paths := r.paths()

	workers := r.Workers
	if workers <= 0 {
		workers = DefaultWorkers()
	}

	results := make([]fileResult, len(paths))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			results[i] = r.processFile(path)

			if r.Progress != nil {
				r.Progress(int(done.Add(1)), len(paths))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Join point: split slots into scored files and ignored paths.
	// paths is sorted, so files arrive in path order and min/max ties
	// resolve deterministically.
	var (
		files   []FileMetrics
		totals  []FileTotals
		ignored []string
	)
	for i, res := range results {
		if res.ignored {
			ignored = append(ignored, paths[i])
			continue
		}
		files = append(files, res.metrics)
		totals = append(totals, res.totals)
	}

	project := Aggregate(files, totals, r.Thresholds)
	SortFiles(files, r.Sort)

	return &Output{Files: files, Project: project, Ignored: ignored}, nil
}

// processFile runs fusion and scoring for one file. Any fusion error
// (no coverage, no spaces) marks the slot ignored.
func (r *Runner) processFile(path string) fileResult {
	fused, summary, err := Fuse(path, r.Complexity[path], r.Coverage)
	if err != nil {
		return fileResult{ignored: true}
	}
	metrics, totals := ScoreFile(path, fused, summary, r.Thresholds)
	return fileResult{metrics: metrics, totals: totals}
}

// paths returns the sorted union of the files known to either input.
// A file present in only one of them is still scheduled so it lands
// in the ignored list.
func (r *Runner) paths() []string {
	seen := make(map[string]bool, len(r.Complexity))
	var paths []string
	for p := range r.Complexity {
		seen[p] = true
		paths = append(paths, p)
	}
	for p := range r.Coverage {
		if !seen[p] {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}
