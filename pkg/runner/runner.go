package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/docinspect/pkg/reporter"
)

// ErrNoProcessor is returned by Run when the Runner has no Process function.
var ErrNoProcessor = errors.New("runner has no processor")

// Processor inspects one file and returns its report.
type Processor func(ctx context.Context, path string) (*reporter.Report, error)

// Runner inspects many files with a bounded worker pool.
type Runner struct {
	Process Processor
}

// New creates a Runner that inspects each file with process.
func New(process Processor) *Runner {
	return &Runner{Process: process}
}

// Run discovers files under opts.Paths and inspects them concurrently.
// Outcomes are returned in path order regardless of completion order. A
// failing file is recorded in its outcome and does not stop the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if r == nil || r.Process == nil {
		return nil, ErrNoProcessor
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	// Each worker writes only its own slot, so outcomes keep path order.
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	var g errgroup.Group
	g.SetLimit(min(jobs, len(files)))
	for idx, path := range files {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outcome := FileOutcome{Path: path}
			report, err := r.Process(ctx, path)
			if err != nil {
				outcome.Error = err
			} else {
				outcome.Report = report
			}
			outcomes[idx] = outcome
			done[idx] = true
			return nil
		})
	}
	_ = g.Wait()

	for idx, outcome := range outcomes {
		if done[idx] {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}
