// Package pipeline runs the scrape-normalize-merge-persist cycle. A run
// never dies because one board is down: failed sources contribute zero
// jobs and are reported, and the previous snapshot stays untouched unless
// a save is actually warranted.
package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jimezsa/horizons/internal/models"
	"github.com/jimezsa/horizons/internal/scraper"
	"github.com/jimezsa/horizons/internal/snapshot"
)

// ErrEmptySnapshot is returned when a run produced no jobs at all while
// the existing snapshot has some. Persisting would wipe real data over
// what is almost always a transient outage, so the save is refused unless
// forced.
var ErrEmptySnapshot = errors.New("refusing to replace non-empty snapshot with empty result")

// DefaultTimeout bounds one source's fetch, detail pages and rendering
// included.
const DefaultTimeout = 90 * time.Second

type Runner struct {
	Sources     map[string]scraper.Source
	Order       []string
	Timeout     time.Duration
	Concurrency int
	Logger      zerolog.Logger
}

// SourceResult is the outcome of one board's fetch within a run.
type SourceResult struct {
	Name     string
	Jobs     []models.Job
	Err      error
	Raw      int
	Rejected int
	Elapsed  time.Duration
}

// RunOptions control one persist cycle.
type RunOptions struct {
	SnapshotPath string
	Policy       snapshot.Policy
	Force        bool
}

// RunSummary reports what a cycle did.
type RunSummary struct {
	Results  []SourceResult
	Previous int
	Fresh    int
	Merged   int
	Saved    bool
}

// Failures returns the results that errored.
func (s RunSummary) Failures() []SourceResult {
	var failed []SourceResult
	for _, res := range s.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Collect fetches every configured source and returns the normalized jobs
// in configured order. Sources run concurrently, but the returned slice is
// ordered by position in r.Order, never by completion: downstream merging
// derives duplicate precedence from that order.
func (r *Runner) Collect(ctx context.Context) ([]models.Job, []SourceResult) {
	order := r.Order
	if len(order) == 0 {
		order = scraper.DefaultOrder
	}

	results := make([]SourceResult, len(order))

	limit := r.Concurrency
	if limit <= 0 {
		limit = 4
	}
	sem := make(chan struct{}, limit)

	var wg sync.WaitGroup
	for i, name := range order {
		source, ok := r.Sources[name]
		if !ok {
			results[i] = SourceResult{Name: name, Err: errors.New("unknown source")}
			continue
		}

		wg.Add(1)
		go func(i int, name string, source scraper.Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = r.fetchOne(ctx, name, source)
		}(i, name, source)
	}
	wg.Wait()

	var jobs []models.Job
	for _, res := range results {
		jobs = append(jobs, res.Jobs...)
	}
	return jobs, results
}

func (r *Runner) fetchOne(ctx context.Context, name string, source scraper.Source) SourceResult {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()
	raws, err := source.Fetch(fetchCtx)
	res := SourceResult{Name: name, Err: err, Raw: len(raws), Elapsed: time.Since(started)}
	if err != nil {
		r.Logger.Warn().Str("source", name).Dur("elapsed", res.Elapsed).Err(err).Msg("source failed")
		return res
	}

	opts := source.Options()
	for _, raw := range raws {
		job, ok := opts.Job(raw)
		if !ok {
			res.Rejected++
			continue
		}
		res.Jobs = append(res.Jobs, job)
	}

	r.Logger.Debug().
		Str("source", name).
		Int("raw", res.Raw).
		Int("jobs", len(res.Jobs)).
		Int("rejected", res.Rejected).
		Dur("elapsed", res.Elapsed).
		Msg("source done")
	return res
}

// Run executes one full cycle: load the previous snapshot, collect fresh
// jobs, merge under the configured policy and persist atomically. Collect
// failures are soft; a failed save is not.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (RunSummary, error) {
	previous, err := snapshot.Load(opts.SnapshotPath)
	if err != nil {
		r.Logger.Warn().Str("path", opts.SnapshotPath).Err(err).Msg("starting from empty snapshot")
	}

	fresh, results := r.Collect(ctx)
	summary := RunSummary{
		Results:  results,
		Previous: len(previous),
		Fresh:    len(fresh),
	}

	if len(fresh) == 0 && len(previous) > 0 && !opts.Force {
		return summary, ErrEmptySnapshot
	}

	merged := snapshot.Merge(opts.Policy, previous, fresh)
	summary.Merged = len(merged)

	if err := snapshot.Save(opts.SnapshotPath, merged); err != nil {
		return summary, err
	}
	summary.Saved = true

	r.Logger.Info().
		Int("previous", summary.Previous).
		Int("fresh", summary.Fresh).
		Int("merged", summary.Merged).
		Str("path", opts.SnapshotPath).
		Msg("snapshot saved")
	return summary, nil
}
