// Package schedule drives recurring scrape cycles from a cron expression.
package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jimezsa/horizons/internal/pipeline"
)

// RunTimeout bounds one scheduled cycle end to end.
const RunTimeout = 30 * time.Minute

type Watcher struct {
	Runner  *pipeline.Runner
	Options pipeline.RunOptions
	Logger  zerolog.Logger

	cron *cron.Cron
}

func NewWatcher(runner *pipeline.Runner, opts pipeline.RunOptions, logger zerolog.Logger) *Watcher {
	return &Watcher{
		Runner:  runner,
		Options: opts,
		Logger:  logger,
		cron:    cron.New(),
	}
}

// Start registers the schedule and begins firing cycles. An immediate run
// happens first so a fresh deployment does not sit empty until the next
// cron tick.
func (w *Watcher) Start(schedule string) error {
	if schedule == "" {
		return errors.New("empty schedule")
	}

	if _, err := w.cron.AddFunc(schedule, w.runOnce); err != nil {
		return err
	}

	w.runOnce()
	w.cron.Start()
	w.Logger.Info().Str("schedule", schedule).Msg("watch started")
	return nil
}

// Stop halts the schedule, letting a running cycle finish.
func (w *Watcher) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.Logger.Info().Msg("watch stopped")
}

func (w *Watcher) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), RunTimeout)
	defer cancel()

	started := time.Now()
	summary, err := w.Runner.Run(ctx, w.Options)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptySnapshot) {
			w.Logger.Warn().Msg("cycle produced no jobs; keeping previous snapshot")
			return
		}
		w.Logger.Error().Err(err).Msg("scheduled cycle failed")
		return
	}

	w.Logger.Info().
		Int("fresh", summary.Fresh).
		Int("merged", summary.Merged).
		Int("failures", len(summary.Failures())).
		Dur("elapsed", time.Since(started)).
		Msg("cycle complete")
}
