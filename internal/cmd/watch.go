package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jimezsa/horizons/internal/schedule"
)

type WatchCmd struct {
	Schedule string `help:"Cron expression (standard five fields)."`
	ScrapeOptions
}

func (w *WatchCmd) Run(ctx *Context) error {
	runner, opts, cleanup, err := buildRunner(ctx, w.ScrapeOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	spec := firstNonEmpty(w.Schedule, ctx.Config.Schedule)
	watcher := schedule.NewWatcher(runner, opts, ctx.Logger)
	if err := watcher.Start(spec); err != nil {
		return err
	}
	ctx.UI.Infof("Watching on schedule %q; press Ctrl-C to stop", spec)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	watcher.Stop()
	return nil
}
