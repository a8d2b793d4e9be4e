package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jimezsa/horizons/internal/browser"
	"github.com/jimezsa/horizons/internal/config"
	"github.com/jimezsa/horizons/internal/network"
	"github.com/jimezsa/horizons/internal/pipeline"
	"github.com/jimezsa/horizons/internal/scraper"
	"github.com/jimezsa/horizons/internal/snapshot"
)

// ScrapeOptions are the flags shared by run and watch.
type ScrapeOptions struct {
	Sources     string `help:"Comma-separated list of sources (default: all)." default:"all"`
	Snapshot    string `help:"Snapshot JSON path (default: jobs.json in the config dir)."`
	Policy      string `help:"Merge policy: replace or union." enum:",replace,union" default:""`
	Timeout     int    `help:"Per-source timeout in seconds."`
	Concurrency int    `help:"Sources fetched in parallel."`
	Force       bool   `help:"Persist even an empty result over existing data."`
	Proxies     string `help:"Comma-separated proxy URLs." env:"HORIZONS_PROXIES"`
	Headful     bool   `help:"Run the browser with a visible window."`
}

type RunCmd struct {
	ScrapeOptions
}

func (r *RunCmd) Run(ctx *Context) error {
	runner, opts, cleanup, err := buildRunner(ctx, r.ScrapeOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := runner.Run(sigCtx, opts)
	reportRun(ctx, summary)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptySnapshot) {
			return fmt.Errorf("%w (use --force to override)", err)
		}
		return err
	}
	return nil
}

func reportRun(ctx *Context, summary pipeline.RunSummary) {
	for _, res := range summary.Results {
		if res.Err != nil {
			ctx.UI.Warnf("%s: %v", res.Name, res.Err)
			continue
		}
		if ctx.Verbose {
			ctx.UI.Infof("%s: %d jobs (%d rejected, %s)", res.Name, len(res.Jobs), res.Rejected, res.Elapsed.Round(time.Millisecond))
		}
	}
	if summary.Saved {
		ctx.UI.Successf("Snapshot updated: %d jobs (%d fresh, %d previous)", summary.Merged, summary.Fresh, summary.Previous)
	}
}

// buildRunner wires proxies, browser, registry and pipeline from flags and
// config. The returned cleanup closes the browser.
func buildRunner(ctx *Context, opts ScrapeOptions) (*pipeline.Runner, pipeline.RunOptions, func(), error) {
	noop := func() {}

	proxies, err := config.LoadProxies(opts.Proxies)
	if err != nil {
		return nil, pipeline.RunOptions{}, noop, err
	}

	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, 10*time.Minute)
		if err != nil {
			return nil, pipeline.RunOptions{}, noop, err
		}
	}

	headless := ctx.Config.Headless && !opts.Headful
	renderer := browser.New(browser.Options{Headless: headless, NoSandbox: true})

	sources, err := scraper.Registry(rotator, renderer)
	if err != nil {
		renderer.Close()
		return nil, pipeline.RunOptions{}, noop, err
	}

	order, err := selectSources(opts.Sources, ctx.Config.Sources, sources)
	if err != nil {
		renderer.Close()
		return nil, pipeline.RunOptions{}, noop, err
	}

	policy, err := snapshot.ParsePolicy(firstNonEmpty(opts.Policy, ctx.Config.MergePolicy))
	if err != nil {
		renderer.Close()
		return nil, pipeline.RunOptions{}, noop, err
	}

	path := opts.Snapshot
	if strings.TrimSpace(path) == "" {
		path, err = ctx.Config.ResolveSnapshotPath()
		if err != nil {
			renderer.Close()
			return nil, pipeline.RunOptions{}, noop, err
		}
	}

	timeout := time.Duration(defaultInt(opts.Timeout, ctx.Config.TimeoutSec)) * time.Second
	runner := &pipeline.Runner{
		Sources:     sources,
		Order:       order,
		Timeout:     timeout,
		Concurrency: defaultInt(opts.Concurrency, ctx.Config.Concurrency),
		Logger:      ctx.Logger,
	}
	runOpts := pipeline.RunOptions{
		SnapshotPath: path,
		Policy:       policy,
		Force:        opts.Force,
	}
	return runner, runOpts, renderer.Close, nil
}

// selectSources resolves the requested subset to the fixed execution
// order. Flag beats config; "all" or empty means everything. Filtering
// keeps the canonical order so duplicate precedence never depends on how
// the subset was spelled.
func selectSources(flagValue string, configured []string, sources map[string]scraper.Source) ([]string, error) {
	requested := scraper.NormalizeNames(strings.Split(flagValue, ","))
	if len(requested) == 1 && requested[0] == "all" {
		requested = nil
	}
	if len(requested) == 0 {
		requested = scraper.NormalizeNames(configured)
	}
	if len(requested) == 0 {
		return scraper.DefaultOrder, nil
	}

	want := map[string]bool{}
	for _, name := range requested {
		if _, ok := sources[name]; !ok {
			return nil, fmt.Errorf("unknown source: %s (known: %s)", name, strings.Join(scraper.DefaultOrder, ", "))
		}
		want[name] = true
	}

	var order []string
	for _, name := range scraper.DefaultOrder {
		if want[name] {
			order = append(order, name)
		}
	}
	return order, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func defaultInt(value int, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
