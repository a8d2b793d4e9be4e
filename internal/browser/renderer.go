// Package browser renders JavaScript-heavy career boards with headless
// Chrome. BrassRing, Workday, TeamEngine and some Paycom tenants deliver an
// empty shell over plain HTTP; the renderer is the shared fallback those
// scrapers reach for.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

var ErrNotStarted = errors.New("browser not started")

// Options configures the shared Chrome instance.
type Options struct {
	UserAgent string
	Headless  bool
	NoSandbox bool
}

// Renderer owns one Chrome process; each Render opens a fresh tab. Starting
// Chrome is expensive, so the process is created lazily on first use and
// shared across scrapers within a run.
type Renderer struct {
	opts Options

	mu              sync.Mutex
	browserCtx      context.Context
	browserCancel   context.CancelFunc
	allocatorCancel context.CancelFunc
	started         bool
}

// RenderOptions bound one page load.
type RenderOptions struct {
	// WaitVisible blocks until the selector renders, catching boards whose
	// listings arrive well after load.
	WaitVisible string

	// Settle is extra time for client-side rendering after navigation.
	Settle time.Duration
}

func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

func (r *Renderer) start() error {
	if r.started {
		return nil
	}

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocOpts = append(allocOpts,
		chromedp.Flag("headless", r.opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
	)
	if r.opts.NoSandbox {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}
	if r.opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(r.opts.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Prove Chrome actually launches before handing the context out.
	probeCtx, probeCancel := context.WithTimeout(browserCtx, 30*time.Second)
	defer probeCancel()
	if err := chromedp.Run(probeCtx, chromedp.Navigate("about:blank")); err != nil {
		browserCancel()
		allocCancel()
		return fmt.Errorf("start chrome: %w", err)
	}

	r.browserCtx = browserCtx
	r.browserCancel = browserCancel
	r.allocatorCancel = allocCancel
	r.started = true
	return nil
}

// Render navigates to target in a new tab and returns the outer HTML after
// the page settles. The caller's context bounds the whole operation.
func (r *Renderer) Render(ctx context.Context, target string, opts RenderOptions) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.start(); err != nil {
		return "", err
	}

	tabCtx, tabCancel := chromedp.NewContext(r.browserCtx)
	defer tabCancel()
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		tabCtx, cancel = context.WithDeadline(tabCtx, deadline)
		defer cancel()
	}

	actions := []chromedp.Action{chromedp.Navigate(target)}
	if opts.WaitVisible != "" {
		actions = append(actions, chromedp.WaitVisible(opts.WaitVisible, chromedp.ByQuery))
	}
	if opts.Settle > 0 {
		actions = append(actions, chromedp.Sleep(opts.Settle))
	}

	var html string
	actions = append(actions, chromedp.OuterHTML("html", &html))

	if err := chromedp.Run(tabCtx, actions...); err != nil {
		return "", fmt.Errorf("render %s: %w", target, err)
	}
	if html == "" {
		return "", fmt.Errorf("render %s: empty document", target)
	}
	return html, nil
}

// Close tears down the Chrome process. Safe to call without a prior Render.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return
	}
	r.browserCancel()
	r.allocatorCancel()
	r.started = false
}
