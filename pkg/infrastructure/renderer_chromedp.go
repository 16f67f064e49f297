package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"golang.org/x/sync/semaphore"
)

// A4 paper and print margins in inches.
const (
	a4WidthIn    = 8.27
	a4HeightIn   = 11.69
	marginTopIn  = 20 / 25.4
	marginSideIn = 15 / 25.4
)

var ErrRendererClosed = errors.New("renderer closed")

type RendererConfig struct {
	ChromePath  string
	Concurrency int64
	Timeout     time.Duration
}

// ChromedpRenderer prints HTML to PDF through one shared headless Chrome.
// The browser is started on first use and restarted if it dies; every render
// runs in its own tab.
type ChromedpRenderer struct {
	opts    []chromedp.ExecAllocatorOption
	sem     *semaphore.Weighted
	timeout time.Duration

	mu            sync.Mutex
	closed        bool
	launching     *launch
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
}

// launch is one in-flight browser start shared by all waiting renders.
type launch struct {
	done chan struct{}
	err  error
}

var errLaunchTimeout = errors.New("browser did not start in time")

func NewChromedpRenderer(cfg RendererConfig) *ChromedpRenderer {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-accelerated-2d-canvas", true),
		chromedp.Flag("no-first-run", true),
		chromedp.WindowSize(794, 1123),
	)
	if cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ChromePath))
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &ChromedpRenderer{
		opts:    opts,
		sem:     semaphore.NewWeighted(cfg.Concurrency),
		timeout: cfg.Timeout,
	}
}

// browser returns the shared browser context, launching Chrome if needed.
// The mutex is never held while Chrome starts; callers wait on the launch
// and give up when ctx is done.
func (r *ChromedpRenderer) browser(ctx context.Context) (context.Context, error) {
	for {
		r.mu.Lock()
		if r.closed {
			r.mu.Unlock()
			return nil, ErrRendererClosed
		}
		if r.browserCtx != nil && r.browserCtx.Err() == nil {
			b := r.browserCtx
			r.mu.Unlock()
			return b, nil
		}
		l := r.launching
		if l == nil {
			r.shutdownLocked()
			l = &launch{done: make(chan struct{})}
			r.launching = l
			go r.start(l)
		}
		r.mu.Unlock()

		select {
		case <-l.done:
			if l.err != nil {
				return nil, l.err
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// start launches Chrome and publishes the result to everyone waiting on l.
// A start that exceeds the render timeout is aborted.
func (r *ChromedpRenderer) start(l *launch) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), r.opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	abort := func() {
		cancelBrowser()
		cancelAlloc()
	}

	// the first Run on a fresh context starts the browser process; its
	// context must outlive the launch, so the timeout is applied here
	errc := make(chan error, 1)
	go func() { errc <- chromedp.Run(browserCtx) }()
	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	var err error
	select {
	case err = <-errc:
	case <-timer.C:
		err = errLaunchTimeout
	}

	r.mu.Lock()
	r.launching = nil
	switch {
	case err != nil:
		abort()
		l.err = fmt.Errorf("launch browser: %w", err)
		slog.Error("renderer: headless browser failed to start", "error", err)
	case r.closed:
		abort()
		l.err = ErrRendererClosed
	default:
		r.browserCtx, r.cancelBrowser, r.cancelAlloc = browserCtx, cancelBrowser, cancelAlloc
		slog.Info("renderer: headless browser started")
	}
	r.mu.Unlock()
	close(l.done)
}

func (r *ChromedpRenderer) shutdownLocked() {
	if r.cancelBrowser != nil {
		r.cancelBrowser()
	}
	if r.cancelAlloc != nil {
		r.cancelAlloc()
	}
	r.browserCtx, r.cancelBrowser, r.cancelAlloc = nil, nil, nil
}

// RenderHTMLToPDF loads html into a new tab and prints it as an A4 PDF.
// Browser start, tab creation and printing all stop when ctx is done or the
// render timeout passes.
func (r *ChromedpRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer r.sem.Release(1)

	deadline, cancelDeadline := context.WithTimeout(ctx, r.timeout)
	defer cancelDeadline()

	browserCtx, err := r.browser(deadline)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	tabCtx, closeTab := chromedp.NewContext(browserCtx)
	defer closeTab()
	runCtx, cancel := context.WithTimeout(tabCtx, r.timeout)
	defer cancel()
	stop := context.AfterFunc(deadline, cancel)
	defer stop()

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthIn).
				WithPaperHeight(a4HeightIn).
				WithMarginTop(marginTopIn).
				WithMarginBottom(marginTopIn).
				WithMarginLeft(marginSideIn).
				WithMarginRight(marginSideIn).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	return pdfBuf, nil
}

// Close stops the browser. Later renders fail with ErrRendererClosed.
func (r *ChromedpRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.shutdownLocked()
	return nil
}
