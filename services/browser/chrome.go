package browser

import (
	"context"
	"errors"
	"time"

	"github.com/chromedp/chromedp"

	"comprende-prod/trademe/internal/crawler"
	"comprende-prod/trademe/logger"
	apperrors "comprende-prod/trademe/pkg/errors"
)

// ChromeSession drives a single Chrome tab through chromedp
type ChromeSession struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	opts        Options
	log         *logger.Logger
}

// allocatorOptions builds chromedp allocator options from the session options
func allocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	flags := opts.Flags
	if len(flags) == 0 {
		flags = DefaultFlags
	}

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	for _, f := range parseFlags(flags) {
		allocOpts = append(allocOpts, chromedp.Flag(f.name, f.value))
	}
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	return allocOpts
}

// OpenChrome launches Chrome and opens a tab. The browser lives until
// Close is called or parent is cancelled.
func OpenChrome(parent context.Context, opts Options) (*ChromeSession, error) {
	log := logger.ForBrowser("chrome")

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocatorOptions(opts)...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	// An empty run starts the browser so launch failures surface here
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocCancel()
		return nil, apperrors.NewNetwork("browser", "failed to launch chrome", err)
	}

	log.Debug().Strs("flags", opts.Flags).Dur("wait", opts.Wait).Msg("Chrome session opened")

	return &ChromeSession{
		ctx:         ctx,
		cancel:      cancel,
		allocCancel: allocCancel,
		opts:        opts,
		log:         log,
	}, nil
}

// OpenChromeFunc adapts OpenChrome to crawler.OpenFunc
func OpenChromeFunc(opts Options) crawler.OpenFunc {
	return func(ctx context.Context) (crawler.Session, error) {
		return OpenChrome(ctx, opts)
	}
}

// Fetch navigates to url and returns the rendered document markup.
// When Wait is set the page is polled for the ready selector for at most
// Wait; running out of time is not an error, the markup is read as is.
func (s *ChromeSession) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := chromedp.Run(s.ctx, chromedp.Navigate(url)); err != nil {
		return "", apperrors.NewNetwork("browser", "failed to navigate to "+url, err)
	}

	if s.opts.Wait > 0 {
		waitCtx, cancel := context.WithTimeout(s.ctx, s.opts.Wait)
		err := chromedp.Run(waitCtx, chromedp.WaitReady(s.opts.readySelector(), chromedp.ByQuery))
		cancel()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return "", apperrors.NewNetwork("browser", "failed waiting for results", err)
		}
		if err != nil {
			s.log.Debug().Str("url", url).Msg("Ready selector not seen before wait expired")
		}
	}

	var html string
	start := time.Now()
	if err := chromedp.Run(s.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", apperrors.NewNetwork("browser", "failed to read page markup", err)
	}
	s.log.Debug().Str("url", url).Int("bytes", len(html)).Dur("read", time.Since(start)).Msg("Fetched page")

	return html, nil
}

// Close shuts down the tab and the browser process
func (s *ChromeSession) Close() error {
	err := chromedp.Cancel(s.ctx)
	s.cancel()
	s.allocCancel()
	if err != nil && !errors.Is(err, context.Canceled) {
		return apperrors.NewNetwork("browser", "failed to close chrome", err)
	}
	s.log.Debug().Msg("Chrome session closed")
	return nil
}
