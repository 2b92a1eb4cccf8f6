package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"
)

// Options configures the browser launched for a session.
type Options struct {
	Headless   bool
	UserAgent  string
	Args       []string
	NavTimeout time.Duration

	// Per-keystroke delay range used by Session.Type.
	KeystrokeMin time.Duration
	KeystrokeMax time.Duration
}

type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewPlaywright starts the playwright driver and launches Chromium.
func NewPlaywright(ctx context.Context, opts Options) (*PlaywrightManager, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     opts.Args,
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch chromium: %w", err)
	}

	return &PlaywrightManager{pw: pw, browser: browser}, nil
}

// NewContext opens an isolated browser context. Nothing is shared with
// earlier contexts: no cookies, no storage.
func (pm *PlaywrightManager) NewContext(opts Options) (playwright.BrowserContext, error) {
	ctxOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1366, Height: 900},
		Locale:   playwright.String("en-US"),
	}
	if opts.UserAgent != "" {
		ctxOpts.UserAgent = playwright.String(opts.UserAgent)
	}
	return pm.browser.NewContext(ctxOpts)
}

func (pm *PlaywrightManager) Close() error {
	var errs []error
	if pm.browser != nil {
		if err := pm.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
	}
	if pm.pw != nil {
		if err := pm.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop playwright: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Launcher opens one browser Session per call.
type Launcher struct {
	opts Options
	log  zerolog.Logger
}

func NewLauncher(opts Options, log zerolog.Logger) *Launcher {
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = 30 * time.Second
	}
	return &Launcher{opts: opts, log: log}
}

// Launch starts a fresh browser and returns a Session owning it. The caller
// must Close the session; Close tears down the whole browser.
func (l *Launcher) Launch(ctx context.Context) (*Session, error) {
	pm, err := NewPlaywright(ctx, l.opts)
	if err != nil {
		return nil, err
	}

	browserCtx, err := pm.NewContext(l.opts)
	if err != nil {
		pm.Close()
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		browserCtx.Close()
		pm.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	l.log.Debug().Bool("headless", l.opts.Headless).Msg("browser session opened")
	return &Session{
		manager:    pm,
		browserCtx: browserCtx,
		page:       page,
		opts:       l.opts,
		log:        l.log,
	}, nil
}
