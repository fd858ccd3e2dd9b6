// Package browser owns the headless Chrome session: allocator flags, stealth
// script installation, and the environment overrides (viewport, locale,
// timezone, geolocation) the traversal relies on.
package browser

import (
	"context"
	"fmt"
	"sync"

	cdpbrowser "github.com/chromedp/cdproto/browser"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// Options configures an isolated browser session.
type Options struct {
	UserAgent  string
	ChromePath string
	Headless   bool
	ViewportW  int
	ViewportH  int
	Locale     string
	Timezone   string
	GeoLat     float64
	GeoLng     float64
	Proxy      string
}

// Session is one exclusively-owned browser context. It is not safe for
// concurrent traversals; each traversal creates its own.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	closeOnce   sync.Once
}

// NewSession launches a browser context with fingerprint-evasion flags, the
// stealth init script, and the configured environment overrides applied.
// Errors here are fatal for the caller: no partial result is possible without
// a session.
func NewSession(parent context.Context, opts Options) (*Session, error) {
	if parent == nil {
		parent = context.Background()
	}

	chromePath := opts.ChromePath
	if chromePath == "" {
		chromePath = FindChrome()
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-client-side-phishing-detection", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-ipc-flooding-protection", true),
		chromedp.Flag("disable-prompt-on-repost", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("disable-notifications", true),
		chromedp.Flag("disable-popup-blocking", true),
		chromedp.Flag("force-color-profile", "srgb"),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.WindowSize(opts.ViewportW, opts.ViewportH),
		chromedp.UserAgent(opts.UserAgent),
	}
	if chromePath != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(chromePath)}, allocOpts...)
	}
	if opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if opts.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(opts.Proxy))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocOpts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	s := &Session{ctx: ctx, cancel: cancel, allocCancel: allocCancel}

	if err := chromedp.Run(ctx, sessionSetup(opts)); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to initialize browser session: %w", err)
	}

	log.Debug().
		Str("timezone", opts.Timezone).
		Str("locale", opts.Locale).
		Bool("proxied", opts.Proxy != "").
		Msg("Browser session initialized")
	return s, nil
}

// sessionSetup applies the environment overrides on the fresh context.
func sessionSetup(opts Options) chromedp.ActionFunc {
	return func(ctx context.Context) error {
		if err := network.Enable().Do(ctx); err != nil {
			return err
		}

		headers := network.Headers{
			"Accept-Language": opts.Locale + ",en;q=0.9",
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		}
		if err := network.SetExtraHTTPHeaders(headers).Do(ctx); err != nil {
			return err
		}

		if _, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx); err != nil {
			return err
		}

		if opts.Timezone != "" {
			if err := emulation.SetTimezoneOverride(opts.Timezone).Do(ctx); err != nil {
				return err
			}
		}

		if err := cdpbrowser.GrantPermissions(
			[]cdpbrowser.PermissionType{cdpbrowser.PermissionTypeGeolocation},
		).Do(ctx); err != nil {
			return err
		}
		return emulation.SetGeolocationOverride().
			WithLatitude(opts.GeoLat).
			WithLongitude(opts.GeoLng).
			WithAccuracy(100).
			Do(ctx)
	}
}

// Ctx returns the chromedp context actions run against.
func (s *Session) Ctx() context.Context {
	return s.ctx
}

// Screenshot captures the current viewport. Failures are reported, not fatal;
// callers treat this as best-effort diagnostics.
func (s *Session) Screenshot() ([]byte, error) {
	var buf []byte
	if err := chromedp.Run(s.ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, fmt.Errorf("screenshot capture failed: %w", err)
	}
	return buf, nil
}

// Close releases the browser context and allocator. Safe to call multiple
// times and tolerant of an already-torn-down session.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.allocCancel()
		log.Debug().Msg("Browser session closed")
	})
}
