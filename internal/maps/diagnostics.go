package maps

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/wombatsyoks/apify-google-maps-scraper/internal/output"
)

// diagExcerptLen caps the Markdown page excerpt logged on failures.
const diagExcerptLen = 2000

// captureDiagnostics records what the page looked like when a search-phase
// failure occurred: a screenshot in the temp dir plus a Markdown excerpt of
// the cleaned page in the debug log. Everything here is best-effort; a
// failing capture is itself swallowed.
func captureDiagnostics(ctx context.Context, label string) {
	capCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var pageURL, title, pageHTML string
	var shot []byte
	err := chromedp.Run(capCtx,
		chromedp.Location(&pageURL),
		chromedp.Title(&title),
		chromedp.OuterHTML("html", &pageHTML, chromedp.ByQuery),
		chromedp.CaptureScreenshot(&shot),
	)
	if err != nil {
		log.Debug().Err(err).Str("label", label).Msg("Diagnostic capture failed")
		return
	}

	shotPath := filepath.Join(os.TempDir(), "gmaps_"+label+".png")
	if err := os.WriteFile(shotPath, shot, 0644); err == nil {
		log.Info().Str("path", shotPath).Msg("Diagnostic screenshot saved")
	}

	excerpt, err := output.PageExcerpt(pageHTML, diagExcerptLen)
	if err != nil {
		excerpt = ""
	}
	log.Debug().
		Str("label", label).
		Str("page_url", pageURL).
		Str("page_title", title).
		Str("excerpt", excerpt).
		Msg("Page state at failure")
}
