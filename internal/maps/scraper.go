// Package maps implements the search traversal over the Google Maps business
// directory: query submission, incremental scroll-to-load, card extraction
// with dedup, and optional per-record detail visits.
package maps

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/wombatsyoks/apify-google-maps-scraper/internal/browser"
	"github.com/wombatsyoks/apify-google-maps-scraper/internal/config"
	"github.com/wombatsyoks/apify-google-maps-scraper/internal/ratelimit"
	"github.com/wombatsyoks/apify-google-maps-scraper/internal/retry"
	"github.com/wombatsyoks/apify-google-maps-scraper/pkg/models"
)

// Search-phase failure causes. All of them abort the run with an empty
// result set instead of an error; callers only see the distinction in logs
// and metrics.
var (
	errFeedTimeout  = errors.New("results container never appeared")
	errNoResults    = errors.New("no results for search query")
	errBotChallenge = errors.New("bot challenge detected")
)

const (
	noResultsJS = `document.body ? document.body.innerText.includes("No results found") : false`
	captchaJS   = `!!document.querySelector('iframe[src*="recaptcha"]')`
	endMarkerJS = `document.body ? /reached the end/i.test(document.body.innerText) : false`

	scrollFeedJS = `(() => {
	const el = document.querySelector('div[role="feed"]');
	if (!el) return -1;
	el.scrollTo(0, el.scrollHeight);
	return el.scrollHeight;
})()`

	cardSnapshotsJS = `Array.from(document.querySelectorAll('div[role="feed"] div[role="article"]'))
	.map(el => ({html: el.outerHTML, text: el.innerText}))`
)

// Scraper drives one traversal over one exclusively-owned browser session.
// It is single-use: create, Run once, discard.
type Scraper struct {
	session *browser.Session
	cfg     *config.Config
	actions *ratelimit.WindowLimiter
	pages   *ratelimit.PageLimiter
	metrics *Metrics
	state   State

	// OnDetailVisit, when set, is called after each deep-scrape visit with
	// the number of visits completed and the total planned.
	OnDetailVisit func(done, total int)
}

// New creates a traversal over the given session. Metrics may be nil.
func New(session *browser.Session, cfg *config.Config, metrics *Metrics) *Scraper {
	return &Scraper{
		session: session,
		cfg:     cfg,
		actions: ratelimit.NewWindowLimiter(cfg.ActionLimit, cfg.ActionWindow),
		pages:   ratelimit.NewPageLimiter(cfg.PageRateRPS, cfg.PageRateBurst),
		metrics: metrics,
		state:   StateInit,
	}
}

// State reports the traversal phase, mainly for logging and tests.
func (s *Scraper) State() State {
	return s.state
}

// Run executes the full traversal and returns the admitted records in
// document order, each decorated with run metadata. Search-phase failures
// yield an empty list, not an error; only session-level breakage is fatal.
// The session is released on every exit path.
func (s *Scraper) Run(ctx context.Context, req models.Request) ([]models.BusinessRecord, error) {
	start := time.Now()
	defer s.session.Close()
	defer func() {
		s.metrics.ObserveRun(time.Since(start), s.state)
	}()

	if req.MaxResults <= 0 {
		req.MaxResults = config.DefaultMaxResults
	}

	if err := s.search(ctx, req); err != nil {
		s.state = StateFailed
		log.Error().Err(err).Str("query", req.SearchText()).Msg("Search phase failed")
		return []models.BusinessRecord{}, nil
	}
	s.state = StateSearched

	if err := s.scroll(ctx, req.MaxResults); err != nil {
		// Scroll breakage is unrecoverable for loading more content, but
		// whatever already materialized can still be extracted.
		log.Warn().Err(err).Msg("Scroll phase ended early")
	}
	s.state = StateScrolled

	records, err := s.extract(ctx, req.MaxResults)
	if err != nil {
		s.state = StateFailed
		log.Error().Err(err).Msg("Extraction failed")
		return []models.BusinessRecord{}, nil
	}
	s.state = StateExtracted

	if req.DeepScrape && len(records) > 0 {
		records = s.deepScrape(ctx, records)
		s.state = StateDeepScraped
	}

	decorate(records, req)
	s.state = StateDone
	log.Info().Int("count", len(records)).Msg("Traversal complete")
	return records, nil
}

// search navigates directly to the search URL and verifies that results are
// actually present: feed visible, no "no results" indicator, no challenge.
func (s *Scraper) search(ctx context.Context, req models.Request) error {
	searchURL := config.DefaultMapsBaseURL + url.PathEscape(req.SearchText())
	log.Info().Str("url", searchURL).Msg("Navigating to search")

	bctx := s.session.Ctx()
	err := retry.Do(ctx, retry.DefaultConfig(), func() error {
		navCtx, cancel := context.WithTimeout(bctx, s.cfg.NavTimeout)
		defer cancel()
		return chromedp.Run(navCtx,
			chromedp.Navigate(searchURL),
			chromedp.WaitReady("body", chromedp.ByQuery),
		)
	})
	if err != nil {
		return fmt.Errorf("search navigation failed: %w", err)
	}

	feedCtx, cancel := context.WithTimeout(bctx, s.cfg.FeedTimeout)
	err = chromedp.Run(feedCtx, chromedp.WaitVisible(selResultsFeed, chromedp.ByQuery))
	cancel()
	if err != nil {
		captureDiagnostics(bctx, "no_feed")
		return errFeedTimeout
	}

	if err := chromedp.Run(bctx, chromedp.Sleep(s.cfg.ScrollSettle)); err != nil {
		return fmt.Errorf("settle after search failed: %w", err)
	}

	var noResults, challenged bool
	if err := chromedp.Run(bctx,
		chromedp.Evaluate(noResultsJS, &noResults),
		chromedp.Evaluate(captchaJS, &challenged),
	); err != nil {
		return fmt.Errorf("post-search checks failed: %w", err)
	}
	if noResults {
		return errNoResults
	}
	if challenged {
		captureDiagnostics(bctx, "challenge")
		return errBotChallenge
	}
	return nil
}

// scroll extends the results feed until the content height stabilizes, an
// end-of-results marker appears, or the step budget is spent.
func (s *Scraper) scroll(ctx context.Context, maxResults int) error {
	bctx := s.session.Ctx()
	tracker := newScrollTracker(scrollBudget(maxResults, s.cfg.MaxScrollSteps))
	log.Debug().Int("budget", tracker.budget).Msg("Scrolling results feed")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var height int
		if err := chromedp.Run(bctx,
			chromedp.Evaluate(scrollFeedJS, &height),
			chromedp.Sleep(s.cfg.ScrollSettle),
		); err != nil {
			return fmt.Errorf("scroll step failed: %w", err)
		}
		if height < 0 {
			return errFeedTimeout
		}
		s.metrics.IncScrollStep()

		var ended bool
		if err := chromedp.Run(bctx, chromedp.Evaluate(endMarkerJS, &ended)); err == nil && ended {
			log.Debug().Int("steps", tracker.steps).Msg("End-of-results marker found")
			return nil
		}

		if tracker.observe(height) {
			log.Debug().Int("steps", tracker.steps).Msg("Scrolling terminated")
			return nil
		}
	}
}

// extract enumerates the materialized cards in document order, parses each
// under the action rate limit, and deduplicates by place identifier.
func (s *Scraper) extract(ctx context.Context, maxResults int) ([]models.BusinessRecord, error) {
	var snaps []CardSnapshot
	if err := chromedp.Run(s.session.Ctx(), chromedp.Evaluate(cardSnapshotsJS, &snaps)); err != nil {
		return nil, fmt.Errorf("card enumeration failed: %w", err)
	}
	log.Info().Int("cards", len(snaps)).Msg("Extracting result cards")

	coll, err := newCollector(maxResults)
	if err != nil {
		return nil, err
	}

	for _, snap := range snaps {
		if coll.full() {
			break
		}
		if err := s.actions.Acquire(ctx); err != nil {
			return coll.result(), err
		}

		outcome := ParseCard(snap)
		if outcome.Status != CardAdmitted {
			s.metrics.IncCardSkipped()
			log.Debug().Str("reason", outcome.Reason).Msg("Card skipped")
			continue
		}
		s.metrics.IncCardParsed()

		if !coll.add(outcome.Record) && !coll.full() {
			s.metrics.IncDuplicate()
		}
	}

	log.Info().
		Int("admitted", len(coll.result())).
		Int("duplicates", coll.dropped).
		Msg("Extraction finished")
	return coll.result(), nil
}

// deepScrape visits each admitted record's detail page in admission order and
// merges the enriched fields in. A failed visit leaves that record in its
// partial form; the batch always continues.
func (s *Scraper) deepScrape(ctx context.Context, records []models.BusinessRecord) []models.BusinessRecord {
	bctx := s.session.Ctx()
	out := make([]models.BusinessRecord, 0, len(records))

	for i, rec := range records {
		if rec.URL == "" {
			out = append(out, rec)
			s.notifyDetail(i+1, len(records))
			continue
		}

		if err := s.pages.Wait(ctx); err != nil {
			// Cancelled mid-batch: keep the remaining records partial.
			out = append(out, records[i:]...)
			return out
		}

		log.Debug().Int("index", i+1).Int("total", len(records)).Str("title", rec.Title).Msg("Deep scraping")
		s.metrics.IncDetailVisit()

		navCtx, cancel := context.WithTimeout(bctx, s.cfg.NavTimeout)
		err := chromedp.Run(navCtx,
			chromedp.Navigate(rec.URL),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.Sleep(s.cfg.DetailSettle),
		)
		cancel()
		if err != nil {
			s.metrics.IncDetailFailure()
			log.Warn().Err(err).Str("title", rec.Title).Msg("Detail visit failed, keeping partial record")
			out = append(out, rec)
			s.notifyDetail(i+1, len(records))
			continue
		}

		detail := s.parseDetail(bctx)
		out = append(out, models.Merge(rec, detail))
		s.notifyDetail(i+1, len(records))
	}
	return out
}

func (s *Scraper) notifyDetail(done, total int) {
	if s.OnDetailVisit != nil {
		s.OnDetailVisit(done, total)
	}
}

// decorate stamps run metadata onto every record.
func decorate(records []models.BusinessRecord, req models.Request) {
	now := time.Now().UTC()
	for i := range records {
		records[i].ScrapedAt = &now
		records[i].SearchQuery = req.Query
		records[i].SearchLocation = req.Location
	}
}
