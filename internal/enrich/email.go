// Package enrich fills contact emails onto scraped business records by
// visiting each record's own website. It is an optional post-processing
// phase and runs entirely over plain HTTP, never through the browser.
package enrich

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog/log"

	"github.com/wombatsyoks/apify-google-maps-scraper/internal/extract"
	"github.com/wombatsyoks/apify-google-maps-scraper/pkg/models"
)

// Options configures the enrichment pass.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Delay     time.Duration

	// Transport overrides the collector's HTTP transport, for tests.
	Transport http.RoundTripper
}

// Enricher visits business websites and extracts a contact email from each.
type Enricher struct {
	opts Options

	// OnVisit, when set, is called after each site visit with the number of
	// records processed and the total.
	OnVisit func(done, total int)
}

// New creates an Enricher. Zero Timeout and Delay get conservative defaults.
func New(opts Options) *Enricher {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	return &Enricher{opts: opts}
}

// Apply fills the Email field in place for every record that has a website
// and no email yet. A failed or empty-handed site visit leaves that record
// untouched; the pass always continues to the next record. Returns how many
// emails were filled.
func (en *Enricher) Apply(ctx context.Context, records []models.BusinessRecord) int {
	filled := 0
	for i := range records {
		if ctx.Err() != nil {
			log.Warn().Int("remaining", len(records)-i).Msg("Enrichment cancelled")
			break
		}

		rec := &records[i]
		if rec.Website == "" || rec.Email != "" {
			en.notify(i+1, len(records))
			continue
		}

		if email, ok := en.emailFor(rec.Website); ok {
			rec.Email = email
			filled++
			log.Debug().Str("title", rec.Title).Str("email", email).Msg("Email found")
		}
		en.notify(i+1, len(records))
	}
	log.Info().Int("filled", filled).Int("records", len(records)).Msg("Email enrichment finished")
	return filled
}

// emailFor fetches one site's landing page and looks for an email, preferring
// an explicit mailto link over addresses buried in page text.
func (en *Enricher) emailFor(site string) (string, bool) {
	parsed, err := url.Parse(site)
	if err != nil || parsed.Host == "" {
		return "", false
	}

	c := colly.NewCollector(
		colly.AllowedDomains(parsed.Host),
		colly.UserAgent(en.opts.UserAgent),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(en.opts.Timeout)
	if en.opts.Transport != nil {
		c.WithTransport(en.opts.Transport)
	}
	if err := c.Limit(&colly.LimitRule{DomainGlob: "*", Delay: en.opts.Delay}); err != nil {
		return "", false
	}

	var fromLink, fromText string
	c.OnHTML(`a[href^="mailto:"]`, func(e *colly.HTMLElement) {
		if fromLink != "" {
			return
		}
		addr := strings.TrimPrefix(e.Attr("href"), "mailto:")
		if i := strings.IndexByte(addr, '?'); i >= 0 {
			addr = addr[:i]
		}
		if m, ok := extract.Email(addr); ok {
			fromLink = m
		}
	})
	c.OnHTML("html", func(e *colly.HTMLElement) {
		if fromText != "" {
			return
		}
		if m, ok := extract.Email(e.Text); ok {
			fromText = m
		}
	})
	c.OnError(func(r *colly.Response, err error) {
		log.Debug().Err(err).Str("site", site).Msg("Website visit failed")
	})

	if err := c.Visit(site); err != nil {
		log.Debug().Err(err).Str("site", site).Msg("Website visit rejected")
		return "", false
	}
	c.Wait()

	if fromLink != "" {
		return fromLink, true
	}
	if fromText != "" {
		return fromText, true
	}
	return "", false
}

func (en *Enricher) notify(done, total int) {
	if en.OnVisit != nil {
		en.OnVisit(done, total)
	}
}
