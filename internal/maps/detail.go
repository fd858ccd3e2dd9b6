package maps

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/wombatsyoks/apify-google-maps-scraper/internal/extract"
	"github.com/wombatsyoks/apify-google-maps-scraper/pkg/models"
)

// hoursTextJS reads the rendered text of the hours container; innerText is
// needed because the weekday rows only become lines when rendered.
const hoursTextJS = `(() => {
	const el = document.querySelector('div[aria-label*="Hours"]');
	return el ? el.innerText : "";
})()`

// parseDetail converts the currently-loaded detail page into a detail record.
// It never fails: a timeout waiting for the primary heading returns whatever
// subset was gathered, the floor being an empty record.
func (s *Scraper) parseDetail(ctx context.Context) models.BusinessRecord {
	var rec models.BusinessRecord

	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.DetailWait)
	err := chromedp.Run(waitCtx, chromedp.WaitVisible(selDetailHeading, chromedp.ByQuery))
	cancel()
	if err != nil {
		log.Warn().Err(err).Msg("Detail heading never appeared")
		var currentURL string
		if err := chromedp.Run(ctx, chromedp.Location(&currentURL)); err == nil {
			deriveFromURL(&rec, currentURL)
		}
		return rec
	}

	// The hours container only becomes readable after a UI expand; a missing
	// button just means no hours today.
	clickCtx, cancelClick := context.WithTimeout(ctx, 2*s.cfg.HoursSettle+s.cfg.DetailWait)
	if err := chromedp.Run(clickCtx,
		chromedp.Click(selDetailHoursBtn, chromedp.ByQuery, chromedp.NodeVisible),
		chromedp.Sleep(s.cfg.HoursSettle),
	); err != nil {
		log.Debug().Err(err).Msg("Hours expand not available")
	}
	cancelClick()

	var currentURL, pageHTML, hoursText string
	if err := chromedp.Run(ctx,
		chromedp.Location(&currentURL),
		chromedp.OuterHTML("html", &pageHTML, chromedp.ByQuery),
		chromedp.Evaluate(hoursTextJS, &hoursText),
	); err != nil {
		log.Warn().Err(err).Msg("Detail page capture failed")
		return rec
	}

	return parseDetailHTML(pageHTML, currentURL, hoursText)
}

// parseDetailHTML extracts every detail field from a page snapshot. Each
// field is independently optional; a miss leaves the field absent.
func parseDetailHTML(pageHTML, currentURL, hoursText string) models.BusinessRecord {
	var rec models.BusinessRecord

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		deriveFromURL(&rec, currentURL)
		return rec
	}

	rec.Title = strings.TrimSpace(doc.Find(selDetailHeading).First().Text())

	if label, ok := doc.Find(selDetailRating).First().Attr("aria-label"); ok {
		if r, ok := extract.Rating(label); ok {
			rec.Rating = &r
		}
	}
	if text := doc.Find(selDetailReviews).First().Text(); text != "" {
		if n, ok := extract.ReviewsCount(text); ok {
			rec.ReviewsCount = &n
		}
	}
	if text := doc.Find(selDetailAddress).First().Text(); text != "" {
		rec.Address = extract.NormalizeAddress(text)
	}
	if text := doc.Find(selDetailPhone).First().Text(); text != "" {
		if phone, ok := extract.Phone(text); ok {
			rec.Phone = phone
		}
	}
	// Website href is stored raw, unprocessed.
	if href, ok := doc.Find(selDetailWebsite).First().Attr("href"); ok {
		rec.Website = href
	}
	if text := doc.Find(selDetailCategory).First().Text(); text != "" {
		rec.Category = strings.TrimSpace(text)
	}
	if hoursText != "" {
		if hours := extract.ParseHours(hoursText); len(hours) > 0 {
			rec.Hours = hours
		}
	}
	if text := doc.Find(selDetailPlusCode).First().Text(); text != "" {
		rec.PlusCode = strings.TrimSpace(text)
	}

	deriveFromURL(&rec, currentURL)
	if rec.Coordinates == nil {
		rec.Coordinates = coordinatesFromAppState(pageHTML)
	}

	// Review extraction is a placeholder: deep-scrape declares the shape.
	rec.Reviews = []models.Review{}

	return rec
}

// deriveFromURL re-derives the URL-carried identifiers on a detail record.
func deriveFromURL(rec *models.BusinessRecord, currentURL string) {
	if currentURL == "" {
		return
	}
	rec.URL = currentURL
	if id, ok := extract.PlaceID(currentURL); ok {
		rec.PlaceID = id
	}
	if c := extract.Coordinates(currentURL); c != nil {
		rec.Coordinates = c
	}
}
