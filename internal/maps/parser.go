package maps

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/wombatsyoks/apify-google-maps-scraper/internal/extract"
	"github.com/wombatsyoks/apify-google-maps-scraper/pkg/models"
)

// CardSnapshot is one result card as captured from the live page: the outer
// HTML for structural queries and the rendered text for line-oriented
// heuristics (goquery cannot reconstruct visual line breaks from markup).
type CardSnapshot struct {
	HTML string `json:"html"`
	Text string `json:"text"`
}

// ParseCard converts one result-card snapshot into a candidate business
// record. Cards whose title cannot be derived by any strategy are skipped;
// all other fields are best-effort.
func ParseCard(snap CardSnapshot) CardOutcome {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snap.HTML))
	if err != nil {
		return skipped("unparseable card markup")
	}

	link := doc.Find("a[href]").First()
	if link.Length() == 0 {
		return skipped("no link in card")
	}

	lines := textLines(snap.Text)

	title, strategy := resolveTitle(link, lines)
	if title == "" {
		return skipped("no title derivable")
	}
	log.Debug().Str("title", title).Str("strategy", strategy).Msg("Parsed card title")

	rec := models.BusinessRecord{Title: title}
	var missing []string

	if label, ok := doc.Find(selCardRating).First().Attr("aria-label"); ok {
		if r, ok := extract.Rating(label); ok {
			rec.Rating = &r
		}
	}
	if rec.Rating == nil {
		missing = append(missing, "rating")
	}

	// Only look for a count when the word "review" is present, so stray
	// numbers in the card text are not misread.
	if strings.Contains(strings.ToLower(snap.Text), "review") {
		if n, ok := extract.ReviewsCount(snap.Text); ok {
			rec.ReviewsCount = &n
		}
	}
	if rec.ReviewsCount == nil {
		missing = append(missing, "reviewsCount")
	}

	rec.Category, rec.PriceLevel = categoryAndPrice(lines)
	if rec.Category == "" {
		missing = append(missing, "category")
	}

	if href, ok := link.Attr("href"); ok && href != "" {
		rec.URL = qualifyURL(href)
		if id, ok := extract.PlaceID(rec.URL); ok {
			rec.PlaceID = id
		}
		rec.Coordinates = extract.Coordinates(rec.URL)
	}
	if rec.PlaceID == "" {
		missing = append(missing, "placeId")
	}

	return admitted(rec, missing)
}

// resolveTitle tries the structural selector strategies in order against the
// card's anchor, then falls back to the first text line if it does not look
// like a rating line.
func resolveTitle(link *goquery.Selection, lines []string) (title, strategy string) {
	for _, s := range titleStrategies {
		text := strings.TrimSpace(link.Find(s.selector).First().Text())
		if text != "" {
			return firstLine(text), s.name
		}
	}

	if len(lines) > 0 {
		candidate := lines[0]
		if candidate != "" && !startsWithDigit(candidate) && !strings.Contains(candidate, "★") {
			return candidate, "first-line"
		}
	}
	return "", ""
}

// categoryAndPrice scans the non-title lines for the middle-dot separated
// category/price row. The first qualifying match wins for each field.
func categoryAndPrice(lines []string) (category, priceLevel string) {
	for i, line := range lines {
		if i == 0 {
			continue // title line
		}
		if category == "" && strings.Contains(line, "·") {
			first := strings.TrimSpace(strings.Split(line, "·")[0])
			if first != "" && !startsWithDigit(first) {
				category = first
			}
		}
		if priceLevel == "" && strings.Contains(line, "$") {
			for _, part := range strings.Split(line, "·") {
				if strings.Contains(part, "$") {
					priceLevel = strings.TrimSpace(part)
					break
				}
			}
		}
	}
	return category, priceLevel
}

// qualifyURL resolves a site-relative href against the Maps origin.
func qualifyURL(href string) string {
	if strings.HasPrefix(href, "/") {
		return mapsOrigin + href
	}
	return href
}

func textLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func startsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}
