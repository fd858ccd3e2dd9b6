// Package extract contains the pure text and URL field extractors used by the
// card and detail parsers. Every function is total: a miss yields an absent
// value, never an error.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wombatsyoks/apify-google-maps-scraper/pkg/models"
)

var (
	ratingRe      = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*star`)
	reviewsRe     = regexp.MustCompile(`([\d,]+)`)
	nonPhoneRe    = regexp.MustCompile(`[^\d+]`)
	atCoordsRe    = regexp.MustCompile(`@(-?\d+\.?\d*),(-?\d+\.?\d*)`)
	markerCoordRe = regexp.MustCompile(`!3d(-?\d+\.?\d*)!4d(-?\d+\.?\d*)`)
	placeIDParam  = regexp.MustCompile(`place_id=([a-zA-Z0-9_-]+)`)
	placeIDMarker = regexp.MustCompile(`/place/[^/]+/data=.*?1s([a-zA-Z0-9_-]+)`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	emailRe       = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// Rating parses the first float immediately preceding the token "star"
// (case-insensitive) in an accessibility label like "4.5 stars".
func Rating(label string) (float64, bool) {
	m := ratingRe.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ReviewsCount parses the first run of digits-and-commas in text like
// "1,250 reviews", stripping thousand separators.
func ReviewsCount(text string) (int, bool) {
	m := reviewsRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Phone normalizes free text to a digit string with at most one leading "+".
// Fewer than 10 digits is treated as a miss so stray numeric text is not
// mistaken for a phone number.
func Phone(text string) (string, bool) {
	cleaned := nonPhoneRe.ReplaceAllString(text, "")
	// A "+" is only meaningful as a prefix; drop any interior ones.
	if i := strings.IndexByte(cleaned, '+'); i >= 0 {
		digits := strings.ReplaceAll(cleaned, "+", "")
		if i == 0 {
			cleaned = "+" + digits
		} else {
			cleaned = digits
		}
	}
	if len(strings.TrimPrefix(cleaned, "+")) < 10 {
		return "", false
	}
	return cleaned, true
}

// Coordinates pulls a lat/lng pair out of a Google Maps URL. The viewport
// "@lat,lng" form is tried first, then the "!3d<lat>!4d<lng>" data markers.
func Coordinates(url string) *models.Coordinates {
	for _, re := range []*regexp.Regexp{atCoordsRe, markerCoordRe} {
		m := re.FindStringSubmatch(url)
		if m == nil {
			continue
		}
		lat, err1 := strconv.ParseFloat(m[1], 64)
		lng, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		return &models.Coordinates{Lat: lat, Lng: lng}
	}
	return nil
}

// PlaceID extracts the source-assigned place identifier from a Maps URL,
// trying the place_id query parameter before the embedded data marker.
func PlaceID(url string) (string, bool) {
	for _, re := range []*regexp.Regexp{placeIDParam, placeIDMarker} {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// NormalizeAddress collapses whitespace runs to single spaces and trims.
func NormalizeAddress(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// ParseHours runs a line-oriented state machine over the fixed weekday
// vocabulary. A line starting with a day name sets the current day and stores
// the remainder, possibly empty, as its hours; a later non-blank line without
// a day prefix replaces the current day's value (continuation semantics).
// Lines before the first day header are ignored.
func ParseHours(text string) models.Hours {
	hours := models.Hours{}
	if text == "" {
		return hours
	}

	currentDay := ""
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		dayLine := false
		for _, day := range models.Weekdays {
			if strings.HasPrefix(line, day) {
				currentDay = day
				hours[day] = strings.TrimSpace(strings.TrimPrefix(line, day))
				dayLine = true
				break
			}
		}

		if !dayLine && currentDay != "" && line != "" {
			hours[currentDay] = line
		}
	}
	return hours
}

// Email returns the first email address found in free text.
func Email(text string) (string, bool) {
	m := emailRe.FindString(text)
	if m == "" {
		return "", false
	}
	return m, true
}
