package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Coordinates is a WGS84 lat/lng pair extracted from a Google Maps URL.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Review is a single user review. Review extraction is a deep-scrape
// placeholder; the slice is emitted empty so downstream consumers have a
// stable shape.
type Review struct {
	Author string  `json:"author,omitempty"`
	Rating float64 `json:"rating,omitempty"`
	Text   string  `json:"text,omitempty"`
}

// Weekdays is the fixed day vocabulary, in traversal order.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Hours maps weekday names to free-text opening hours.
// It marshals in Monday..Sunday order rather than Go's sorted map order.
type Hours map[string]string

// MarshalJSON emits days in weekday order, skipping absent days.
func (h Hours) MarshalJSON() ([]byte, error) {
	if h == nil {
		return []byte("null"), nil
	}
	buf := []byte{'{'}
	first := true
	for _, day := range Weekdays {
		v, ok := h[day]
		if !ok {
			continue
		}
		if !first {
			buf = append(buf, ',')
		}
		first = false
		key, _ := json.Marshal(day)
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}

// BusinessRecord is one scraped business. Title is the only mandatory field;
// everything else is best-effort and omitted from JSON when absent.
type BusinessRecord struct {
	Title        string       `json:"title"`
	Rating       *float64     `json:"rating,omitempty"`
	ReviewsCount *int         `json:"reviewsCount,omitempty"`
	Category     string       `json:"category,omitempty"`
	PriceLevel   string       `json:"priceLevel,omitempty"`
	URL          string       `json:"url,omitempty"`
	PlaceID      string       `json:"placeId,omitempty"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
	Address      string       `json:"address,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Website      string       `json:"website,omitempty"`
	Email        string       `json:"email,omitempty"`
	Hours        Hours        `json:"hours,omitempty"`
	PlusCode     string       `json:"plusCode,omitempty"`
	Reviews      []Review     `json:"reviews,omitempty"`

	// Run metadata, decorated by the traversal controller before return.
	ScrapedAt      *time.Time `json:"scrapedAt,omitempty"`
	SearchQuery    string     `json:"searchQuery,omitempty"`
	SearchLocation string     `json:"searchLocation,omitempty"`
}

// Merge combines a partial card record with a detail-page record.
// Detail fields win on collision, partial fields are retained otherwise
// (right-biased shallow union). Neither input is modified.
func Merge(partial, detail BusinessRecord) BusinessRecord {
	out := partial
	if detail.Title != "" {
		out.Title = detail.Title
	}
	if detail.Rating != nil {
		out.Rating = detail.Rating
	}
	if detail.ReviewsCount != nil {
		out.ReviewsCount = detail.ReviewsCount
	}
	if detail.Category != "" {
		out.Category = detail.Category
	}
	if detail.PriceLevel != "" {
		out.PriceLevel = detail.PriceLevel
	}
	if detail.URL != "" {
		out.URL = detail.URL
	}
	if detail.PlaceID != "" {
		out.PlaceID = detail.PlaceID
	}
	if detail.Coordinates != nil {
		out.Coordinates = detail.Coordinates
	}
	if detail.Address != "" {
		out.Address = detail.Address
	}
	if detail.Phone != "" {
		out.Phone = detail.Phone
	}
	if detail.Website != "" {
		out.Website = detail.Website
	}
	if detail.Email != "" {
		out.Email = detail.Email
	}
	if detail.Hours != nil {
		out.Hours = detail.Hours
	}
	if detail.PlusCode != "" {
		out.PlusCode = detail.PlusCode
	}
	if detail.Reviews != nil {
		out.Reviews = detail.Reviews
	}
	return out
}

// Request describes one traversal run.
type Request struct {
	Query      string
	Location   string
	MaxResults int
	DeepScrape bool
}

// SearchText is the query string submitted to the map search:
// "<query> <location>" with outer whitespace trimmed.
func (r Request) SearchText() string {
	return strings.TrimSpace(r.Query + " " + r.Location)
}
