package output

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/wombatsyoks/apify-google-maps-scraper/pkg/models"
)

var csvHeaders = []string{
	"title", "rating", "reviewsCount", "category", "priceLevel", "address",
	"phone", "website", "email", "placeId", "lat", "lng", "url",
}

// SaveCSV writes the records to a CSV file with a fixed header row.
func SaveCSV(records []models.BusinessRecord, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(csvHeaders); err != nil {
		return err
	}
	for _, rec := range records {
		if err := writer.Write(csvRow(rec)); err != nil {
			return err
		}
	}
	return nil
}

func csvRow(rec models.BusinessRecord) []string {
	var rating, reviews, lat, lng string
	if rec.Rating != nil {
		rating = strconv.FormatFloat(*rec.Rating, 'f', -1, 64)
	}
	if rec.ReviewsCount != nil {
		reviews = strconv.Itoa(*rec.ReviewsCount)
	}
	if rec.Coordinates != nil {
		lat = strconv.FormatFloat(rec.Coordinates.Lat, 'f', -1, 64)
		lng = strconv.FormatFloat(rec.Coordinates.Lng, 'f', -1, 64)
	}
	return []string{
		rec.Title, rating, reviews, rec.Category, rec.PriceLevel,
		rec.Address, rec.Phone, rec.Website, rec.Email, rec.PlaceID,
		lat, lng, rec.URL,
	}
}

// SaveMarkdown writes the records as a Markdown table.
func SaveMarkdown(records []models.BusinessRecord, filepath string) error {
	var b strings.Builder
	b.WriteString("| Title | Rating | Reviews | Category | Address | Phone |\n")
	b.WriteString("|-------|--------|---------|----------|---------|-------|\n")
	for _, rec := range records {
		var rating, reviews string
		if rec.Rating != nil {
			rating = strconv.FormatFloat(*rec.Rating, 'f', 1, 64)
		}
		if rec.ReviewsCount != nil {
			reviews = strconv.Itoa(*rec.ReviewsCount)
		}
		b.WriteString("| " + mdEscape(rec.Title) + " | " + rating + " | " + reviews +
			" | " + mdEscape(rec.Category) + " | " + mdEscape(rec.Address) +
			" | " + rec.Phone + " |\n")
	}
	return os.WriteFile(filepath, []byte(b.String()), 0644)
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
