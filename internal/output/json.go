// Package output serializes scraped business records and provides the HTML
// cleanup helpers used for diagnostics excerpts.
package output

import (
	"encoding/json"
	"os"

	"github.com/wombatsyoks/apify-google-maps-scraper/pkg/models"
)

// SaveJSON writes the records as an indented JSON array to filepath.
func SaveJSON(records []models.BusinessRecord, filepath string) error {
	if records == nil {
		records = []models.BusinessRecord{}
	}
	content, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, content, 0644)
}

// WriteJSON marshals the records for stdout consumption.
func WriteJSON(records []models.BusinessRecord) ([]byte, error) {
	if records == nil {
		records = []models.BusinessRecord{}
	}
	return json.MarshalIndent(records, "", "  ")
}
