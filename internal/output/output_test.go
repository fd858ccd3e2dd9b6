package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wombatsyoks/apify-google-maps-scraper/pkg/models"
)

func sampleRecords() []models.BusinessRecord {
	rating := 4.5
	count := 1250
	return []models.BusinessRecord{
		{
			Title:        "Joe's Coffee",
			Rating:       &rating,
			ReviewsCount: &count,
			Category:     "Coffee shop",
			Address:      "123 Main St",
			Phone:        "2125550100",
			PlaceID:      "ChIJabc",
			Coordinates:  &models.Coordinates{Lat: 40.7128, Lng: -74.0060},
		},
		{Title: "Plain | Pipes"},
	}
}

func TestSaveJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := SaveJSON(sampleRecords(), path); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got []models.BusinessRecord
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Joe's Coffee" {
		t.Errorf("round trip lost data: %+v", got)
	}
	if got[0].Rating == nil || *got[0].Rating != 4.5 {
		t.Errorf("rating = %v", got[0].Rating)
	}
}

func TestSaveJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := SaveJSON(nil, path); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if strings.TrimSpace(string(raw)) != "[]" {
		t.Errorf("empty output = %q, want []", raw)
	}
}

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := SaveCSV(sampleRecords(), path); err != nil {
		t.Fatalf("SaveCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[1][0] != "Joe's Coffee" || rows[1][1] != "4.5" {
		t.Errorf("row = %v", rows[1])
	}
	if rows[2][1] != "" {
		t.Errorf("absent rating serialized as %q", rows[2][1])
	}
}

func TestSaveMarkdownEscapesPipes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	if err := SaveMarkdown(sampleRecords(), path); err != nil {
		t.Fatalf("SaveMarkdown: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if !strings.Contains(string(raw), `Plain \| Pipes`) {
		t.Errorf("pipe not escaped in %s", raw)
	}
}

func TestCleanHTMLStripsScripts(t *testing.T) {
	in := `<html><body><script>evil()</script><a href="/x" onclick="y" title="t">link</a><img src="i.png" data-x="1"></body></html>`
	got, err := CleanHTML(in)
	if err != nil {
		t.Fatalf("CleanHTML: %v", err)
	}
	if strings.Contains(got, "script") || strings.Contains(got, "onclick") || strings.Contains(got, "data-x") {
		t.Errorf("unwanted content survived: %s", got)
	}
	if !strings.Contains(got, `href="/x"`) || !strings.Contains(got, `src="i.png"`) {
		t.Errorf("wanted attributes stripped: %s", got)
	}
}

func TestPageExcerptTruncates(t *testing.T) {
	in := "<html><body><p>" + strings.Repeat("word ", 200) + "</p></body></html>"
	got, err := PageExcerpt(in, 50)
	if err != nil {
		t.Fatalf("PageExcerpt: %v", err)
	}
	if len(got) > 60 {
		t.Errorf("excerpt length = %d, want truncated", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("missing ellipsis: %q", got)
	}
}
