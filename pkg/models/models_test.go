package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMergeRightBiasedUnion(t *testing.T) {
	partial := BusinessRecord{Title: "A", Phone: "1234567890"}
	detail := BusinessRecord{Title: "A", Address: "X"}

	merged := Merge(partial, detail)

	if merged.Title != "A" {
		t.Errorf("title = %q, want A", merged.Title)
	}
	if merged.Phone != "1234567890" {
		t.Errorf("phone lost in merge: %q", merged.Phone)
	}
	if merged.Address != "X" {
		t.Errorf("address = %q, want X", merged.Address)
	}
}

func TestMergeDetailWinsOnCollision(t *testing.T) {
	rating := 4.5
	partial := BusinessRecord{Title: "Old Name", Category: "Cafe"}
	detail := BusinessRecord{Title: "New Name", Rating: &rating}

	merged := Merge(partial, detail)

	if merged.Title != "New Name" {
		t.Errorf("title = %q, want detail title", merged.Title)
	}
	if merged.Category != "Cafe" {
		t.Errorf("category = %q, want partial category retained", merged.Category)
	}
	if merged.Rating == nil || *merged.Rating != 4.5 {
		t.Errorf("rating = %v, want 4.5", merged.Rating)
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	partial := BusinessRecord{Title: "A", Phone: "1234567890"}
	detail := BusinessRecord{Title: "B"}

	_ = Merge(partial, detail)

	if partial.Title != "A" {
		t.Errorf("partial mutated: %q", partial.Title)
	}
}

func TestHoursMarshalWeekdayOrder(t *testing.T) {
	h := Hours{"Sunday": "Closed", "Monday": "9AM-5PM", "Friday": "9AM-3PM"}

	raw, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	s := string(raw)
	mon := strings.Index(s, "Monday")
	fri := strings.Index(s, "Friday")
	sun := strings.Index(s, "Sunday")
	if mon == -1 || fri == -1 || sun == -1 {
		t.Fatalf("missing day in %s", s)
	}
	if !(mon < fri && fri < sun) {
		t.Errorf("days out of weekday order: %s", s)
	}
}

func TestSearchText(t *testing.T) {
	tests := []struct {
		query, location, want string
	}{
		{"coffee shops", "New York, NY", "coffee shops New York, NY"},
		{"pizza", "", "pizza"},
		{"", "Boston", "Boston"},
		{"", "", ""},
	}
	for _, tt := range tests {
		req := Request{Query: tt.query, Location: tt.location}
		if got := req.SearchText(); got != tt.want {
			t.Errorf("SearchText(%q, %q) = %q, want %q", tt.query, tt.location, got, tt.want)
		}
	}
}

func TestBusinessRecordJSONOmitsAbsentFields(t *testing.T) {
	rec := BusinessRecord{Title: "Cafe"}
	raw, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{"rating", "reviewsCount", "coordinates", "hours", "scrapedAt"} {
		if strings.Contains(string(raw), field) {
			t.Errorf("absent field %q serialized: %s", field, raw)
		}
	}
}
