package extract

import (
	"reflect"
	"testing"
)

func TestRating(t *testing.T) {
	tests := []struct {
		label string
		want  float64
		ok    bool
	}{
		{"4.5 stars", 4.5, true},
		{"4.5 Stars 1,250 Reviews", 4.5, true},
		{"5 star rating", 5, true},
		{"no info", 0, false},
		{"", 0, false},
		{"stars 4.5", 0, false},
	}
	for _, tt := range tests {
		got, ok := Rating(tt.label)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Rating(%q) = %v,%v; want %v,%v", tt.label, got, ok, tt.want, tt.ok)
		}
	}
}

func TestReviewsCount(t *testing.T) {
	tests := []struct {
		text string
		want int
		ok   bool
	}{
		{"1,250 reviews", 1250, true},
		{"(42)", 42, true},
		{"1,234,567 reviews", 1234567, true},
		{"", 0, false},
		{"no reviews yet", 0, false},
	}
	for _, tt := range tests {
		got, ok := ReviewsCount(tt.text)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ReviewsCount(%q) = %d,%v; want %d,%v", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"(212) 555-0100", "2125550100", true},
		{"+1 212-555-0100", "+12125550100", true},
		{"12345", "", false},
		{"", "", false},
		{"call us", "", false},
	}
	for _, tt := range tests {
		got, ok := Phone(tt.text)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Phone(%q) = %q,%v; want %q,%v", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCoordinates(t *testing.T) {
	c := Coordinates("https://www.google.com/maps/search/coffee/@40.7128,-74.0060,15z")
	if c == nil || c.Lat != 40.7128 || c.Lng != -74.0060 {
		t.Fatalf("viewport coordinates = %+v, want 40.7128,-74.0060", c)
	}

	c = Coordinates("https://www.google.com/maps/place/X/data=!3d40.7580!4d-73.9855")
	if c == nil || c.Lat != 40.7580 || c.Lng != -73.9855 {
		t.Fatalf("marker coordinates = %+v, want 40.7580,-73.9855", c)
	}

	// The @ pattern wins when both are present.
	c = Coordinates("https://maps/@1.5,2.5,15z/data=!3d9.9!4d8.8")
	if c == nil || c.Lat != 1.5 || c.Lng != 2.5 {
		t.Fatalf("pattern precedence = %+v, want 1.5,2.5", c)
	}

	if c := Coordinates("https://www.google.com/maps"); c != nil {
		t.Errorf("expected nil for URL without coordinates, got %+v", c)
	}
}

func TestPlaceID(t *testing.T) {
	tests := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://maps.google.com/?place_id=ChIJabc123_-", "ChIJabc123_-", true},
		{"https://www.google.com/maps/place/Cafe+X/data=!4m2!1sChIJxyz789", "ChIJxyz789", true},
		{"https://www.google.com/maps", "", false},
	}
	for _, tt := range tests {
		got, ok := PlaceID(tt.url)
		if ok != tt.ok || got != tt.want {
			t.Errorf("PlaceID(%q) = %q,%v; want %q,%v", tt.url, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizeAddress(t *testing.T) {
	got := NormalizeAddress("  123  Main   St\n\tSuite 4  ")
	if got != "123 Main St Suite 4" {
		t.Errorf("NormalizeAddress = %q", got)
	}
	if NormalizeAddress("") != "" {
		t.Error("empty input should stay empty")
	}
}

func TestParseHours(t *testing.T) {
	got := ParseHours("Monday\n9AM-5PM\nTuesday\nClosed")
	want := map[string]string{"Monday": "9AM-5PM", "Tuesday": "Closed"}
	if !reflect.DeepEqual(map[string]string(got), want) {
		t.Errorf("ParseHours = %v, want %v", got, want)
	}
}

func TestParseHoursInlineAndContinuation(t *testing.T) {
	text := "Hours\nMonday 9AM-5PM\nTuesday Closed\nWednesday\n10AM-2PM\n10AM-3PM"
	got := ParseHours(text)
	want := map[string]string{
		"Monday":    "9AM-5PM",
		"Tuesday":   "Closed",
		"Wednesday": "10AM-3PM", // later continuation replaces
	}
	if !reflect.DeepEqual(map[string]string(got), want) {
		t.Errorf("ParseHours = %v, want %v", got, want)
	}
}

func TestParseHoursIgnoresLeadingLines(t *testing.T) {
	got := ParseHours("Popular times\nBusy now\nFriday 8AM-8PM")
	if len(got) != 1 || got["Friday"] != "8AM-8PM" {
		t.Errorf("ParseHours = %v, want only Friday", got)
	}
}

func TestParseHoursDayHeaderWithoutInlineHours(t *testing.T) {
	got := ParseHours("Sunday")
	if v, ok := got["Sunday"]; !ok || v != "" {
		t.Errorf("ParseHours = %v, want Sunday present with empty hours", got)
	}
}

func TestParseHoursEmpty(t *testing.T) {
	if got := ParseHours(""); len(got) != 0 {
		t.Errorf("ParseHours(\"\") = %v, want empty", got)
	}
}

func TestEmail(t *testing.T) {
	got, ok := Email("Contact us at info@example.com or call")
	if !ok || got != "info@example.com" {
		t.Errorf("Email = %q,%v", got, ok)
	}
	if _, ok := Email("no address here"); ok {
		t.Error("expected miss")
	}
}
