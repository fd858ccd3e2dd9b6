package enrich

import (
	"context"
	"testing"

	"github.com/jarcoal/httpmock"

	"github.com/wombatsyoks/apify-google-maps-scraper/pkg/models"
)

func newTestEnricher(transport *httpmock.MockTransport) *Enricher {
	return New(Options{
		UserAgent: "test-agent",
		Transport: transport,
	})
}

func htmlResponder(body string) httpmock.Responder {
	resp := httpmock.NewStringResponse(200, body)
	resp.Header.Set("Content-Type", "text/html")
	return httpmock.ResponderFromResponse(resp)
}

func TestApplyFillsEmailFromMailtoLink(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", "https://joespizza.example/",
		htmlResponder(`<html><body>
			<p>Reach us at info@somewhere-else.example for press.</p>
			<a href="mailto:orders@joespizza.example?subject=hi">Order</a>
		</body></html>`))

	records := []models.BusinessRecord{
		{Title: "Joes Pizza", Website: "https://joespizza.example/"},
	}

	en := newTestEnricher(transport)
	if filled := en.Apply(context.Background(), records); filled != 1 {
		t.Fatalf("filled = %d, want 1", filled)
	}
	// The explicit mailto wins over addresses in page text.
	if records[0].Email != "orders@joespizza.example" {
		t.Errorf("email = %q", records[0].Email)
	}
}

func TestApplyFallsBackToPageText(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", "https://deli.example/",
		htmlResponder(`<html><body>
			<footer>Questions? hello@deli.example</footer>
		</body></html>`))

	records := []models.BusinessRecord{
		{Title: "Deli", Website: "https://deli.example/"},
	}

	en := newTestEnricher(transport)
	en.Apply(context.Background(), records)
	if records[0].Email != "hello@deli.example" {
		t.Errorf("email = %q", records[0].Email)
	}
}

func TestApplySkipsFailuresAndContinues(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", "https://down.example/",
		httpmock.NewStringResponder(503, "unavailable"))
	transport.RegisterResponder("GET", "https://up.example/",
		htmlResponder(`<html><body>contact@up.example</body></html>`))

	records := []models.BusinessRecord{
		{Title: "Down", Website: "https://down.example/"},
		{Title: "No site"},
		{Title: "Up", Website: "https://up.example/"},
	}

	en := newTestEnricher(transport)
	if filled := en.Apply(context.Background(), records); filled != 1 {
		t.Fatalf("filled = %d, want 1", filled)
	}
	if records[0].Email != "" || records[1].Email != "" {
		t.Errorf("unexpected emails: %q, %q", records[0].Email, records[1].Email)
	}
	if records[2].Email != "contact@up.example" {
		t.Errorf("email = %q", records[2].Email)
	}
}

func TestApplyKeepsExistingEmail(t *testing.T) {
	transport := httpmock.NewMockTransport()
	records := []models.BusinessRecord{
		{Title: "Set", Website: "https://set.example/", Email: "already@set.example"},
	}

	en := newTestEnricher(transport)
	if filled := en.Apply(context.Background(), records); filled != 0 {
		t.Fatalf("filled = %d, want 0", filled)
	}
	if records[0].Email != "already@set.example" {
		t.Errorf("email = %q", records[0].Email)
	}
}

func TestApplyReportsProgress(t *testing.T) {
	transport := httpmock.NewMockTransport()
	records := []models.BusinessRecord{{Title: "A"}, {Title: "B"}}

	var seen []int
	en := newTestEnricher(transport)
	en.OnVisit = func(done, total int) {
		if total != 2 {
			t.Errorf("total = %d", total)
		}
		seen = append(seen, done)
	}
	en.Apply(context.Background(), records)
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("progress calls = %v", seen)
	}
}

func TestApplyStopsOnCancel(t *testing.T) {
	transport := httpmock.NewMockTransport()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := []models.BusinessRecord{
		{Title: "A", Website: "https://a.example/"},
	}
	en := newTestEnricher(transport)
	if filled := en.Apply(ctx, records); filled != 0 {
		t.Fatalf("filled = %d, want 0", filled)
	}
}
