package maps

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for one scraper process.
type Metrics struct {
	Registry            *prometheus.Registry
	CardsParsedTotal    prometheus.Counter
	CardsSkippedTotal   prometheus.Counter
	DuplicatesDropped   prometheus.Counter
	ScrollStepsTotal    prometheus.Counter
	DetailVisitsTotal   prometheus.Counter
	DetailFailuresTotal prometheus.Counter
	RunDuration         prometheus.Histogram
	RunsTotal           *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	cardsParsed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gmaps_cards_parsed_total",
		Help: "Result cards successfully parsed into records.",
	})
	cardsSkipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gmaps_cards_skipped_total",
		Help: "Result cards rejected because no title could be derived.",
	})
	duplicates := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gmaps_duplicates_dropped_total",
		Help: "Records dropped because their place identifier was already seen.",
	})
	scrollSteps := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gmaps_scroll_steps_total",
		Help: "Scroll-to-load steps performed against the results feed.",
	})
	detailVisits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gmaps_detail_visits_total",
		Help: "Detail pages visited during deep scrape.",
	})
	detailFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gmaps_detail_failures_total",
		Help: "Detail visits that failed and fell back to the partial record.",
	})
	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "gmaps_run_duration_seconds",
		Help:    "Wall-clock duration of a full traversal run.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gmaps_runs_total",
		Help: "Traversal runs by terminal state.",
	}, []string{"state"})

	registry.MustRegister(cardsParsed, cardsSkipped, duplicates, scrollSteps,
		detailVisits, detailFailures, runDuration, runs)

	return &Metrics{
		Registry:            registry,
		CardsParsedTotal:    cardsParsed,
		CardsSkippedTotal:   cardsSkipped,
		DuplicatesDropped:   duplicates,
		ScrollStepsTotal:    scrollSteps,
		DetailVisitsTotal:   detailVisits,
		DetailFailuresTotal: detailFailures,
		RunDuration:         runDuration,
		RunsTotal:           runs,
	}
}

// IncCardParsed increments the parsed-cards counter.
func (m *Metrics) IncCardParsed() {
	if m == nil {
		return
	}
	m.CardsParsedTotal.Inc()
}

// IncCardSkipped increments the skipped-cards counter.
func (m *Metrics) IncCardSkipped() {
	if m == nil {
		return
	}
	m.CardsSkippedTotal.Inc()
}

// IncDuplicate increments the duplicate-drop counter.
func (m *Metrics) IncDuplicate() {
	if m == nil {
		return
	}
	m.DuplicatesDropped.Inc()
}

// IncScrollStep increments the scroll-step counter.
func (m *Metrics) IncScrollStep() {
	if m == nil {
		return
	}
	m.ScrollStepsTotal.Inc()
}

// IncDetailVisit increments the detail-visit counter.
func (m *Metrics) IncDetailVisit() {
	if m == nil {
		return
	}
	m.DetailVisitsTotal.Inc()
}

// IncDetailFailure increments the detail-failure counter.
func (m *Metrics) IncDetailFailure() {
	if m == nil {
		return
	}
	m.DetailFailuresTotal.Inc()
}

// ObserveRun records a completed run's duration and terminal state.
func (m *Metrics) ObserveRun(d time.Duration, state State) {
	if m == nil {
		return
	}
	m.RunDuration.Observe(d.Seconds())
	m.RunsTotal.WithLabelValues(state.String()).Inc()
}
