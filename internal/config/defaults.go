package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel  = "info"
	DefaultJSONLog   = false
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	DefaultMapsBaseURL = "https://www.google.com/maps/search/"

	DefaultLocale       = "en-US"
	DefaultTimezone     = "America/New_York"
	DefaultGeoLat       = 40.7128
	DefaultGeoLng       = -74.0060
	DefaultViewportW    = 1920
	DefaultViewportH    = 1080
	DefaultHeadless     = true
	DefaultNavTimeout   = 60 * time.Second
	DefaultFeedTimeout  = 30 * time.Second
	DefaultDetailWait   = 5 * time.Second
	DefaultScrollSettle = 1 * time.Second
	DefaultDetailSettle = 2 * time.Second
	DefaultHoursSettle  = 500 * time.Millisecond

	// Scroll budget scales with requested results, bounded by this ceiling.
	DefaultMaxScrollSteps = 100

	DefaultMaxResults = 100
	DefaultDeepScrape = false

	// Card-action limiter: sliding window.
	DefaultActionLimit  = 30
	DefaultActionWindow = 10 * time.Second

	// Page-navigation pacing for detail visits and website fetches.
	DefaultPageRateRPS   = 0.5
	DefaultPageRateBurst = 1

	// Website email enrichment.
	DefaultEnrichTimeout = 15 * time.Second
	DefaultEnrichDelay   = 1 * time.Second

	// Keyring entry consulted when --proxy-from-keyring is set.
	KeyringService = "gmaps-scraper"
	KeyringProxy   = "proxy"
)
