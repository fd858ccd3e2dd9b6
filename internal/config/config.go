// Package config combines defaults, environment variables, and CLI flags into
// the application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Browser session
	UserAgent  string
	ChromePath string
	Headless   bool
	ViewportW  int
	ViewportH  int
	Locale     string
	Timezone   string
	GeoLat     float64
	GeoLng     float64

	// Proxies
	Proxies         []string
	ProxyFromKeyring bool

	// Traversal timing
	NavTimeout     time.Duration
	FeedTimeout    time.Duration
	DetailWait     time.Duration
	ScrollSettle   time.Duration
	DetailSettle   time.Duration
	HoursSettle    time.Duration
	MaxScrollSteps int

	// Rate limiting
	ActionLimit   int
	ActionWindow  time.Duration
	PageRateRPS   float64
	PageRateBurst int

	// Website email enrichment
	EnrichEmails  bool
	EnrichTimeout time.Duration
	EnrichDelay   time.Duration

	// Metrics endpoint; empty disables the listener.
	MetricsAddr string
}

// Load builds a Config by combining defaults, environment variables, and CLI
// flags. Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:       DefaultLogLevel,
		JSONLog:        DefaultJSONLog,
		UserAgent:      DefaultUserAgent,
		Headless:       DefaultHeadless,
		ViewportW:      DefaultViewportW,
		ViewportH:      DefaultViewportH,
		Locale:         DefaultLocale,
		Timezone:       DefaultTimezone,
		GeoLat:         DefaultGeoLat,
		GeoLng:         DefaultGeoLng,
		NavTimeout:     DefaultNavTimeout,
		FeedTimeout:    DefaultFeedTimeout,
		DetailWait:     DefaultDetailWait,
		ScrollSettle:   DefaultScrollSettle,
		DetailSettle:   DefaultDetailSettle,
		HoursSettle:    DefaultHoursSettle,
		MaxScrollSteps: DefaultMaxScrollSteps,
		ActionLimit:    DefaultActionLimit,
		ActionWindow:   DefaultActionWindow,
		PageRateRPS:    DefaultPageRateRPS,
		PageRateBurst:  DefaultPageRateBurst,
		EnrichTimeout:  DefaultEnrichTimeout,
		EnrichDelay:    DefaultEnrichDelay,
	}

	// Environment overrides
	if v := os.Getenv("GMAPS_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("GMAPS_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv("GMAPS_PROXY"); v != "" {
		cfg.Proxies = splitProxies(v)
	}
	if v := os.Getenv("GMAPS_HEADLESS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Headless = b
		}
	}

	// CLI flag overrides
	if cmd != nil {
		if f := cmd.Flags().Lookup("proxy"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.Proxies = splitProxies(s)
			}
		}
		if f := cmd.Flags().Lookup("proxy-from-keyring"); f != nil && f.Value.String() == "true" {
			cfg.ProxyFromKeyring = true
		}
		if f := cmd.Flags().Lookup("user-agent"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.UserAgent = s
			}
		}
		if f := cmd.Flags().Lookup("timeout"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.NavTimeout = d
				}
			}
		}
		if f := cmd.Flags().Lookup("headful"); f != nil && f.Value.String() == "true" {
			cfg.Headless = false
		}
		if f := cmd.Flags().Lookup("json"); f != nil && f.Value.String() == "true" {
			cfg.JSONLog = true
		}
		if f := cmd.Flags().Lookup("verbose"); f != nil && f.Value.String() == "true" {
			cfg.LogLevel = "debug"
		}
		if f := cmd.Flags().Lookup("quiet"); f != nil && f.Value.String() == "true" {
			cfg.LogLevel = "error"
		}
		if f := cmd.Flags().Lookup("metrics-addr"); f != nil {
			cfg.MetricsAddr = f.Value.String()
		}
	}

	// A proxy stored in the OS keyring takes precedence over flag/env values.
	if cfg.ProxyFromKeyring {
		if p, err := LookupProxy(); err == nil && p != "" {
			cfg.Proxies = splitProxies(p)
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func splitProxies(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
