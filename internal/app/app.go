// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wombatsyoks/apify-google-maps-scraper/internal/browser"
	"github.com/wombatsyoks/apify-google-maps-scraper/internal/config"
	"github.com/wombatsyoks/apify-google-maps-scraper/internal/maps"
	"github.com/wombatsyoks/apify-google-maps-scraper/internal/proxy"
)

// Application holds the process-wide dependencies shared by CLI commands.
// It is created once at startup; Close releases everything it owns.
type Application struct {
	Config  *config.Config
	Logger  *zerolog.Logger
	Proxies *proxy.Pool
	Metrics *maps.Metrics

	metricsSrv *http.Server
}

// New builds an Application from the loaded config: logger, proxy pool,
// metrics registry, and the optional metrics listener.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	level := zerolog.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	app := &Application{
		Config:  cfg,
		Logger:  &logger,
		Proxies: proxy.NewPool(cfg.Proxies),
		Metrics: maps.NewMetrics(),
	}

	if cfg.MetricsAddr != "" {
		app.startMetricsListener(cfg.MetricsAddr)
	}

	logger.Info().Msg("Application initialized")
	return app, nil
}

// BrowserOptions resolves the session options for one scrape run, drawing the
// next proxy from the pool when one is configured.
func (a *Application) BrowserOptions() browser.Options {
	opts := browser.Options{
		UserAgent:  a.Config.UserAgent,
		ChromePath: a.Config.ChromePath,
		Headless:   a.Config.Headless,
		ViewportW:  a.Config.ViewportW,
		ViewportH:  a.Config.ViewportH,
		Locale:     a.Config.Locale,
		Timezone:   a.Config.Timezone,
		GeoLat:     a.Config.GeoLat,
		GeoLng:     a.Config.GeoLng,
	}
	if opts.ChromePath == "" {
		opts.ChromePath = browser.FindChrome()
	}
	if a.Proxies.Size() > 0 {
		opts.Proxy = a.Proxies.Next()
	}
	return opts
}

func (a *Application) startMetricsListener(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.Metrics.Registry, promhttp.HandlerOpts{}))
	a.metricsSrv = &http.Server{Addr: addr, Handler: mux}

	go func() {
		a.Logger.Info().Str("addr", addr).Msg("Metrics listener started")
		if err := a.metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.Warn().Err(err).Msg("Metrics listener stopped")
		}
	}()
}

// Close shuts down everything the Application owns. Errors are logged but do
// not interrupt the remaining shutdown steps.
func (a *Application) Close(ctx context.Context) error {
	a.Logger.Debug().Msg("Shutting down application")

	if a.metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := a.metricsSrv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warn().Err(err).Msg("Metrics listener shutdown failed")
		}
	}
	return nil
}
