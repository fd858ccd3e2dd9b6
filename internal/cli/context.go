// Package cli provides the command-line interface for the scraper.
package cli

import (
	"github.com/wombatsyoks/apify-google-maps-scraper/internal/app"
)

// globalApp is set by the root command's PersistentPreRunE and cleared on
// teardown. Commands run one at a time, so a plain global is sufficient.
var globalApp *app.Application

// SetApp stores the Application for command handlers.
func SetApp(a *app.Application) {
	globalApp = a
}

// GetApp returns the Application initialized for the current invocation.
func GetApp() *app.Application {
	return globalApp
}
