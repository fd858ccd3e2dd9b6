package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/wombatsyoks/apify-google-maps-scraper/internal/app"
	"github.com/wombatsyoks/apify-google-maps-scraper/internal/config"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:     "gmaps",
	Short:   "Scrape business listings from Google Maps",
	Long:    `gmaps runs a headless browser against Google Maps search, extracts business listings, and writes them as JSON, CSV, or Markdown.`,
	Version: "0.1.0",
}

// Execute runs the CLI. The application is initialized lazily in
// PersistentPreRunE so help and version never start a browser stack.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetApp() != nil {
			return nil
		}
		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}
		a, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		SetApp(a)
		return nil
	}

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		a := GetApp()
		if a == nil {
			return
		}
		if err := a.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Application shutdown reported an error")
		}
		SetApp(nil)
	}
}
