package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/wombatsyoks/apify-google-maps-scraper/internal/browser"
	"github.com/wombatsyoks/apify-google-maps-scraper/internal/config"
	"github.com/wombatsyoks/apify-google-maps-scraper/internal/enrich"
	"github.com/wombatsyoks/apify-google-maps-scraper/internal/maps"
	"github.com/wombatsyoks/apify-google-maps-scraper/internal/output"
	"github.com/wombatsyoks/apify-google-maps-scraper/pkg/models"
)

var (
	scrapeMaxResults int
	scrapeDeep       bool
	scrapeEmails     bool
	scrapeOutput     string
	scrapeFormat     string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <query> [location]",
	Short: "Run a search and extract the business listings",
	Example: `  # Top 20 pizza places in New York, printed as JSON
  gmaps scrape pizza "New York" --max-results 20

  # Deep scrape with detail pages and website emails, saved to CSV
  gmaps scrape "coffee shop" Berlin --deep --emails --format csv --output results.csv`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().IntVar(&scrapeMaxResults, "max-results", config.DefaultMaxResults, "Maximum number of records to collect")
	scrapeCmd.Flags().BoolVar(&scrapeDeep, "deep", config.DefaultDeepScrape, "Visit each result's detail page for full fields")
	scrapeCmd.Flags().BoolVar(&scrapeEmails, "emails", false, "Visit each result's website to find a contact email")
	scrapeCmd.Flags().StringVarP(&scrapeOutput, "output", "o", "", "Output file path (default: stdout)")
	scrapeCmd.Flags().StringVar(&scrapeFormat, "format", "json", "Output format: json, csv, or markdown")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	a := GetApp()
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	format := strings.ToLower(scrapeFormat)
	switch format {
	case "json", "csv", "markdown":
	default:
		return fmt.Errorf("unknown format %q (want json, csv, or markdown)", scrapeFormat)
	}

	req := models.Request{
		Query:      args[0],
		MaxResults: scrapeMaxResults,
		DeepScrape: scrapeDeep,
	}
	if len(args) > 1 {
		req.Location = args[1]
	}

	opts := a.BrowserOptions()
	session, err := browser.NewSession(cmd.Context(), opts)
	if err != nil {
		if opts.Proxy != "" {
			a.Proxies.MarkFailed(opts.Proxy)
		}
		return fmt.Errorf("failed to start browser session: %w", err)
	}
	if opts.Proxy != "" {
		a.Proxies.MarkHealthy(opts.Proxy)
	}

	scraper := maps.New(session, a.Config, a.Metrics)
	if scrapeDeep {
		scraper.OnDetailVisit = progressFunc("visiting detail pages")
	}

	records, err := scraper.Run(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	if scrapeEmails && len(records) > 0 {
		en := enrich.New(enrich.Options{
			UserAgent: a.Config.UserAgent,
			Timeout:   a.Config.EnrichTimeout,
			Delay:     a.Config.EnrichDelay,
		})
		en.OnVisit = progressFunc("visiting websites")
		en.Apply(cmd.Context(), records)
	}

	return writeResults(records, format, scrapeOutput)
}

// progressFunc renders a progress bar over a visit loop, created lazily when
// the total becomes known.
func progressFunc(description string) func(done, total int) {
	var bar *progressbar.ProgressBar
	return func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription(description),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionClearOnFinish(),
			)
		}
		if err := bar.Set(done); err != nil {
			log.Debug().Err(err).Msg("Progress update failed")
		}
	}
}

func writeResults(records []models.BusinessRecord, format, path string) error {
	if path == "" {
		data, err := output.WriteJSON(records)
		if err != nil {
			return err
		}
		if format != "json" {
			log.Warn().Str("format", format).Msg("No output file given, printing JSON to stdout")
		}
		fmt.Println(string(data))
		return nil
	}

	switch format {
	case "csv":
		return output.SaveCSV(records, path)
	case "markdown":
		return output.SaveMarkdown(records, path)
	default:
		return output.SaveJSON(records, path)
	}
}
