package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/itsmostafa/ossemdict/internal/catalog"
	"github.com/itsmostafa/ossemdict/internal/config"
	"github.com/itsmostafa/ossemdict/internal/export"
	"github.com/itsmostafa/ossemdict/internal/logger"
	"github.com/itsmostafa/ossemdict/internal/output"
	"github.com/itsmostafa/ossemdict/internal/scrape"
	"github.com/spf13/cobra"
)

var errMissingDir = errors.New("provide -d path to the data dictionary root")

var scrapeDir string
var scrapeOutputJSON string
var scrapeOutputCSV string
var scrapeMetricsFile string

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape data dictionary markdown into a catalog",
	Long: `Walk a directory of OSSEM markdown files, carve out each "## Data Dictionary"
table and write the combined catalog as JSON and CSV.

The product is taken from the directory holding each file and the log from the
file name, so data_dictionaries/windows/sysmon/ProcessCreate.md becomes
sysmon → ProcessCreate.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cfg.Scrape
		if cmd.Flags().Changed("output-json") {
			opts.OutputJSON = scrapeOutputJSON
		}
		if cmd.Flags().Changed("output-csv") {
			opts.OutputCSV = scrapeOutputCSV
		}
		if cmd.Flags().Changed("metrics-file") {
			opts.MetricsFile = scrapeMetricsFile
		}

		if scrapeDir == "" {
			cmd.Usage()
			return errMissingDir
		}

		err := runScrape(cmd.ErrOrStderr(), log, scrapeDir, opts)
		if errors.Is(err, scrape.ErrSourceNotFound) {
			cmd.Usage()
		}
		return err
	},
}

func init() {
	defaults := config.Default().Scrape

	scrapeCmd.Flags().StringVarP(&scrapeDir, "dir", "d", "", "Path to the OSSEM data dictionary root (or a single .md file)")
	scrapeCmd.Flags().StringVarP(&scrapeOutputJSON, "output-json", "o", defaults.OutputJSON, "Store the scraped catalog JSON here")
	scrapeCmd.Flags().StringVarP(&scrapeOutputCSV, "output-csv", "c", defaults.OutputCSV, "Store the scraped catalog CSV here")
	scrapeCmd.Flags().StringVar(&scrapeMetricsFile, "metrics-file", "", "Write scrape metrics in Prometheus textfile format")

	rootCmd.AddCommand(scrapeCmd)
}

// runScrape scrapes dir and writes every configured output. Per-document
// failures are reported but do not fail the run.
func runScrape(w io.Writer, log *logger.Logger, dir string, opts config.ScrapeConfig) error {
	docs, err := scrape.Documents(dir)
	if err != nil {
		return err
	}

	output.FormatScrapeHeader(w, dir, len(docs))

	metrics := scrape.NewMetrics()
	c, summary := scrape.NewBuilder(log.Component("scrape"), metrics).Build(docs)

	var written []string
	if opts.OutputJSON != "" {
		if err := catalog.Save(c, opts.OutputJSON); err != nil {
			return err
		}
		written = append(written, opts.OutputJSON)
	}
	if opts.OutputCSV != "" {
		if err := export.WriteCatalogCSVFile(opts.OutputCSV, c); err != nil {
			return err
		}
		written = append(written, opts.OutputCSV)
	}
	if opts.MetricsFile != "" {
		if err := metrics.WriteTextfile(opts.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		written = append(written, opts.MetricsFile)
	}

	output.FormatFailures(w, summary.Failures)
	output.FormatScrapeSummary(w, summary, written...)
	return nil
}
