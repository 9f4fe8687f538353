package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/itsmostafa/ossemdict/internal/catalog"
	"github.com/itsmostafa/ossemdict/internal/export"
	"github.com/itsmostafa/ossemdict/internal/graph"
	"github.com/itsmostafa/ossemdict/internal/logger"
	"github.com/itsmostafa/ossemdict/internal/output"
	"github.com/itsmostafa/ossemdict/internal/where"
	"github.com/spf13/cobra"
)

var queryInput string
var queryField string
var queryStandard string
var queryProduct string
var queryWhere string
var queryOutputCSV string
var queryGraph string
var queryAllEdges bool
var queryKeepSameName bool
var queryFormat string
var queryPrint bool

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Filter a scraped catalog and export CSV and graphs",
	Long: `Load a catalog written by scrape, keep the records matching one filter and
write them as CSV and as a Graphviz graph linking product field names to OSSEM
standard names.

Filters:
  --field      records whose field name matches exactly
  --standard   records whose "Standard Name" attribute matches exactly
  --product    every record of one product
  --where      records for which a JavaScript expression is truthy, e.g.
               --where 'product === "sysmon" && attrs["Type"] === "integer"'
               Globals: product, log, field, standard, attrs, re.test(pattern, text)

Fields without a "Standard Name" are listed as skipped and left out of
--standard results.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := queryOptions{
			Input:    queryInput,
			Selector: selectorFromFlags(cmd.Flags()),
			CSV:      queryOutputCSV,
			Graph:    queryGraph,
			Print:    queryPrint,
			GraphOptions: graph.Options{
				CollapseSameName: cfg.Graph.CollapseSameName,
				DeduplicateEdges: cfg.Graph.DeduplicateEdges,
			},
			Format: cfg.Graph.Format,
		}
		if cmd.Flags().Changed("where") {
			expr, err := where.Compile(queryWhere)
			if err != nil {
				return err
			}
			opts.Where = expr
			opts.Selector = expr.Selector()
		}
		if cmd.Flags().Changed("keep-same-name") {
			opts.GraphOptions.CollapseSameName = !queryKeepSameName
		}
		if cmd.Flags().Changed("all-edges") {
			opts.GraphOptions.DeduplicateEdges = !queryAllEdges
		}
		if cmd.Flags().Changed("format") {
			opts.Format = queryFormat
		}

		return runQuery(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), log, opts)
	},
}

func init() {
	queryCmd.Flags().StringVarP(&queryInput, "input", "i", "data_dict.json", "Catalog JSON written by scrape")
	queryCmd.Flags().StringVar(&queryField, "field", "", "Keep records with this field name")
	queryCmd.Flags().StringVar(&queryStandard, "standard", "", "Keep records with this OSSEM standard name")
	queryCmd.Flags().StringVar(&queryProduct, "product", "", "Keep every record of this product")
	queryCmd.Flags().StringVar(&queryWhere, "where", "", "Keep records matching a JavaScript expression")
	queryCmd.Flags().StringVarP(&queryOutputCSV, "output-csv", "c", "query.csv", "Write matching records as CSV (empty to skip)")
	queryCmd.Flags().StringVarP(&queryGraph, "graph", "g", "query.gv", "Write the field mapping graph as DOT (empty to skip)")
	queryCmd.Flags().BoolVar(&queryAllEdges, "all-edges", false, "Keep duplicate edges between the same nodes")
	queryCmd.Flags().BoolVar(&queryKeepSameName, "keep-same-name", false, "Keep fields whose name already equals their standard name")
	queryCmd.Flags().StringVar(&queryFormat, "format", "", "Render the graph with Graphviz (png, svg, pdf)")
	queryCmd.Flags().BoolVar(&queryPrint, "print", false, "Print the matching catalog as JSON to stdout")

	queryCmd.MarkFlagsMutuallyExclusive("field", "standard", "product", "where")
	queryCmd.MarkFlagsOneRequired("field", "standard", "product", "where")

	rootCmd.AddCommand(queryCmd)
}

type queryOptions struct {
	Input        string
	Selector     catalog.Selector
	// Where, when set, replaces Selector as the filter
	Where        *where.Expression
	CSV          string
	Graph        string
	GraphOptions graph.Options
	Format       string
	Print        bool
}

// flagSet reports which flags were given on the command line.
type flagSet interface {
	Changed(name string) bool
}

// selectorFromFlags picks the filter kind from the flag that was given, so
// an explicit empty value still selects its kind.
func selectorFromFlags(flags flagSet) catalog.Selector {
	switch {
	case flags.Changed("field"):
		return catalog.Selector{Kind: catalog.ByFieldName, Value: queryField}
	case flags.Changed("standard"):
		return catalog.Selector{Kind: catalog.ByStandardName, Value: queryStandard}
	default:
		return catalog.Selector{Kind: catalog.ByProduct, Value: queryProduct}
	}
}

// runQuery filters the catalog at opts.Input and writes the requested
// outputs. Data goes to stdout, progress to status.
func runQuery(ctx context.Context, stdout, status io.Writer, log *logger.Logger, opts queryOptions) error {
	c, err := catalog.Load(opts.Input)
	if err != nil {
		return err
	}

	output.FormatQueryHeader(status, opts.Input, opts.Selector)

	result, diag, err := filter(ctx, c, opts)
	if err != nil {
		return err
	}

	var drawable *catalog.Catalog
	if opts.Graph != "" {
		drawable = graphable(result, &diag)
	}

	qlog := log.Component("query")
	for _, s := range diag.Skips {
		qlog.LogRecordSkipped(s.Product, s.Log, s.Field, s.Reason)
	}
	output.FormatSkips(status, diag.Skips)

	if opts.Print {
		if err := result.Print(stdout); err != nil {
			return err
		}
	}

	var written []string
	if opts.CSV != "" {
		if err := export.WriteCatalogCSVFile(opts.CSV, result); err != nil {
			return err
		}
		written = append(written, opts.CSV)
	}

	if opts.Graph != "" {
		g, err := graph.Build(drawable, opts.GraphOptions)
		if err != nil {
			return fmt.Errorf("failed to build graph: %w", err)
		}
		if err := graph.WriteDOTFile(opts.Graph, g); err != nil {
			return err
		}
		written = append(written, opts.Graph)

		if opts.Format != "" {
			rendered, err := graph.Render(ctx, opts.Graph, opts.Format)
			switch {
			case errors.Is(err, graph.ErrRendererNotFound):
				qlog.Warn().Str("graph", opts.Graph).Msg("graphviz not installed, leaving DOT file unrendered")
			case err != nil:
				return err
			default:
				written = append(written, rendered)
			}
		}
	}

	output.FormatQuerySummary(status, result, len(diag.Skips), written...)
	return nil
}

func filter(ctx context.Context, c *catalog.Catalog, opts queryOptions) (*catalog.Catalog, catalog.Diagnostics, error) {
	if opts.Where != nil {
		result, err := where.Filter(ctx, c, opts.Where, where.DefaultTimeout)
		return result, catalog.Diagnostics{}, err
	}
	return c.Filter(opts.Selector)
}

// graphable drops records the graph cannot place and records them in diag.
func graphable(c *catalog.Catalog, diag *catalog.Diagnostics) *catalog.Catalog {
	out, _ := c.Select(func(rec catalog.Record) (bool, error) {
		if _, ok := rec.Attributes.StandardName(); !ok {
			diag.AddSkip(rec, "not graphed: missing "+catalog.StandardNameAttribute)
			return false, nil
		}
		return true, nil
	})
	return out
}
