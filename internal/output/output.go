package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/itsmostafa/ossemdict/internal/catalog"
	"github.com/itsmostafa/ossemdict/internal/scrape"
)

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for summary boxes
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)

	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)
)

// FormatScrapeHeader renders the scrape header with the source and document count
func FormatScrapeHeader(w io.Writer, source string, documents int) {
	content := fmt.Sprintf("%s %s\n%s %s",
		dimStyle.Render("Source:"), titleStyle.Render(source),
		dimStyle.Render("Documents:"), formatNumber(documents),
	)
	fmt.Fprintln(w, headerBoxStyle.Render(content))
}

// FormatScrapeSummary renders the totals of a scrape and where they were written
func FormatScrapeSummary(w io.Writer, s scrape.Summary, outputs ...string) {
	status := successStyle.Render("OK")
	if s.Failed() > 0 {
		status = warnStyle.Render(fmt.Sprintf("%d FAILED", s.Failed()))
	}

	line1 := fmt.Sprintf("%s %s  %s %s  %s %s",
		dimStyle.Render("Products:"), formatNumber(s.Products),
		dimStyle.Render("Logs:"), formatNumber(s.Registered),
		dimStyle.Render("Fields:"), formatNumber(s.Fields),
	)
	line2 := fmt.Sprintf("%s %s  %s %.2fs  %s",
		dimStyle.Render("Without table:"), formatNumber(s.Empty),
		dimStyle.Render("Duration:"), s.Duration.Seconds(),
		status,
	)

	lines := []string{titleStyle.Render("Scrape Complete"), line1, line2}
	for _, out := range outputs {
		lines = append(lines, fmt.Sprintf("%s %s", dimStyle.Render("Wrote:"), out))
	}
	fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
}

// FormatFailures lists documents that could not be scraped
func FormatFailures(w io.Writer, failures []scrape.Failure) {
	for _, f := range failures {
		fmt.Fprintf(w, "%s %s\n", errorStyle.Render("✗"), f.Err)
	}
}

// FormatQueryHeader renders the query header
func FormatQueryHeader(w io.Writer, source string, sel catalog.Selector) {
	content := fmt.Sprintf("%s %s\n%s %s",
		dimStyle.Render("Catalog:"), source,
		dimStyle.Render("Filter:"), titleStyle.Render(sel.String()),
	)
	fmt.Fprintln(w, headerBoxStyle.Render(content))
}

// FormatQuerySummary renders the number of matching records and the written outputs
func FormatQuerySummary(w io.Writer, c *catalog.Catalog, skipped int, outputs ...string) {
	line := fmt.Sprintf("%s %s  %s %s  %s %s",
		dimStyle.Render("Products:"), formatNumber(len(c.Products())),
		dimStyle.Render("Records:"), formatNumber(c.Len()),
		dimStyle.Render("Skipped:"), formatNumber(skipped),
	)

	lines := []string{titleStyle.Render("Query Complete"), line}
	if c.Len() == 0 {
		lines = append(lines, warnStyle.Render("No records matched"))
	}
	for _, out := range outputs {
		lines = append(lines, fmt.Sprintf("%s %s", dimStyle.Render("Wrote:"), out))
	}
	fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
}

// FormatSkips lists records a filter left out
func FormatSkips(w io.Writer, skips []catalog.Skip) {
	for _, s := range skips {
		fmt.Fprintf(w, "%s %s/%s/%s %s\n",
			warnStyle.Render("●"),
			s.Product, s.Log, s.Field,
			dimStyle.Render("("+s.Reason+")"),
		)
	}
}

// formatNumber adds commas to large numbers for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%d,%03d", n/1000, n%1000)
	}
	return fmt.Sprintf("%d,%03d,%03d", n/1000000, (n/1000)%1000, n%1000)
}
