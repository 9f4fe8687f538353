package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/itsmostafa/ossemdict/internal/catalog"
	"github.com/itsmostafa/ossemdict/internal/scrape"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := formatNumber(tt.input); got != tt.expected {
				t.Errorf("formatNumber(%d) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatScrapeSummary(t *testing.T) {
	var buf bytes.Buffer
	FormatScrapeSummary(&buf, scrape.Summary{
		Documents:  3,
		Registered: 2,
		Fields:     1500,
		Products:   1,
		Failures:   []scrape.Failure{{Path: "x.md", Err: errors.New("boom")}},
		Duration:   time.Second,
	}, "data_dict.json")

	out := buf.String()
	for _, want := range []string{"Scrape Complete", "1,500", "1 FAILED", "data_dict.json"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestFormatQuerySummary(t *testing.T) {
	t.Run("no matches", func(t *testing.T) {
		var buf bytes.Buffer
		FormatQuerySummary(&buf, catalog.New(), 0)
		if !strings.Contains(buf.String(), "No records matched") {
			t.Errorf("expected no-match notice, got:\n%s", buf.String())
		}
	})

	t.Run("with outputs", func(t *testing.T) {
		c := catalog.New()
		c.Append("sysmon", "ProcessCreate", "Image", catalog.NewAttributeSet("Standard Name", "process_path"))

		var buf bytes.Buffer
		FormatQuerySummary(&buf, c, 2, "out.csv", "out.gv")
		out := buf.String()
		if strings.Contains(out, "No records matched") {
			t.Error("unexpected no-match notice")
		}
		if !strings.Contains(out, "out.gv") {
			t.Errorf("expected graph output path, got:\n%s", out)
		}
	})
}

func TestFormatSkips(t *testing.T) {
	var buf bytes.Buffer
	FormatSkips(&buf, []catalog.Skip{{
		Product: "carbonblack",
		Log:     "procstart",
		Field:   "md5",
		Reason:  "missing Standard Name",
	}})

	if !strings.Contains(buf.String(), "carbonblack/procstart/md5") {
		t.Errorf("expected skip identity, got %q", buf.String())
	}
}

func TestFormatFailures(t *testing.T) {
	var buf bytes.Buffer
	FormatFailures(&buf, []scrape.Failure{{Path: "bad.md", Err: errors.New("failed to parse bad.md")}})

	if !strings.Contains(buf.String(), "failed to parse bad.md") {
		t.Errorf("expected failure message, got %q", buf.String())
	}
}
