package dictionary

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/adrg/frontmatter"
)

// SectionMarker is the heading that opens a data dictionary table.
const SectionMarker = "## Data Dictionary"

type scanState int

const (
	stateSearching scanState = iota
	stateCapturing
	stateStopped
)

// Meta holds the optional front matter of a dictionary document.
type Meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Scan carves the first data dictionary table out of a markdown document.
// Row 0 is the header row; the remaining rows are data rows. Scanning stops
// for good at the first non-table line after the marker, so a second
// "## Data Dictionary" section in the same document is never read.
func Scan(content string) [][]string {
	var rows [][]string
	state := stateSearching

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")

		switch state {
		case stateSearching:
			if strings.HasPrefix(line, SectionMarker) {
				state = stateCapturing
			}

		case stateCapturing:
			if isDivider(line) {
				continue
			}
			if !strings.HasPrefix(line, "|") {
				state = stateStopped
				continue
			}
			rows = append(rows, splitRow(line))

		case stateStopped:
			return rows
		}
	}

	return rows
}

// isDivider reports whether a line holds nothing but whitespace, hyphens
// and pipes (blank lines and markdown table dividers).
func isDivider(line string) bool {
	stripped := strings.NewReplacer("-", "", "|", "").Replace(line)
	return strings.TrimSpace(stripped) == ""
}

// splitRow drops the segments outside the leading and trailing pipes and
// trims every cell.
func splitRow(line string) []string {
	parts := strings.Split(line, "|")
	if len(parts) < 2 {
		return []string{}
	}
	parts = parts[1 : len(parts)-1]

	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// ScanFile reads a markdown file, strips any YAML front matter and scans
// the remaining body.
func ScanFile(path string) ([][]string, Meta, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, Meta{}, err
	}

	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(content), &meta)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("parse front matter: %w", err)
	}

	return Scan(string(body)), meta, nil
}
