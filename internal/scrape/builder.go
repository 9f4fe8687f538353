// Package scrape walks OSSEM data dictionary markdown files and assembles
// them into a catalog.
package scrape

import (
	"fmt"
	"time"

	"github.com/itsmostafa/ossemdict/internal/catalog"
	"github.com/itsmostafa/ossemdict/internal/dictionary"
	"github.com/itsmostafa/ossemdict/internal/logger"
)

// DocumentStatus is the outcome of processing a single document.
type DocumentStatus string

const (
	StatusRegistered DocumentStatus = "registered"
	StatusEmpty      DocumentStatus = "empty"
	StatusFailed     DocumentStatus = "failed"
)

// Failure is a document that could not be read or parsed.
type Failure struct {
	Path string
	Err  error
}

// Summary holds the totals of a scrape run.
type Summary struct {
	Documents  int
	Registered int
	Empty      int
	Fields     int
	Products   int
	Failures   []Failure
	Duration   time.Duration
}

// Failed returns the number of failed documents.
func (s Summary) Failed() int {
	return len(s.Failures)
}

// Builder turns documents into a catalog. Logger and Metrics are optional.
type Builder struct {
	Logger  *logger.Logger
	Metrics *Metrics
}

// NewBuilder creates a Builder
func NewBuilder(log *logger.Logger, metrics *Metrics) *Builder {
	return &Builder{Logger: log, Metrics: metrics}
}

// Build processes paths in order. A document that fails is logged, counted
// and left out; it never stops the remaining documents. Documents without a
// data dictionary table contribute nothing.
func (b *Builder) Build(paths []string) (*catalog.Catalog, Summary) {
	log := b.Logger
	if log == nil {
		log = logger.Nop()
	}

	start := time.Now()
	c := catalog.New()
	summary := Summary{Documents: len(paths)}

	for _, path := range paths {
		fields, meta, err := buildDocument(path)
		status := StatusRegistered

		switch {
		case err != nil:
			status = StatusFailed
			summary.Failures = append(summary.Failures, Failure{Path: path, Err: err})
			log.LogDocumentFailed(path, err)

		case fields == nil:
			status = StatusEmpty
			summary.Empty++
			log.LogDocumentSkipped(path, "no data dictionary table")

		default:
			product := ProductFromPath(path)
			logName := LogFromPath(path)
			c.Register(product, logName, fields)

			summary.Registered++
			summary.Fields += fields.Len()
			if meta.Title != "" {
				log.Debug().Str("path", path).Str("title", meta.Title).Msg("document front matter")
			}
			log.LogDocumentRegistered(path, product, logName, fields.Len())
		}

		if b.Metrics != nil {
			n := 0
			if fields != nil {
				n = fields.Len()
			}
			b.Metrics.RecordDocument(status, n)
		}
	}

	summary.Products = len(c.Products())
	summary.Duration = time.Since(start)

	if b.Metrics != nil {
		b.Metrics.RecordScrape(summary.Products, summary.Duration)
	}
	log.LogScrapeComplete(summary.Documents, summary.Registered, summary.Failed(), summary.Fields, summary.Duration)

	return c, summary
}

// buildDocument scans and parses one document. A nil mapping without an
// error means the document has no table.
func buildDocument(path string) (*catalog.Fields, dictionary.Meta, error) {
	rows, meta, err := dictionary.ScanFile(path)
	if err != nil {
		return nil, meta, fmt.Errorf("failed to scan %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, meta, nil
	}

	entries, err := dictionary.Parse(rows)
	if err != nil {
		return nil, meta, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	fields := catalog.NewFields()
	for _, entry := range entries {
		var attrs catalog.AttributeSet
		for _, a := range entry.Attributes {
			attrs.Set(a.Name, a.Value)
		}
		fields.Set(entry.Field, attrs)
	}
	return fields, meta, nil
}
