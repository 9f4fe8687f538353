package scrape

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of a scrape run. Each instance owns
// its registry so repeated runs and tests do not collide.
type Metrics struct {
	registry *prometheus.Registry

	DocumentsTotal *prometheus.CounterVec
	FieldsTotal    prometheus.Counter
	Products       prometheus.Gauge
	ScrapeDuration prometheus.Gauge
}

// NewMetrics creates and registers all scrape metrics
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		DocumentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ossemdict_documents_total",
				Help: "Markdown documents processed, by outcome",
			},
			[]string{"status"},
		),

		FieldsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ossemdict_fields_total",
				Help: "Fields registered into the catalog",
			},
		),

		Products: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "ossemdict_catalog_products",
				Help: "Distinct products in the scraped catalog",
			},
		),

		ScrapeDuration: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "ossemdict_scrape_duration_seconds",
				Help: "Wall time of the last scrape",
			},
		),
	}
}

// Registry returns the registry the metrics are registered with
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordDocument counts one processed document
func (m *Metrics) RecordDocument(status DocumentStatus, fields int) {
	m.DocumentsTotal.WithLabelValues(string(status)).Inc()
	if fields > 0 {
		m.FieldsTotal.Add(float64(fields))
	}
}

// RecordScrape records the results of a completed scrape
func (m *Metrics) RecordScrape(products int, duration time.Duration) {
	m.Products.Set(float64(products))
	m.ScrapeDuration.Set(duration.Seconds())
}

// WriteTextfile writes the metrics in the node exporter textfile format
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
