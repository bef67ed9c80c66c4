// Package metrics records statement parsing outcomes as Prometheus metrics.
package metrics

import (
	"fmt"

	"fjacquet/bank-insights/internal/stmtparser"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusParsed  = "parsed"
	StatusNoTable = "no_table"
	StatusFailed  = "failed"
)

// Recorder collects parse metrics. It implements stmtparser.Observer.
type Recorder interface {
	stmtparser.Observer
	// ParseFailed counts an input that could not be parsed at all. Such input
	// never reaches grammar detection, so variant is the configured one.
	ParseFailed(variant string)
}

// PrometheusRecorder records metrics into its own registry.
type PrometheusRecorder struct {
	registry      *prometheus.Registry
	parseTotal    *prometheus.CounterVec
	linesTotal    *prometheus.CounterVec
	parseDuration prometheus.Histogram
}

// NewPrometheusRecorder creates a recorder backed by a fresh registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		registry: reg,
		parseTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statement_parse_total",
				Help: "Total number of statements parsed",
			},
			[]string{"variant", "status"},
		),
		linesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statement_lines_total",
				Help: "Total number of statement lines seen, by zone and outcome",
			},
			[]string{"zone", "outcome"},
		),
		parseDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "statement_parse_duration_seconds",
				Help:    "Statement parse duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
			},
		),
	}
}

// Registry exposes the registry the recorder writes to.
func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *PrometheusRecorder) ObserveParse(s stmtparser.Stats) {
	status := StatusParsed
	if !s.TableFound {
		status = StatusNoTable
	}
	r.parseTotal.WithLabelValues(string(s.Variant), status).Inc()
	r.linesTotal.WithLabelValues("header", "scanned").Add(float64(s.HeaderLines))
	r.linesTotal.WithLabelValues("table", "matched").Add(float64(s.Matched))
	r.linesTotal.WithLabelValues("table", "skipped").Add(float64(s.Skipped))
	r.parseDuration.Observe(s.Duration.Seconds())
}

func (r *PrometheusRecorder) ParseFailed(variant string) {
	r.parseTotal.WithLabelValues(variant, StatusFailed).Inc()
}

// WriteTextfile writes every metric in the registry to path in the text
// exposition format, for pickup by the node exporter textfile collector.
func (r *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) ObserveParse(stmtparser.Stats) {}

func (NoopRecorder) ParseFailed(string) {}
