// Package container provides dependency injection for the bank-insights application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/bank-insights/internal/batch"
	"fjacquet/bank-insights/internal/config"
	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/metrics"
	"fjacquet/bank-insights/internal/report"
	"fjacquet/bank-insights/internal/stmtparser"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	recorder   *metrics.PrometheusRecorder
	parser     *stmtparser.Parser
	generator  *report.ReportGenerator
	aggregator *batch.BatchAggregator
}

// Option customises container construction.
type Option func(*Container)

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	variant, err := cfg.Variant()
	if err != nil {
		return nil, fmt.Errorf("invalid parser configuration: %w", err)
	}

	c := &Container{config: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = config.NewLogger(cfg)
	}

	c.recorder = metrics.NewPrometheusRecorder()
	c.parser = stmtparser.NewParser(
		stmtparser.WithVariant(variant),
		stmtparser.WithLogger(c.logger),
		stmtparser.WithObserver(c.recorder),
	)
	c.generator = report.NewReportGenerator(c.logger, cfg.Delimiter())
	c.aggregator = batch.NewBatchAggregator(c.logger)

	c.logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldVariant, Value: string(variant)},
		logging.Field{Key: logging.FieldOutput, Value: cfg.Output.Format})

	return c, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetParser returns the statement parser.
func (c *Container) GetParser() *stmtparser.Parser {
	return c.parser
}

// GetReportGenerator returns the output generator.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.generator
}

// GetRecorder returns the metrics recorder the parser reports to.
func (c *Container) GetRecorder() *metrics.PrometheusRecorder {
	return c.recorder
}

// GetAggregator returns the batch aggregator.
func (c *Container) GetAggregator() *batch.BatchAggregator {
	return c.aggregator
}

// NewProcessor builds a batch processor. workers and format override the
// configuration when set.
func (c *Container) NewProcessor(workers int, format report.Format) *batch.Processor {
	if workers <= 0 {
		workers = c.config.Batch.Workers
	}
	if format == "" {
		format = c.config.OutputFormat()
	}
	return batch.NewProcessor(c.parser, c.generator, c.recorder, c.logger, workers, format)
}

// Close flushes metrics to the configured textfile, if any.
func (c *Container) Close() error {
	if c.config.Metrics.Textfile == "" {
		return nil
	}
	if err := c.recorder.WriteTextfile(c.config.Metrics.Textfile); err != nil {
		return err
	}
	c.logger.Debug("Metrics written", logging.Field{Key: logging.FieldFile, Value: c.config.Metrics.Textfile})
	return nil
}
