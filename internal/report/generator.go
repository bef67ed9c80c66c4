// Package report renders parse results and statement summaries as JSON, YAML or CSV.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fjacquet/bank-insights/internal/analysis"
	"fjacquet/bank-insights/internal/common"
	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// ParseFormat maps a configuration or flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatCSV:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", s)
	}
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	return string(f)
}

// StatementReport is the output of the summary command.
type StatementReport struct {
	Source         string                  `json:"source,omitempty" yaml:"source,omitempty"`
	Header         models.StatementHeader  `json:"header" yaml:"header"`
	Summary        analysis.Summary        `json:"summary" yaml:"summary"`
	Reconciliation analysis.Reconciliation `json:"reconciliation" yaml:"reconciliation"`
}

// NewStatementReport summarises and reconciles a parse result.
func NewStatementReport(source string, result *models.ParseResult) *StatementReport {
	if result == nil {
		result = models.NewParseResult()
	}
	return &StatementReport{
		Source:         source,
		Header:         result.Header,
		Summary:        analysis.Summarize(result.Transactions),
		Reconciliation: analysis.Reconcile(result),
	}
}

// ReportGenerator writes results in a chosen format.
type ReportGenerator struct {
	logger    logging.Logger
	delimiter rune
}

// NewReportGenerator creates a generator. delimiter is used for CSV output.
func NewReportGenerator(logger logging.Logger, delimiter rune) *ReportGenerator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &ReportGenerator{
		logger:    logger.WithField("component", "ReportGenerator"),
		delimiter: delimiter,
	}
}

// GenerateResult writes a parse result. CSV output carries the transaction
// rows only, since the header does not fit a tabular layout.
func (g *ReportGenerator) GenerateResult(w io.Writer, result *models.ParseResult, format Format) error {
	switch format {
	case FormatJSON:
		return g.writeJSON(w, result)
	case FormatYAML:
		return g.writeYAML(w, result)
	case FormatCSV:
		if err := common.WriteTransactionsCSV(w, result.Transactions, g.delimiter); err != nil {
			g.logger.WithError(err).Error("Failed to write CSV report")
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

// GenerateSummary writes a statement report. CSV output carries the top
// debit groups only.
func (g *ReportGenerator) GenerateSummary(w io.Writer, report *StatementReport, format Format) error {
	switch format {
	case FormatJSON:
		return g.writeJSON(w, report)
	case FormatYAML:
		return g.writeYAML(w, report)
	case FormatCSV:
		groups := report.Summary.TopDebits
		if err := common.WriteCSV(w, &groups, g.delimiter); err != nil {
			g.logger.WithError(err).Error("Failed to write CSV report")
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return nil
}

func (g *ReportGenerator) writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush YAML report: %w", err)
	}
	return nil
}
