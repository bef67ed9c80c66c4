// Package stmtparser recovers a structured statement (account header plus
// transaction rows) from text extracted from a bank statement.
//
// The text is split once at the transaction table header. The lines before it
// feed the header extractor and the lines after it feed the row grammar; the
// two passes share no state. Lines that fit neither are skipped, never errors.
package stmtparser

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"
	"fjacquet/bank-insights/internal/parsererror"
	"fjacquet/bank-insights/internal/textutils"
)

// Stats describes what a single parse did with its input.
type Stats struct {
	Variant     Variant
	TableFound  bool
	HeaderLines int
	TableLines  int
	Matched     int
	Skipped     int
	Duration    time.Duration
}

// Observer receives the stats of every completed parse.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveParse(stats Stats)
}

// Parser turns statement text into a ParseResult. A Parser holds only
// configuration, so one value may be shared by concurrent callers.
type Parser struct {
	variant  Variant
	logger   logging.Logger
	observer Observer
}

// Option configures a Parser.
type Option func(*Parser)

// WithVariant fixes the table grammar. VariantAuto detects it per statement.
func WithVariant(v Variant) Option {
	return func(p *Parser) {
		p.variant = v
	}
}

// WithLogger sets the logger. Nil keeps the default.
func WithLogger(logger logging.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithObserver registers an observer for parse stats.
func WithObserver(o Observer) Option {
	return func(p *Parser) {
		p.observer = o
	}
}

// NewParser creates a Parser. Without options it auto-detects the grammar
// and logs through the default logger.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		variant: VariantAuto,
		logger:  logging.GetLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.WithField(logging.FieldParser, "statement")
	return p
}

// Variant returns the configured grammar variant.
func (p *Parser) Variant() Variant {
	return p.variant
}

// Parse reads the whole statement text from r and parses it.
// A nil reader yields parsererror.ErrNoInput; content that is clearly not
// text (a raw PDF, binary data) yields a *parsererror.InvalidFormatError.
func (p *Parser) Parse(r io.Reader) (*models.ParseResult, error) {
	if r == nil {
		return nil, parsererror.ErrNoInput
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &parsererror.ParseError{
			Parser: "statement",
			Field:  "input",
			Value:  "reader",
			Err:    err,
		}
	}

	if err := checkPlainText(data); err != nil {
		return nil, err
	}

	return p.ParseText(string(data)), nil
}

// ParseText parses statement text that is already in memory.
func (p *Parser) ParseText(text string) *models.ParseResult {
	return p.ParseLines(textutils.SplitLines(text))
}

// ParseLines parses an ordered sequence of trimmed, non-blank lines. Skipped
// table rows are logged with their index in lines.
func (p *Parser) ParseLines(lines []string) *models.ParseResult {
	start := time.Now()

	headerZone, tableZone, found := SplitZones(lines)

	variant := p.variant
	if variant == VariantAuto {
		variant = DetectVariant(tableZone)
	}
	grammar, err := GrammarFor(variant)
	if err != nil {
		p.logger.WithError(err).Warn("Unknown grammar variant, using commaless",
			logging.Field{Key: logging.FieldVariant, Value: string(variant)})
		variant = VariantCommaless
		grammar = grammars[VariantCommaless]
	}

	result := models.NewParseResult()
	result.Header = ExtractHeader(headerZone)

	records, skipped := grammar.ParseTable(tableZone)
	result.Transactions = records

	if !found {
		p.logger.Debug("No transaction table header found",
			logging.Field{Key: logging.FieldCount, Value: len(lines)})
	}
	for _, idx := range skipped {
		// index into lines: the header zone, then the table header line
		p.logger.Debug("Skipped table line",
			logging.Field{Key: logging.FieldLineIndex, Value: len(headerZone) + 1 + idx},
			logging.Field{Key: logging.FieldZone, Value: "table"})
	}

	stats := Stats{
		Variant:     variant,
		TableFound:  found,
		HeaderLines: len(headerZone),
		TableLines:  len(tableZone),
		Matched:     len(records),
		Skipped:     len(skipped),
		Duration:    time.Since(start),
	}

	p.logger.Info("Parsed statement",
		logging.Field{Key: logging.FieldVariant, Value: string(variant)},
		logging.Field{Key: logging.FieldCount, Value: stats.Matched},
		logging.Field{Key: logging.FieldSkipped, Value: stats.Skipped})

	if p.observer != nil {
		p.observer.ObserveParse(stats)
	}

	return result
}

// checkPlainText rejects input that was never converted to text.
func checkPlainText(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	snippet := string(trimmed[:min(len(trimmed), 16)])

	if bytes.HasPrefix(trimmed, []byte("%PDF-")) {
		return &parsererror.InvalidFormatError{
			ExpectedFormat:       "plain text",
			ActualContentSnippet: snippet,
			Msg:                  "input is a PDF document, extract its text first",
		}
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return &parsererror.InvalidFormatError{
			ExpectedFormat: "plain text",
			Msg:            fmt.Sprintf("input contains binary data (%d bytes)", len(data)),
		}
	}
	return nil
}
