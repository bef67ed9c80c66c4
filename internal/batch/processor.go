package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"fjacquet/bank-insights/internal/common"
	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/metrics"
	"fjacquet/bank-insights/internal/parsererror"
	"fjacquet/bank-insights/internal/report"
	"fjacquet/bank-insights/internal/stmtparser"

	"golang.org/x/sync/errgroup"
)

// FileResult is the outcome of one input file.
type FileResult struct {
	File         string
	Output       string
	Transactions int
	Err          error
}

// Result summarises a batch run.
type Result struct {
	Processed  int
	Failed     int
	Files      []FileResult
	Statements []Statement
}

// Processor parses every statement file in a directory with a bounded pool
// of workers and writes one output file per input.
type Processor struct {
	parser    *stmtparser.Parser
	generator *report.ReportGenerator
	recorder  metrics.Recorder
	logger    logging.Logger
	workers   int
	format    report.Format
}

// NewProcessor creates a Processor. A nil recorder disables metrics.
func NewProcessor(
	parser *stmtparser.Parser,
	generator *report.ReportGenerator,
	recorder metrics.Recorder,
	logger logging.Logger,
	workers int,
	format report.Format,
) *Processor {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		parser:    parser,
		generator: generator,
		recorder:  recorder,
		logger:    logger,
		workers:   workers,
		format:    format,
	}
}

// ListStatementFiles returns the statement text files directly inside dir, sorted.
func ListStatementFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !common.IsStatementFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Run processes every statement file in inputDir, writing results to
// outputDir. A file that fails is counted and logged; only cancellation or
// an unreadable input directory stop the run.
func (p *Processor) Run(ctx context.Context, inputDir, outputDir string) (*Result, error) {
	files, err := ListStatementFiles(inputDir)
	if err != nil {
		return nil, err
	}

	p.logger.Info("Starting batch run",
		logging.Field{Key: logging.FieldCount, Value: len(files)},
		logging.Field{Key: logging.FieldWorkers, Value: p.workers})

	results := make([]FileResult, len(files))
	statements := make([]Statement, len(files))
	var mu sync.Mutex
	processed, failed := 0, 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			output := common.OutputPath(file, outputDir, p.format.Extension())
			stmt, count, err := p.processFile(file, output)
			results[i] = FileResult{File: file, Output: output, Transactions: count, Err: err}
			statements[i] = stmt

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				p.logger.WithError(err).Warn("Failed to process file",
					logging.Field{Key: logging.FieldFile, Value: file})
				return nil
			}
			processed++
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch run interrupted: %w", err)
	}

	result := &Result{Processed: processed, Failed: failed, Files: results}
	for _, stmt := range statements {
		if stmt.Result != nil {
			result.Statements = append(result.Statements, stmt)
		}
	}

	p.logger.Info("Batch run complete",
		logging.Field{Key: logging.FieldCount, Value: processed},
		logging.Field{Key: "failed", Value: failed})

	return result, nil
}

func (p *Processor) processFile(file, output string) (Statement, int, error) {
	in, err := os.Open(file) // #nosec G304 -- files come from the listed input directory
	if err != nil {
		return Statement{}, 0, fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer func() {
		if err := in.Close(); err != nil {
			p.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	parsed, err := p.parser.Parse(in)
	if err != nil {
		p.recorder.ParseFailed(string(p.parser.Variant()))
		var formatErr *parsererror.InvalidFormatError
		if errors.As(err, &formatErr) {
			formatErr.FilePath = file
		}
		return Statement{}, 0, fmt.Errorf("failed to parse %s: %w", file, err)
	}

	out, err := common.CreateOutput(output)
	if err != nil {
		return Statement{}, 0, err
	}
	if err := p.generator.GenerateResult(out, parsed, p.format); err != nil {
		_ = out.Close()
		return Statement{}, 0, err
	}
	if err := out.Close(); err != nil {
		return Statement{}, 0, fmt.Errorf("failed to close %s: %w", output, err)
	}

	return Statement{File: file, Result: parsed}, len(parsed.Transactions), nil
}
