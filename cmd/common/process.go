// Package common contains shared functionality for command handlers
package common

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/bank-insights/internal/common"
	"fjacquet/bank-insights/internal/container"
	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"
	"fjacquet/bank-insights/internal/parsererror"
	"fjacquet/bank-insights/internal/report"
)

// OpenInput opens inputFile, or stdin for "" and "-".
func OpenInput(inputFile string) (io.ReadCloser, error) {
	if inputFile == "" || inputFile == common.StdoutPath {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(inputFile) // #nosec G304 -- input path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("error opening input file: %w", err)
	}
	return f, nil
}

// ParseFile parses one statement text file with the container's parser.
func ParseFile(c *container.Container, inputFile string) (*models.ParseResult, error) {
	logger := c.GetLogger().WithField(logging.FieldFile, inputFile)

	in, err := OpenInput(inputFile)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := in.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	result, err := c.GetParser().Parse(in)
	if err != nil {
		var formatErr *parsererror.InvalidFormatError
		if errors.As(err, &formatErr) {
			formatErr.FilePath = inputFile
		}
		c.GetRecorder().ParseFailed(string(c.GetParser().Variant()))
		return nil, err
	}
	return result, nil
}

// LoadResult returns the parse result for inputFile. A .csv file is read as
// a transaction export written earlier, with an empty header.
func LoadResult(c *container.Container, inputFile string) (*models.ParseResult, error) {
	if strings.EqualFold(filepath.Ext(inputFile), ".csv") {
		rows, err := common.ReadTransactionsCSV(inputFile, c.GetConfig().Delimiter(), c.GetLogger())
		if err != nil {
			return nil, err
		}
		result := models.NewParseResult()
		result.Transactions = rows
		return result, nil
	}
	return ParseFile(c, inputFile)
}

// WriteOutput creates outputFile and hands it to write.
func WriteOutput(outputFile string, write func(io.Writer) error) error {
	out, err := common.CreateOutput(outputFile)
	if err != nil {
		return err
	}
	if err := write(out); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// ProcessFile parses inputFile and writes the result to outputFile.
func ProcessFile(c *container.Container, inputFile, outputFile string, format report.Format) (*models.ParseResult, error) {
	result, err := ParseFile(c, inputFile)
	if err != nil {
		return nil, err
	}

	err = WriteOutput(outputFile, func(w io.Writer) error {
		return c.GetReportGenerator().GenerateResult(w, result, format)
	})
	if err != nil {
		return nil, fmt.Errorf("error writing output: %w", err)
	}

	c.GetLogger().Info("Conversion completed successfully!",
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: logging.FieldOutput, Value: outputFile})
	return result, nil
}
