// Package batch handles batch processing of files
package batch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"fjacquet/bank-insights/cmd/common"
	"fjacquet/bank-insights/cmd/root"
	"fjacquet/bank-insights/internal/batch"
	"fjacquet/bank-insights/internal/container"
	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"

	"github.com/spf13/cobra"
)

var (
	workers     int
	consolidate bool
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process statement files from a directory",
	Long: `Batch process statement files from an input directory and output them to another directory.

Every .txt file in the input directory is parsed independently by a pool of
workers and written to the output directory under the same name with the
extension of the output format. A file that fails is reported and counted
without stopping the others.

With --consolidate, statements for the same account (sort code and account
number, or IBAN) are also merged into one file per account.

Example:
  bank-insights batch -i statements/ -o parsed/ --workers 8 --consolidate`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of parallel workers (default from batch.workers)")
	Cmd.Flags().BoolVar(&consolidate, "consolidate", false, "Also write one consolidated file per account")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	logger := c.GetLogger()

	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	if inputDir == "" || outputDir == "" {
		return fmt.Errorf("input and output directories must be specified")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := c.NewProcessor(workers, "").Run(ctx, inputDir, outputDir)
	if err != nil {
		return fmt.Errorf("error during batch conversion: %w", err)
	}

	if consolidate {
		count, err := writeConsolidated(c, result.Statements, outputDir)
		if err != nil {
			return err
		}
		logger.Info(fmt.Sprintf("Batch processing completed. %d consolidated files created.", count))
	}

	if result.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", result.Failed, result.Failed+result.Processed)
	}
	return nil
}

// writeConsolidated writes one output per account. The header comes from the
// most recent statement of the account.
func writeConsolidated(c *container.Container, statements []batch.Statement, outputDir string) (int, error) {
	aggregator := c.GetAggregator()
	format := c.GetConfig().OutputFormat()
	count := 0

	for _, group := range aggregator.GroupByAccount(statements) {
		merged := models.NewParseResult()
		merged.Header = group.Statements[len(group.Statements)-1].Result.Header
		merged.Transactions = aggregator.AggregateTransactions(group)

		name := aggregator.GenerateOutputFilename(group.AccountID, group.DateRange, format.Extension())
		path := filepath.Join(outputDir, "consolidated", name)

		err := common.WriteOutput(path, func(w io.Writer) error {
			return c.GetReportGenerator().GenerateResult(w, merged, format)
		})
		if err != nil {
			return count, fmt.Errorf("failed to write consolidated file for %s: %w", group.AccountID, err)
		}

		c.GetLogger().Info("Wrote consolidated file",
			logging.Field{Key: logging.FieldOutput, Value: path},
			logging.Field{Key: logging.FieldCount, Value: len(merged.Transactions)})
		count++
	}
	return count, nil
}
