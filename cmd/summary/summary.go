// Package summary implements the summary command.
package summary

import (
	"fmt"
	"io"

	"fjacquet/bank-insights/cmd/common"
	"fjacquet/bank-insights/cmd/root"
	"fjacquet/bank-insights/internal/currencyutils"
	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/report"

	"github.com/spf13/cobra"
)

var currency string

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarise and reconcile one statement",
	Long: `Summarise one statement: total money in and out, net flow, the largest
debit groups by description, and a reconciliation of the running balance
and header totals against the transaction rows.

The input is either statement text or a CSV written by the parse command.

Example:
  bank-insights summary -i statement.txt
  bank-insights summary -i statement.csv -f yaml -o summary.yaml`,
	RunE: summaryFunc,
}

func init() {
	Cmd.Flags().StringVar(&currency, "currency", "GBP", "Currency used when logging amounts")
}

func summaryFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	logger := c.GetLogger()

	result, err := common.LoadResult(c, root.SharedFlags.Input)
	if err != nil {
		return err
	}

	rep := report.NewStatementReport(root.SharedFlags.Input, result)

	logger.Info("Statement summary",
		logging.Field{Key: logging.FieldCount, Value: rep.Summary.TransactionCount},
		logging.Field{Key: "money_in", Value: currencyutils.FormatAmount(rep.Summary.TotalCredit, currency)},
		logging.Field{Key: "money_out", Value: currencyutils.FormatAmount(rep.Summary.TotalDebit, currency)},
		logging.Field{Key: "net_flow", Value: currencyutils.FormatAmount(rep.Summary.NetFlow, currency)})

	for _, d := range rep.Reconciliation.Discrepancies {
		logger.Warn("Statement does not reconcile", logging.Field{Key: logging.FieldReason, Value: d.String()})
	}

	return common.WriteOutput(root.SharedFlags.Output, func(w io.Writer) error {
		return c.GetReportGenerator().GenerateSummary(w, rep, c.GetConfig().OutputFormat())
	})
}
