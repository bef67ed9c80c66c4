// Package parse implements the parse command.
package parse

import (
	"fmt"

	"fjacquet/bank-insights/cmd/common"
	"fjacquet/bank-insights/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse one statement text file",
	Long: `Parse the text extracted from one bank statement into its account header
and transaction rows.

The result is written as JSON by default; --format yaml and --format csv are
also available. CSV output carries the transaction rows only.

Example:
  bank-insights parse -i statement.txt -o statement.json
  pdftotext -layout statement.pdf - | bank-insights parse -f yaml`,
	RunE: parseFunc,
}

func parseFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}

	_, err := common.ProcessFile(c, root.SharedFlags.Input, root.SharedFlags.Output, c.GetConfig().OutputFormat())
	return err
}
