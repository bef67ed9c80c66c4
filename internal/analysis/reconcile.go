package analysis

import (
	"fmt"

	"fjacquet/bank-insights/internal/models"

	"github.com/shopspring/decimal"
)

// Discrepancy kinds.
const (
	KindRowBalance    = "row_balance"
	KindMoneyIn       = "money_in"
	KindMoneyOut      = "money_out"
	KindEndingBalance = "ending_balance"
)

// Discrepancy is one place where the statement does not add up.
// Row is the zero-based transaction index, or -1 for header checks.
type Discrepancy struct {
	Kind     string          `json:"kind" yaml:"kind"`
	Row      int             `json:"row" yaml:"row"`
	Expected decimal.Decimal `json:"expected" yaml:"expected"`
	Actual   decimal.Decimal `json:"actual" yaml:"actual"`
}

func (d Discrepancy) String() string {
	if d.Row >= 0 {
		return fmt.Sprintf("%s at row %d: expected %s, got %s", d.Kind, d.Row, d.Expected.StringFixed(2), d.Actual.StringFixed(2))
	}
	return fmt.Sprintf("%s: expected %s, got %s", d.Kind, d.Expected.StringFixed(2), d.Actual.StringFixed(2))
}

// Reconciliation reports whether a statement is internally consistent.
type Reconciliation struct {
	Balanced      bool          `json:"balanced" yaml:"balanced"`
	RowsChecked   int           `json:"rows_checked" yaml:"rows_checked"`
	Discrepancies []Discrepancy `json:"discrepancies" yaml:"discrepancies"`
}

// Reconcile checks the running balance of every row against the previous
// balance plus credit minus debit, and the header totals against the rows.
// The first row is checked only when the header carries a starting balance.
// Header totals that are zero are treated as absent and not checked.
func Reconcile(result *models.ParseResult) Reconciliation {
	rec := Reconciliation{Discrepancies: []Discrepancy{}}
	if result == nil {
		rec.Balanced = true
		return rec
	}

	header := result.Header
	txs := result.Transactions

	prev := header.StartingBalance
	havePrev := !header.StartingBalance.IsZero()
	for i, tx := range txs {
		if havePrev {
			rec.RowsChecked++
			expected := prev.Add(tx.Net())
			if !expected.Equal(tx.Balance) {
				rec.Discrepancies = append(rec.Discrepancies, Discrepancy{
					Kind: KindRowBalance, Row: i, Expected: expected, Actual: tx.Balance,
				})
			}
		}
		prev = tx.Balance
		havePrev = true
	}

	summary := Summarize(txs)
	rec.check(KindMoneyIn, header.MoneyIn, summary.TotalCredit)
	rec.check(KindMoneyOut, header.MoneyOut, summary.TotalDebit)
	if len(txs) > 0 {
		rec.check(KindEndingBalance, header.EndingBalance, txs[len(txs)-1].Balance)
	}

	rec.Balanced = len(rec.Discrepancies) == 0
	return rec
}

func (r *Reconciliation) check(kind string, expected, actual decimal.Decimal) {
	if expected.IsZero() || expected.Equal(actual) {
		return
	}
	r.Discrepancies = append(r.Discrepancies, Discrepancy{Kind: kind, Row: -1, Expected: expected, Actual: actual})
}
