// Package analysis aggregates and cross-checks parsed statements.
package analysis

import (
	"sort"

	"fjacquet/bank-insights/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultTopN is how many debit groups a summary keeps.
const DefaultTopN = 5

// DebitGroup is the summed debit of all rows sharing a description.
type DebitGroup struct {
	Description string          `json:"description" yaml:"description" csv:"Description"`
	Total       decimal.Decimal `json:"total" yaml:"total" csv:"Total"`
	Count       int             `json:"count" yaml:"count" csv:"Count"`
}

// Summary is the aggregate view of one statement's transactions.
type Summary struct {
	TransactionCount int             `json:"transaction_count" yaml:"transaction_count"`
	CreditCount      int             `json:"credit_count" yaml:"credit_count"`
	DebitCount       int             `json:"debit_count" yaml:"debit_count"`
	TotalCredit      decimal.Decimal `json:"total_credit" yaml:"total_credit"`
	TotalDebit       decimal.Decimal `json:"total_debit" yaml:"total_debit"`
	NetFlow          decimal.Decimal `json:"net_flow" yaml:"net_flow"`
	FirstDate        string          `json:"first_date,omitempty" yaml:"first_date,omitempty"`
	LastDate         string          `json:"last_date,omitempty" yaml:"last_date,omitempty"`
	TopDebits        []DebitGroup    `json:"top_debits" yaml:"top_debits"`
}

// Summarize totals the transactions and keeps the DefaultTopN largest
// debit groups.
func Summarize(transactions []models.TransactionRecord) Summary {
	s := Summary{
		TransactionCount: len(transactions),
		TotalCredit:      decimal.Zero,
		TotalDebit:       decimal.Zero,
		TopDebits:        TopDebits(transactions, DefaultTopN),
	}

	s.NetFlow = decimal.Zero
	for _, tx := range transactions {
		s.TotalCredit = s.TotalCredit.Add(tx.Credit)
		s.TotalDebit = s.TotalDebit.Add(tx.Debit)
		s.NetFlow = s.NetFlow.Add(tx.Net())
		if tx.IsCredit() {
			s.CreditCount++
		}
		if tx.IsDebit() {
			s.DebitCount++
		}
	}

	if len(transactions) > 0 {
		s.FirstDate = transactions[0].Date
		s.LastDate = transactions[len(transactions)-1].Date
	}
	return s
}

// TopDebits groups debit rows by description and returns the n groups with
// the largest totals. Equal totals keep the order in which their description
// first appeared. A non-positive n returns every group.
func TopDebits(transactions []models.TransactionRecord, n int) []DebitGroup {
	index := make(map[string]int)
	groups := make([]DebitGroup, 0)

	for _, tx := range transactions {
		if !tx.IsDebit() {
			continue
		}
		i, ok := index[tx.Description]
		if !ok {
			i = len(groups)
			index[tx.Description] = i
			groups = append(groups, DebitGroup{Description: tx.Description, Total: decimal.Zero})
		}
		groups[i].Total = groups[i].Total.Add(tx.Debit)
		groups[i].Count++
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Total.GreaterThan(groups[b].Total)
	})

	if n > 0 && len(groups) > n {
		groups = groups[:n]
	}
	return groups
}
