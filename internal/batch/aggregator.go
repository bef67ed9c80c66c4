// Package batch provides functionality for batch processing and aggregation of statement files
package batch

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"fjacquet/bank-insights/internal/dateutils"
	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"
)

// UnknownAccount groups statements whose header names no account.
const UnknownAccount = "unknown"

// DateRange represents a date range with start and end dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s",
		dateutils.ToISODate(dr.Start),
		dateutils.ToISODate(dr.End))
}

// Merge combines this date range with another, returning the overall range
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	if dr.Start.IsZero() {
		start = other.Start
	} else if !other.Start.IsZero() && other.Start.Before(start) {
		start = other.Start
	}

	if dr.End.IsZero() {
		end = other.End
	} else if !other.End.IsZero() && other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}
}

// Statement is one parsed input file.
type Statement struct {
	File   string
	Result *models.ParseResult
}

// AccountGroup holds the statements that belong to the same account.
type AccountGroup struct {
	AccountID  string
	Statements []Statement
	DateRange  DateRange
}

// Files lists the source files of the group in order.
func (g AccountGroup) Files() []string {
	files := make([]string, len(g.Statements))
	for i, s := range g.Statements {
		files[i] = s.File
	}
	return files
}

// BatchAggregator consolidates parsed statements by account
type BatchAggregator struct {
	logger logging.Logger
}

// NewBatchAggregator creates a new BatchAggregator instance
func NewBatchAggregator(logger logging.Logger) *BatchAggregator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &BatchAggregator{
		logger: logger,
	}
}

var unsafeIDChars = regexp.MustCompile(`[^A-Za-z0-9]+`)

// AccountID derives a filesystem-safe account identifier from a header:
// sort code and account number when present, else the IBAN.
func AccountID(header models.StatementHeader) string {
	var id string
	switch {
	case header.AccountNumber != "":
		id = strings.TrimSpace(header.SortCode + " " + header.AccountNumber)
	case header.IBAN != "":
		id = header.IBAN
	default:
		return UnknownAccount
	}
	id = strings.Trim(unsafeIDChars.ReplaceAllString(id, "-"), "-")
	if id == "" {
		return UnknownAccount
	}
	return id
}

// GroupByAccount groups statements by account. Groups are sorted by account
// ID and statements within a group by their first transaction date.
func (ba *BatchAggregator) GroupByAccount(statements []Statement) []AccountGroup {
	accountGroups := make(map[string]*AccountGroup)

	for _, stmt := range statements {
		if stmt.Result == nil {
			continue
		}
		accountID := AccountID(stmt.Result.Header)

		ba.logger.Debug("File mapped to account",
			logging.Field{Key: logging.FieldFile, Value: filepath.Base(stmt.File)},
			logging.Field{Key: "account", Value: accountID})

		group, exists := accountGroups[accountID]
		if !exists {
			group = &AccountGroup{AccountID: accountID}
			accountGroups[accountID] = group
		}
		group.Statements = append(group.Statements, stmt)
		group.DateRange = group.DateRange.Merge(CalculateDateRange(stmt.Result.Transactions))
	}

	groups := make([]AccountGroup, 0, len(accountGroups))
	for _, group := range accountGroups {
		sort.SliceStable(group.Statements, func(i, j int) bool {
			return startOf(group.Statements[i]).Before(startOf(group.Statements[j]))
		})
		groups = append(groups, *group)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].AccountID < groups[j].AccountID
	})

	ba.logger.Info("Grouped statements into account groups",
		logging.Field{Key: "total_files", Value: len(statements)},
		logging.Field{Key: "account_groups", Value: len(groups)})

	return groups
}

func startOf(s Statement) time.Time {
	return CalculateDateRange(s.Result.Transactions).Start
}

// AggregateTransactions concatenates the transactions of a group in
// statement order. Potential duplicates from overlapping statements are
// logged but kept.
func (ba *BatchAggregator) AggregateTransactions(group AccountGroup) []models.TransactionRecord {
	allTransactions := make([]models.TransactionRecord, 0)
	sourceFiles := make([]string, 0, len(group.Statements))

	for _, stmt := range group.Statements {
		allTransactions = append(allTransactions, stmt.Result.Transactions...)
		sourceFiles = append(sourceFiles, filepath.Base(stmt.File))
	}

	ba.detectAndLogDuplicates(allTransactions, group.AccountID)

	ba.logger.Info("Aggregated transactions for account",
		logging.Field{Key: "total_transactions", Value: len(allTransactions)},
		logging.Field{Key: "account", Value: group.AccountID},
		logging.Field{Key: "source_files", Value: strings.Join(sourceFiles, ", ")})

	return allTransactions
}

// detectAndLogDuplicates logs rows that appear more than once.
func (ba *BatchAggregator) detectAndLogDuplicates(transactions []models.TransactionRecord, accountID string) int {
	duplicateCount := 0

	for i := 0; i < len(transactions)-1; i++ {
		for j := i + 1; j < len(transactions); j++ {
			if arePotentialDuplicates(transactions[i], transactions[j]) {
				duplicateCount++
				ba.logger.Warn("Potential duplicate transaction",
					logging.Field{Key: "account", Value: accountID},
					logging.Field{Key: "date", Value: transactions[i].Date},
					logging.Field{Key: "description", Value: transactions[i].Description})
				break
			}
		}
	}

	if duplicateCount > 0 {
		ba.logger.Warn("Found potential duplicate transactions",
			logging.Field{Key: logging.FieldCount, Value: duplicateCount},
			logging.Field{Key: "account", Value: accountID})
	}
	return duplicateCount
}

// arePotentialDuplicates reports whether two rows carry the same date,
// description, amounts and running balance. Two genuine purchases of the
// same amount on one day still differ in balance.
func arePotentialDuplicates(tx1, tx2 models.TransactionRecord) bool {
	return tx1.Date == tx2.Date &&
		strings.EqualFold(strings.TrimSpace(tx1.Description), strings.TrimSpace(tx2.Description)) &&
		tx1.Credit.Equal(tx2.Credit) &&
		tx1.Debit.Equal(tx2.Debit) &&
		tx1.Balance.Equal(tx2.Balance)
}

// GenerateOutputFilename creates a filename for the consolidated output
// Format: {account_id}_{start_date}_{end_date}.{ext}
func (ba *BatchAggregator) GenerateOutputFilename(accountID string, dateRange DateRange, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if s := dateRange.String(); s != "" {
		return fmt.Sprintf("%s_%s.%s", accountID, s, ext)
	}
	return fmt.Sprintf("%s.%s", accountID, ext)
}

// CalculateDateRange returns the span of the transaction dates that parse.
func CalculateDateRange(transactions []models.TransactionRecord) DateRange {
	var dr DateRange
	for _, tx := range transactions {
		date, err := dateutils.ParseStatementDate(tx.Date)
		if err != nil {
			continue
		}
		dr = dr.Merge(DateRange{Start: date, End: date})
	}
	return dr
}
