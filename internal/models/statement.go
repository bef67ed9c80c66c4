// Package models provides the data structures used throughout the application.
package models

import (
	"github.com/shopspring/decimal"
)

// UnknownType is the transaction type used when the bank code could not be determined.
const UnknownType = "UNK"

// StatementHeader is the account block that precedes the transaction table.
// Every field keeps its zero value when the statement does not carry it.
type StatementHeader struct {
	Name            string          `json:"name" yaml:"name"`
	Address         []string        `json:"address" yaml:"address"`
	SortCode        string          `json:"sort_code" yaml:"sort_code"`
	AccountNumber   string          `json:"account_number" yaml:"account_number"`
	IBAN            string          `json:"iban" yaml:"iban"`
	StatementPeriod string          `json:"statement_period" yaml:"statement_period"`
	MoneyIn         decimal.Decimal `json:"money_in" yaml:"money_in"`
	MoneyOut        decimal.Decimal `json:"money_out" yaml:"money_out"`
	StartingBalance decimal.Decimal `json:"starting_balance" yaml:"starting_balance"`
	EndingBalance   decimal.Decimal `json:"ending_balance" yaml:"ending_balance"`
}

// NewStatementHeader returns a header with every field at its default.
func NewStatementHeader() StatementHeader {
	return StatementHeader{
		Address:         []string{},
		MoneyIn:         decimal.Zero,
		MoneyOut:        decimal.Zero,
		StartingBalance: decimal.Zero,
		EndingBalance:   decimal.Zero,
	}
}

// TransactionRecord is one row of the transaction table.
type TransactionRecord struct {
	Date        string          `json:"date" yaml:"date" csv:"Date"`
	Description string          `json:"description" yaml:"description" csv:"Description"`
	Type        string          `json:"type" yaml:"type" csv:"Type"`
	Credit      decimal.Decimal `json:"credit" yaml:"credit" csv:"Credit"`
	Debit       decimal.Decimal `json:"debit" yaml:"debit" csv:"Debit"`
	Balance     decimal.Decimal `json:"balance" yaml:"balance" csv:"Balance"`
}

// IsCredit reports whether the row moved money into the account.
func (t TransactionRecord) IsCredit() bool {
	return t.Credit.IsPositive()
}

// IsDebit reports whether the row moved money out of the account.
func (t TransactionRecord) IsDebit() bool {
	return t.Debit.IsPositive()
}

// Net returns credit minus debit for the row.
func (t TransactionRecord) Net() decimal.Decimal {
	return t.Credit.Sub(t.Debit)
}

// ParseResult is the aggregate produced from one statement text.
// Transactions keep statement order.
type ParseResult struct {
	Header       StatementHeader     `json:"header" yaml:"header"`
	Transactions []TransactionRecord `json:"transactions" yaml:"transactions"`
}

// NewParseResult returns an empty result with a default header.
func NewParseResult() *ParseResult {
	return &ParseResult{
		Header:       NewStatementHeader(),
		Transactions: []TransactionRecord{},
	}
}
