// Package currencyutils provides amount tokenizers and decimal helpers for statement text.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountTokenizer is the policy that decides what an amount column looks like
// and how a matched token is converted to a decimal.
type AmountTokenizer interface {
	// Name identifies the policy in logs and metrics.
	Name() string
	// TokenPattern is the regular expression fragment (no capture groups)
	// used to carve amount columns out of a line.
	TokenPattern() string
	// Parse converts a token carved out by TokenPattern. It fails on tokens
	// that have the right characters but not the right shape.
	Parse(token string) (decimal.Decimal, error)
}

var (
	plainAmountShape   = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	groupedAmountShape = regexp.MustCompile(`^(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?$`)
	groupedSeparators  = regexp.MustCompile(`\d,\d{3}`)
)

// PlainTokenizer reads amounts written with digits and a decimal point only.
type PlainTokenizer struct{}

func (PlainTokenizer) Name() string { return "commaless" }

func (PlainTokenizer) TokenPattern() string { return `[\d.]+` }

func (PlainTokenizer) Parse(token string) (decimal.Decimal, error) {
	if !plainAmountShape.MatchString(token) {
		return decimal.Zero, fmt.Errorf("malformed amount '%s'", token)
	}
	return decimal.NewFromString(token)
}

// CommaTokenizer reads amounts that may carry comma thousands separators.
type CommaTokenizer struct{}

func (CommaTokenizer) Name() string { return "comma" }

func (CommaTokenizer) TokenPattern() string { return `[\d,.]+` }

func (CommaTokenizer) Parse(token string) (decimal.Decimal, error) {
	if !groupedAmountShape.MatchString(token) {
		return decimal.Zero, fmt.Errorf("malformed amount '%s'", token)
	}
	return decimal.NewFromString(strings.ReplaceAll(token, ",", ""))
}

// ParseOptional converts an optional amount column. An empty token means the
// column was blank on that row and yields zero.
func ParseOptional(t AmountTokenizer, token string) (decimal.Decimal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return decimal.Zero, nil
	}
	return t.Parse(token)
}

// HasGroupedAmount reports whether s contains a comma-grouped figure such as "1,250".
func HasGroupedAmount(s string) bool {
	return groupedSeparators.MatchString(s)
}

// HeaderAmountPattern matches a header amount: digits with optional thousands
// separators and exactly two decimal digits.
const HeaderAmountPattern = `(?:\d{1,3}(?:,\d{3})+|\d+)\.\d{2}`

// ParseHeaderAmount converts a token matched by HeaderAmountPattern.
func ParseHeaderAmount(token string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(token), ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", token, err)
	}
	return amount, nil
}

// FormatAmount formats a decimal amount with two decimal places and the currency symbol.
func FormatAmount(amount decimal.Decimal, currency string) string {
	formattedAmount := amount.StringFixed(2)

	if currency != "" {
		switch strings.ToUpper(currency) {
		case "GBP":
			return "£" + formattedAmount
		case "EUR":
			return "€" + formattedAmount
		case "USD":
			return "$" + formattedAmount
		default:
			return currency + " " + formattedAmount
		}
	}

	return formattedAmount
}
