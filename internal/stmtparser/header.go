package stmtparser

import (
	"regexp"
	"strings"

	"fjacquet/bank-insights/internal/currencyutils"
	"fjacquet/bank-insights/internal/models"
	"fjacquet/bank-insights/internal/textutils"

	"github.com/shopspring/decimal"
)

// amountEnd stops a header amount from matching the front of a longer figure.
const amountEnd = `(?:[^\d]|$)`

var (
	moneyInPattern       = regexp.MustCompile(`(?i)Money In:\s*£?\s*(` + currencyutils.HeaderAmountPattern + `)` + amountEnd)
	moneyOutPattern      = regexp.MustCompile(`(?i)Money Out:\s*£?\s*(` + currencyutils.HeaderAmountPattern + `)` + amountEnd)
	balancePattern       = regexp.MustCompile(`(?i)Balance on .*?:\s*£?\s*(` + currencyutils.HeaderAmountPattern + `)` + amountEnd)
	accountNumberPattern = regexp.MustCompile(`(?i)Account Number:\s*(.*)`)
)

// ExtractHeader fills a StatementHeader from the lines before the transaction
// table. Scanning stops at the table header if one is present. Each line is
// tested against the rules in precedence order and the first rule that
// applies consumes it.
func ExtractHeader(lines []string) models.StatementHeader {
	header := models.NewStatementHeader()

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if IsTableHeader(line) {
			break
		}

		switch {
		case textutils.HasPrefixFold(line, "Name:"):
			header.Name = textutils.ValueAfterColon(line)
		case textutils.HasPrefixFold(line, "Address:"):
			if value := textutils.ValueAfterColon(line); value != "" {
				header.Address = append(header.Address, value)
			}
		case isUnlabelledAddress(line):
			header.Address = append(header.Address, line)
		case textutils.HasPrefixFold(line, "Sort Code:"):
			header.SortCode = textutils.ValueAfterColon(line)
		case textutils.ContainsFold(line, "Account Number:"):
			header.AccountNumber = submatch(accountNumberPattern, line)
		case textutils.HasPrefixFold(line, "IBAN:"):
			header.IBAN = textutils.ValueAfterColon(line)
		case textutils.HasPrefixFold(line, "Statement Period:"):
			header.StatementPeriod = textutils.ValueAfterColon(line)
		case textutils.HasPrefixFold(line, "Money In:"):
			header.MoneyIn = amountOrDefault(moneyInPattern, line, header.MoneyIn)
			header.StartingBalance = amountOrDefault(balancePattern, line, header.StartingBalance)
		case textutils.HasPrefixFold(line, "Money Out:"):
			header.MoneyOut = amountOrDefault(moneyOutPattern, line, header.MoneyOut)
			header.EndingBalance = amountOrDefault(balancePattern, line, header.EndingBalance)
		}
	}

	return header
}

// isUnlabelledAddress is the fallback for address lines printed without a label.
func isUnlabelledAddress(line string) bool {
	if textutils.ContainsFold(line, "address") {
		return false
	}
	return textutils.ContainsFold(line, "road") || textutils.ContainsFold(line, "london")
}

// submatch returns the trimmed first capture of pattern in line, or "".
func submatch(pattern *regexp.Regexp, line string) string {
	m := pattern.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// amountOrDefault returns the first amount captured by pattern, or current
// when the line has none or it does not convert.
func amountOrDefault(pattern *regexp.Regexp, line string, current decimal.Decimal) decimal.Decimal {
	m := pattern.FindStringSubmatch(line)
	if m == nil {
		return current
	}
	amount, err := currencyutils.ParseHeaderAmount(m[1])
	if err != nil {
		return current
	}
	return amount
}
