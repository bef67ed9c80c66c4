// Package dateutils converts the short dates printed on statements into calendar dates.
package dateutils

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/bank-insights/internal/textutils"
)

// Date layouts seen in statement tables.
const (
	// DateLayoutStatement is the "04 Sep19" form used in the transaction table.
	DateLayoutStatement = "2 Jan06"
	// DateLayoutStatementSpaced is the "04 Sep 19" form some extractors produce.
	DateLayoutStatementSpaced = "2 Jan 06"
	DateLayoutISO             = "2006-01-02"
)

var statementFormats = []string{
	DateLayoutStatement,
	DateLayoutStatementSpaced,
	"2 Jan 2006",
	DateLayoutISO,
}

// ParseStatementDate converts a statement date such as "04 Sep19" to a time.Time
// at midnight UTC. Month abbreviations are matched case-insensitively.
func ParseStatementDate(value string) (time.Time, error) {
	cleaned := normalizeMonth(textutils.CollapseSpaces(value))
	for _, layout := range statementFormats {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse statement date: %s", value)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// normalizeMonth title-cases a three-letter month so "04 SEP19" parses like "04 Sep19".
func normalizeMonth(s string) string {
	day, rest, ok := strings.Cut(s, " ")
	if !ok || len(rest) < 3 {
		return s
	}
	month := strings.ToUpper(rest[:1]) + strings.ToLower(rest[1:3])
	return day + " " + month + rest[3:]
}
