package stmtparser

import (
	"strings"

	"fjacquet/bank-insights/internal/currencyutils"
)

// IsTableHeader reports whether line is the column header row of the
// transaction table: it starts with "Date" and mentions "Description".
func IsTableHeader(line string) bool {
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "Date") && strings.Contains(line, "Description")
}

// FindTableHeader returns the index of the first table header line, or -1
// when the text has no transaction table.
func FindTableHeader(lines []string) int {
	for i, line := range lines {
		if IsTableHeader(line) {
			return i
		}
	}
	return -1
}

// SplitZones cuts lines at the table header. The header line itself belongs
// to neither zone. Without a table header every line is in the header zone.
func SplitZones(lines []string) (headerZone, tableZone []string, found bool) {
	split := FindTableHeader(lines)
	if split < 0 {
		return lines, nil, false
	}
	return lines[:split], lines[split+1:], true
}

// DetectVariant chooses the grammar that recognises more of the table zone
// exclusively. On a tie, comma grouped figures anywhere in the zone select
// VariantCommaSeparated; otherwise, including an empty table, VariantCommaless.
func DetectVariant(tableZone []string) Variant {
	plain := grammars[VariantCommaless]
	comma := grammars[VariantCommaSeparated]

	var plainOnly, commaOnly int
	grouped := false
	for _, line := range tableZone {
		grouped = grouped || currencyutils.HasGroupedAmount(line)
		_, okPlain := plain.MatchLine(line)
		_, okComma := comma.MatchLine(line)
		switch {
		case okPlain && !okComma:
			plainOnly++
		case okComma && !okPlain:
			commaOnly++
		}
	}

	if commaOnly > plainOnly || (commaOnly == plainOnly && grouped) {
		return VariantCommaSeparated
	}
	return VariantCommaless
}
