package stmtparser

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/bank-insights/internal/currencyutils"
	"fjacquet/bank-insights/internal/models"
	"fjacquet/bank-insights/internal/parsererror"
	"fjacquet/bank-insights/internal/textutils"
)

// Variant names a transaction-table grammar.
type Variant string

const (
	// VariantAuto picks a grammar per statement from the table lines.
	VariantAuto Variant = "auto"
	// VariantCommaless is the single-amount grammar with plain amounts
	// ("1250.00") and 2-4 letter type codes.
	VariantCommaless Variant = "commaless"
	// VariantCommaSeparated is the single-amount grammar with comma grouped
	// amounts ("1,250.00") and 2-3 letter type codes.
	VariantCommaSeparated Variant = "comma"
)

// minRowFields is the fewest tokens a row can have: day, month+year,
// one description word, type code and balance.
const minRowFields = 5

const datePattern = `\d{1,2}\s[A-Za-z]{3}\d{2}`

// ParseVariant maps a configuration name to a Variant.
func ParseVariant(name string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(name))); v {
	case VariantAuto, VariantCommaless, VariantCommaSeparated:
		return v, nil
	case "":
		return VariantAuto, nil
	default:
		return "", fmt.Errorf("%w: %q", parsererror.ErrUnknownVariant, name)
	}
}

// Grammar is one compiled row grammar:
//
//	<date> <description> <type> [<in-amount>] [<out-amount>] <balance>
//
// The description is separated from the type code by at least two spaces.
type Grammar struct {
	variant   Variant
	tokenizer currencyutils.AmountTokenizer
	row       *regexp.Regexp
}

// NewGrammar compiles a grammar from a type-code pattern and an amount policy.
func NewGrammar(variant Variant, typePattern string, tokenizer currencyutils.AmountTokenizer) *Grammar {
	amount := tokenizer.TokenPattern()
	row := regexp.MustCompile(
		`^(` + datePattern + `)\s+(.+?)\s{2,}(` + typePattern + `)` +
			`(?:\s+(` + amount + `))?(?:\s+(` + amount + `))?\s+(` + amount + `)$`,
	)
	return &Grammar{variant: variant, tokenizer: tokenizer, row: row}
}

var grammars = map[Variant]*Grammar{
	VariantCommaless:      NewGrammar(VariantCommaless, `[A-Z]{2,4}`, currencyutils.PlainTokenizer{}),
	VariantCommaSeparated: NewGrammar(VariantCommaSeparated, `[A-Z]{2,3}`, currencyutils.CommaTokenizer{}),
}

// GrammarFor returns the compiled grammar for a concrete variant.
func GrammarFor(v Variant) (*Grammar, error) {
	g, ok := grammars[v]
	if !ok {
		return nil, fmt.Errorf("%w: %q has no grammar", parsererror.ErrUnknownVariant, v)
	}
	return g, nil
}

// Variant returns the variant this grammar implements.
func (g *Grammar) Variant() Variant {
	return g.variant
}

// MatchLine parses one table line. The second result is false when the line
// is not a transaction row; nothing is ever partially filled in that case.
func (g *Grammar) MatchLine(line string) (models.TransactionRecord, bool) {
	line = strings.TrimSpace(line)
	if textutils.FieldCount(line) < minRowFields {
		return models.TransactionRecord{}, false
	}

	m := g.row.FindStringSubmatch(line)
	if m == nil {
		return models.TransactionRecord{}, false
	}

	credit, err := currencyutils.ParseOptional(g.tokenizer, m[4])
	if err != nil {
		return models.TransactionRecord{}, false
	}
	debit, err := currencyutils.ParseOptional(g.tokenizer, m[5])
	if err != nil {
		return models.TransactionRecord{}, false
	}
	balance, err := g.tokenizer.Parse(m[6])
	if err != nil {
		return models.TransactionRecord{}, false
	}

	// single-amount statements never carry money in and money out on one row
	if credit.IsPositive() && debit.IsPositive() {
		return models.TransactionRecord{}, false
	}

	txType := strings.TrimSpace(m[3])
	if txType == "" {
		txType = models.UnknownType
	}

	return models.TransactionRecord{
		Date:        textutils.CollapseSpaces(m[1]),
		Description: textutils.CollapseSpaces(m[2]),
		Type:        txType,
		Credit:      credit,
		Debit:       debit,
		Balance:     balance,
	}, true
}

// ParseTable matches every line of the table zone in order. It returns the
// recognised rows and the indexes of the lines that were skipped.
func (g *Grammar) ParseTable(lines []string) ([]models.TransactionRecord, []int) {
	records := make([]models.TransactionRecord, 0, len(lines))
	var skipped []int
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		record, ok := g.MatchLine(line)
		if !ok {
			skipped = append(skipped, i)
			continue
		}
		records = append(records, record)
	}
	return records, skipped
}
