package currencyutils

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainTokenizer_Parse(t *testing.T) {
	tests := []struct {
		token    string
		expected string
		wantErr  bool
	}{
		{token: "300.00", expected: "300"},
		{token: "873.56", expected: "873.56"},
		{token: "12", expected: "12"},
		{token: "1.2.3", wantErr: true},
		{token: ".", wantErr: true},
		{token: "5.", wantErr: true},
		{token: "1,250.00", wantErr: true},
	}

	var tok PlainTokenizer
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := tok.Parse(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "got %s", got)
		})
	}
}

func TestCommaTokenizer_Parse(t *testing.T) {
	tests := []struct {
		token    string
		expected string
		wantErr  bool
	}{
		{token: "1,250.00", expected: "1250"},
		{token: "12,345,678.90", expected: "12345678.9"},
		{token: "999.99", expected: "999.99"},
		{token: "1250.00", expected: "1250"},
		{token: "1,25.00", wantErr: true},
		{token: ",100.00", wantErr: true},
		{token: "1,000,00", wantErr: true},
		{token: "1..0", wantErr: true},
	}

	var tok CommaTokenizer
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := tok.Parse(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "got %s", got)
		})
	}
}

func TestTokenPatternsCoverTheirShapes(t *testing.T) {
	plain := regexp.MustCompile(`^` + PlainTokenizer{}.TokenPattern() + `$`)
	comma := regexp.MustCompile(`^` + CommaTokenizer{}.TokenPattern() + `$`)

	assert.True(t, plain.MatchString("873.56"))
	assert.False(t, plain.MatchString("1,250.00"))
	assert.True(t, comma.MatchString("1,250.00"))
	assert.True(t, comma.MatchString("873.56"))
}

func TestParseOptional(t *testing.T) {
	got, err := ParseOptional(PlainTokenizer{}, "   ")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = ParseOptional(CommaTokenizer{}, "2,000.10")
	require.NoError(t, err)
	assert.Equal(t, "2000.10", got.StringFixed(2))

	_, err = ParseOptional(PlainTokenizer{}, "1.2.3")
	assert.Error(t, err)
}

func TestHasGroupedAmount(t *testing.T) {
	assert.True(t, HasGroupedAmount("04 Sep19  RENT  TFR  1,250.00  3,000.00"))
	assert.False(t, HasGroupedAmount("04 Sep19  SHOP  CPT  300.00  873.56"))
	assert.False(t, HasGroupedAmount("LONDON, SW1"))
}

func TestParseHeaderAmount(t *testing.T) {
	re := regexp.MustCompile(`^` + HeaderAmountPattern + `$`)
	assert.True(t, re.MatchString("1,250.00"))
	assert.True(t, re.MatchString("500.00"))
	assert.False(t, re.MatchString("500.0"))
	assert.False(t, re.MatchString("500"))

	got, err := ParseHeaderAmount("1,250.00")
	require.NoError(t, err)
	assert.Equal(t, "1250.00", got.StringFixed(2))

	_, err = ParseHeaderAmount("abc")
	assert.Error(t, err)
}

func TestFormatAmount(t *testing.T) {
	amount := decimal.RequireFromString("1250.5")
	assert.Equal(t, "£1250.50", FormatAmount(amount, "GBP"))
	assert.Equal(t, "€1250.50", FormatAmount(amount, "eur"))
	assert.Equal(t, "CHF 1250.50", FormatAmount(amount, "CHF"))
	assert.Equal(t, "1250.50", FormatAmount(amount, ""))
}
