package stmtparser

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"testing/iotest"

	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStatement = `Your Current Account
Name: MR JOHN SMITH
Address: 12 Acacia Avenue
LONDON SE1 4AB
Sort Code: 12-34-56
Account Number: 12345678
Statement Period: 01 Sep 2019 to 30 Sep 2019
Money In: £300.00 Balance on 01 September: £598.56
Money Out: £25.00 Balance on 30 September: £873.56

Date   Description   Type   Money In (£)   Money Out (£)   Balance (£)
04 Sep19   LNK COOPERATIVE SW CD 4821 08DEC19   CPT   300.00   898.56
Page 1 of 2
05 Sep19   AMAZON MARKETPLACE   DEB   0.00   12.50   886.06
06 Sep19   AMAZON MARKETPLACE   DEB   0.00   12.50   873.56
`

type recordingObserver struct {
	mu    sync.Mutex
	stats []Stats
}

func (o *recordingObserver) ObserveParse(s Stats) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stats = append(o.stats, s)
}

func newTestParser(opts ...Option) (*Parser, *logging.MockLogger) {
	logger := logging.NewMockLogger()
	return NewParser(append([]Option{WithLogger(logger)}, opts...)...), logger
}

func TestParser_ParseText(t *testing.T) {
	p, _ := newTestParser()

	result := p.ParseText(sampleStatement)
	require.NotNil(t, result)

	assert.Equal(t, "MR JOHN SMITH", result.Header.Name)
	assert.Equal(t, []string{"12 Acacia Avenue", "LONDON SE1 4AB"}, result.Header.Address)
	assert.True(t, result.Header.MoneyIn.Equal(decimal.RequireFromString("300")))
	assert.True(t, result.Header.EndingBalance.Equal(decimal.RequireFromString("873.56")))

	require.Len(t, result.Transactions, 3)
	first := result.Transactions[0]
	assert.Equal(t, "04 Sep19", first.Date)
	assert.Equal(t, "CPT", first.Type)
	assert.True(t, first.Credit.Equal(decimal.RequireFromString("300")))

	// identical descriptions stay separate rows in statement order
	assert.Equal(t, "AMAZON MARKETPLACE", result.Transactions[1].Description)
	assert.Equal(t, "AMAZON MARKETPLACE", result.Transactions[2].Description)
	assert.Equal(t, "05 Sep19", result.Transactions[1].Date)
	assert.Equal(t, "06 Sep19", result.Transactions[2].Date)
}

func TestParser_Idempotent(t *testing.T) {
	p, _ := newTestParser()

	first := p.ParseText(sampleStatement)
	second := p.ParseText(sampleStatement)
	assert.Equal(t, first, second)
}

func TestParser_NoTableHeader(t *testing.T) {
	p, logger := newTestParser()

	result := p.ParseText("Name: JANE DOE\n04 Sep19   CAFE   DEB   0.00   4.50   869.06\n")
	assert.Equal(t, "JANE DOE", result.Header.Name)
	assert.NotNil(t, result.Transactions)
	assert.Empty(t, result.Transactions)
	assert.True(t, logger.HasEntry("DEBUG", "No transaction table header found"))
}

func TestParser_EmptyText(t *testing.T) {
	p, _ := newTestParser()

	result := p.ParseText("")
	assert.Empty(t, result.Transactions)
	assert.Empty(t, result.Header.Name)
	assert.Empty(t, result.Header.Address)
}

func TestParser_SkipsNoise(t *testing.T) {
	p, logger := newTestParser()

	text := "Date Description\n" +
		"04 Sep19 CPT 873.56\n" +
		"garbage line with words only\n" +
		"05 Sep19   SHOP   DEB   0.00   1.00   872.56\n"

	result := p.ParseText(text)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "SHOP", result.Transactions[0].Description)

	var indexes []interface{}
	for _, e := range logger.Entries() {
		if e.Message != "Skipped table line" {
			continue
		}
		for _, f := range e.Fields {
			if f.Key == logging.FieldLineIndex {
				indexes = append(indexes, f.Value)
			}
		}
	}
	assert.Equal(t, []interface{}{1, 2}, indexes)
}

func TestParser_SkippedLineIndexIgnoresBlankLines(t *testing.T) {
	p, logger := newTestParser()

	text := "Name: JANE DOE\n\n\n" +
		"Date Description\n\n" +
		"05 Sep19   SHOP   DEB   0.00   1.00   872.56\n" +
		"not a row at all\n"

	p.ParseText(text)

	var indexes []interface{}
	for _, e := range logger.Entries() {
		if e.Message != "Skipped table line" {
			continue
		}
		for _, f := range e.Fields {
			if f.Key == logging.FieldLineIndex {
				indexes = append(indexes, f.Value)
			}
		}
	}
	// lines: name, table header, row, noise
	assert.Equal(t, []interface{}{3}, indexes)
}

func TestParser_VariantSelection(t *testing.T) {
	text := "Date Description\n" +
		"10 Oct19   SALARY ACME LTD   BGC   1,250.00   2,123.56\n" +
		"11 Oct19   RENT   SO   0.00   950.00   1,173.56\n"

	obs := &recordingObserver{}
	auto, _ := newTestParser(WithObserver(obs))
	result := auto.ParseText(text)
	require.Len(t, result.Transactions, 2)
	assert.True(t, result.Transactions[0].Credit.Equal(decimal.RequireFromString("1250")))
	require.Len(t, obs.stats, 1)
	assert.Equal(t, VariantCommaSeparated, obs.stats[0].Variant)

	fixed, _ := newTestParser(WithVariant(VariantCommaless))
	assert.Equal(t, VariantCommaless, fixed.Variant())
	assert.Empty(t, fixed.ParseText(text).Transactions)
}

func TestParser_UnknownVariantFallsBack(t *testing.T) {
	p, logger := newTestParser(WithVariant(Variant("tabular")))

	result := p.ParseText(sampleStatement)
	assert.Len(t, result.Transactions, 3)
	assert.True(t, logger.HasEntry("WARN", "Unknown grammar variant, using commaless"))
}

func TestParser_ObserverStats(t *testing.T) {
	obs := &recordingObserver{}
	p, _ := newTestParser(WithObserver(obs))

	p.ParseText(sampleStatement)

	require.Len(t, obs.stats, 1)
	s := obs.stats[0]
	assert.True(t, s.TableFound)
	assert.Equal(t, VariantCommaless, s.Variant)
	assert.Equal(t, 9, s.HeaderLines)
	assert.Equal(t, 4, s.TableLines)
	assert.Equal(t, 3, s.Matched)
	assert.Equal(t, 1, s.Skipped)
}

func TestParser_Parse(t *testing.T) {
	p, _ := newTestParser()

	t.Run("reader", func(t *testing.T) {
		result, err := p.Parse(strings.NewReader(sampleStatement))
		require.NoError(t, err)
		assert.Len(t, result.Transactions, 3)
	})

	t.Run("nil reader", func(t *testing.T) {
		result, err := p.Parse(nil)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, parsererror.ErrNoInput)
	})

	t.Run("read failure", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := p.Parse(iotest.ErrReader(boom))
		var parseErr *parsererror.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("pdf bytes", func(t *testing.T) {
		_, err := p.Parse(strings.NewReader("%PDF-1.7\n%âãÏÓ\n"))
		var formatErr *parsererror.InvalidFormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, "plain text", formatErr.ExpectedFormat)
	})

	t.Run("binary data", func(t *testing.T) {
		_, err := p.Parse(strings.NewReader("Name: X\x00\x01"))
		var formatErr *parsererror.InvalidFormatError
		assert.ErrorAs(t, err, &formatErr)
	})

	t.Run("empty reader is not an error", func(t *testing.T) {
		result, err := p.Parse(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, result.Transactions)
	})
}

func TestParser_ConcurrentUse(t *testing.T) {
	p, _ := newTestParser()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := p.ParseText(sampleStatement)
			assert.Len(t, result.Transactions, 3)
		}()
	}
	wg.Wait()
}
