package common

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransactions() []models.TransactionRecord {
	return []models.TransactionRecord{
		{
			Date:        "04 Sep19",
			Description: "LNK COOPERATIVE SW CD 4821",
			Type:        "CPT",
			Credit:      decimal.RequireFromString("300"),
			Debit:       decimal.Zero,
			Balance:     decimal.RequireFromString("873.56"),
		},
		{
			Date:        "05 Sep19",
			Description: "SHOP, HIGH STREET",
			Type:        "DEB",
			Credit:      decimal.Zero,
			Debit:       decimal.RequireFromString("12.5"),
			Balance:     decimal.RequireFromString("861.06"),
		},
	}
}

func TestWriteTransactionsCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTransactionsCSV(&buf, sampleTransactions(), ',')
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Description,Type,Credit,Debit,Balance", lines[0])
	assert.Equal(t, "04 Sep19,LNK COOPERATIVE SW CD 4821,CPT,300,0,873.56", lines[1])
	assert.Equal(t, `05 Sep19,"SHOP, HIGH STREET",DEB,0,12.5,861.06`, lines[2])
}

func TestWriteTransactionsCSV_Delimiter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactionsCSV(&buf, sampleTransactions(), ';'))

	assert.True(t, strings.HasPrefix(buf.String(), "Date;Description;Type;Credit;Debit;Balance\n"))
	assert.Contains(t, buf.String(), "05 Sep19;SHOP, HIGH STREET;DEB;")
}

func TestWriteTransactionsCSV_Nil(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteTransactionsCSV(&buf, nil, ','))
}

func TestReadTransactionsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.csv")

	out, err := CreateOutput(path)
	require.NoError(t, err)
	require.NoError(t, WriteTransactionsCSV(out, sampleTransactions(), ';'))
	require.NoError(t, out.Close())

	logger := logging.NewMockLogger()
	rows, err := ReadTransactionsCSV(path, ';', logger)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "SHOP, HIGH STREET", rows[1].Description)
	assert.True(t, rows[1].Debit.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, logger.HasEntry("INFO", "Successfully read CSV data"))

	_, err = ReadTransactionsCSV(filepath.Join(t.TempDir(), "missing.csv"), ',', logger)
	assert.Error(t, err)
}

func TestReadTransactionsCSV_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("Date,Credit\n04 Sep19,abc\n"), 0600))

	_, err := ReadTransactionsCSV(path, ',', nil)
	assert.Error(t, err)
}
