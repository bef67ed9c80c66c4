package common_test

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/bank-insights/cmd/common"
	"fjacquet/bank-insights/internal/config"
	"fjacquet/bank-insights/internal/container"
	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/parsererror"
	"fjacquet/bank-insights/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statementText = `Name: MR JOHN SMITH
Account Number: 12345678
Date   Description   Type   In   Out   Balance
04 Sep19   LNK COOPERATIVE SW CD 4821 08DEC19   CPT   300.00   873.56
05 Sep19   SHOP   DEB   0.00   12.50   861.06
`

func newContainer(t *testing.T) *container.Container {
	t.Helper()
	c, err := container.NewContainer(config.Default(), container.WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)
	return c
}

func writeStatement(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestProcessFile(t *testing.T) {
	c := newContainer(t)
	input := writeStatement(t, statementText)
	output := filepath.Join(t.TempDir(), "out", "statement.json")

	result, err := common.ProcessFile(c, input, output, report.FormatJSON)
	require.NoError(t, err)
	assert.Len(t, result.Transactions, 2)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "MR JOHN SMITH", decoded["header"].(map[string]interface{})["name"])
}

func TestProcessFile_MissingInput(t *testing.T) {
	c := newContainer(t)

	_, err := common.ProcessFile(c, filepath.Join(t.TempDir(), "missing.txt"), "-", report.FormatJSON)
	assert.Error(t, err)
}

func TestParseFile_InvalidFormat(t *testing.T) {
	c := newContainer(t)
	input := writeStatement(t, "%PDF-1.5\n")

	_, err := common.ParseFile(c, input)
	var formatErr *parsererror.InvalidFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, input, formatErr.FilePath)
}

func TestLoadResult_CSV(t *testing.T) {
	c := newContainer(t)
	input := writeStatement(t, statementText)
	csvPath := filepath.Join(t.TempDir(), "statement.csv")

	_, err := common.ProcessFile(c, input, csvPath, report.FormatCSV)
	require.NoError(t, err)

	result, err := common.LoadResult(c, csvPath)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 2)
	assert.Equal(t, "SHOP", result.Transactions[1].Description)
	assert.Empty(t, result.Header.Name)

	result, err = common.LoadResult(c, input)
	require.NoError(t, err)
	assert.Equal(t, "MR JOHN SMITH", result.Header.Name)
}

func TestWriteOutput_PropagatesWriterError(t *testing.T) {
	boom := errors.New("boom")
	path := filepath.Join(t.TempDir(), "out.txt")

	err := common.WriteOutput(path, func(_ io.Writer) error { return boom })
	assert.ErrorIs(t, err, boom)
}
