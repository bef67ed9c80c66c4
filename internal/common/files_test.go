package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStatementFile(t *testing.T) {
	assert.True(t, IsStatementFile("/tmp/sept.txt"))
	assert.True(t, IsStatementFile("SEPT.TXT"))
	assert.False(t, IsStatementFile("sept.pdf"))
	assert.False(t, IsStatementFile("txt"))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "sept.json"), OutputPath("in/sept.txt", "out", "json"))
	assert.Equal(t, filepath.Join("out", "sept.csv"), OutputPath("sept", "out", ".csv"))
}

func TestCreateOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.json")

	w, err := CreateOutput(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("{}"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	stdout, err := CreateOutput(StdoutPath)
	require.NoError(t, err)
	assert.NoError(t, stdout.Close())
}
