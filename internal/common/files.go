package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// StdoutPath selects standard output wherever an output path is accepted.
const StdoutPath = "-"

// StatementExtensions are the file extensions treated as extracted statement text.
var StatementExtensions = []string{".txt", ".text"}

// IsStatementFile reports whether path looks like an extracted statement text file.
func IsStatementFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range StatementExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// OutputPath returns the file in outDir named after inputFile with its
// extension replaced by ext (for example "json").
func OutputPath(inputFile, outDir, ext string) string {
	base := filepath.Base(inputFile)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, base+"."+strings.TrimPrefix(ext, "."))
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// CreateOutput opens path for writing, creating its directory first.
// An empty path or StdoutPath writes to os.Stdout, which is never closed.
func CreateOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == StdoutPath {
		return nopWriteCloser{os.Stdout}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("error creating directory: %w", err)
	}
	file, err := os.Create(path) // #nosec G304 -- output path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("error creating output file: %w", err)
	}
	return file, nil
}
