package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/bank-insights/internal/stmtparser"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder_ObserveParse(t *testing.T) {
	r := NewPrometheusRecorder()

	r.ObserveParse(stmtparser.Stats{
		Variant:     stmtparser.VariantCommaless,
		TableFound:  true,
		HeaderLines: 9,
		TableLines:  4,
		Matched:     3,
		Skipped:     1,
		Duration:    2 * time.Millisecond,
	})
	r.ObserveParse(stmtparser.Stats{Variant: stmtparser.VariantCommaless, HeaderLines: 2})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.parseTotal.WithLabelValues("commaless", StatusParsed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.parseTotal.WithLabelValues("commaless", StatusNoTable)))
	assert.Equal(t, 11.0, testutil.ToFloat64(r.linesTotal.WithLabelValues("header", "scanned")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.linesTotal.WithLabelValues("table", "matched")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.linesTotal.WithLabelValues("table", "skipped")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.parseDuration))
}

func TestPrometheusRecorder_ParseFailed(t *testing.T) {
	r := NewPrometheusRecorder()
	r.ParseFailed("auto")
	r.ParseFailed("auto")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.parseTotal.WithLabelValues("auto", StatusFailed)))
}

func TestPrometheusRecorder_SeparateRegistries(t *testing.T) {
	a := NewPrometheusRecorder()
	b := NewPrometheusRecorder()
	a.ParseFailed("comma")

	assert.Equal(t, 0.0, testutil.ToFloat64(b.parseTotal.WithLabelValues("comma", StatusFailed)))
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	r := NewPrometheusRecorder()
	r.ParseFailed("auto")

	path := filepath.Join(t.TempDir(), "bank_insights.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `statement_parse_total{status="failed",variant="auto"} 1`)

	err = r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "out.prom"))
	assert.Error(t, err)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	assert.NotPanics(t, func() {
		r.ObserveParse(stmtparser.Stats{})
		r.ParseFailed("auto")
	})
}
