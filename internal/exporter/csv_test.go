package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formdcli/internal/config"
)

func testPaths(t *testing.T) *config.Paths {
	t.Helper()
	dir := t.TempDir()
	return &config.Paths{
		BaseDir:    dir,
		ReportsDir: filepath.Join(dir, "reports"),
		LogsDir:    filepath.Join(dir, "logs"),
	}
}

func TestWriteSimpleCSV(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	headers := []string{"entity_name", "state", "total_score"}
	records := [][]string{
		{"Acme AI Inc", "CA", "76.00"},
		{"Beta Cloud", "NY", "54.50"},
	}

	require.NoError(t, w.WriteSimpleCSV("test.csv", headers, records))

	data, err := os.ReadFile(paths.GetReportPath("test.csv"))
	require.NoError(t, err)

	// BOM prefix for Excel
	assert.True(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"))

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\xEF\xBB\xBF")))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, headers, rows[0])
	assert.Equal(t, records[0], rows[1])
	assert.Equal(t, records[1], rows[2])
}

func TestAppendToCSV(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	require.NoError(t, w.WriteSimpleCSV("append.csv", []string{"a"}, [][]string{{"1"}}))
	require.NoError(t, w.AppendToCSV("append.csv", [][]string{{"2"}}))

	data, err := os.ReadFile(paths.GetReportPath("append.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 3, "header plus two rows")
}

func TestStreamWriter(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	stream, err := w.CreateStreamWriter("stream.csv", []string{"name", "score"})
	require.NoError(t, err)

	require.NoError(t, stream.WriteRecord([]string{"Acme AI Inc", "76.00"}))
	require.NoError(t, stream.WriteRecord([]string{"Beta Cloud", "54.50"}))
	require.NoError(t, stream.Close())

	data, err := os.ReadFile(paths.GetReportPath("stream.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 3)
}

func TestResolvePathAbsolutePassthrough(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	abs := filepath.Join(t.TempDir(), "elsewhere.csv")
	require.NoError(t, w.WriteSimpleCSV(abs, []string{"a"}, nil))
	assert.FileExists(t, abs)
}
