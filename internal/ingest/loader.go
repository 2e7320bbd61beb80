package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"formdcli/pkg/contracts/domain"
)

// Record table type names. The set of required tables per quarterly extract
// is fixed; a table type missing from every period is fatal.
const (
	TableSubmissions    = "submissions"
	TableIssuers        = "issuers"
	TableOfferings      = "offerings"
	TableRecipients     = "recipients"
	TableRelatedPersons = "related_persons"
	TableSignatures     = "signatures"
)

// Metadata columns added to every consolidated row
const (
	ColDataYear    = "data_year"
	ColDataQuarter = "data_quarter"
	ColDataPeriod  = "data_period"
)

// tableFiles maps record table types to their fixed file names inside each
// quarterly extract directory.
var tableFiles = map[string]string{
	TableSubmissions:    "FORMDSUBMISSION.tsv",
	TableIssuers:        "ISSUERS.tsv",
	TableOfferings:      "OFFERING.tsv",
	TableRecipients:     "RECIPIENTS.tsv",
	TableRelatedPersons: "RELATEDPERSONS.tsv",
	TableSignatures:     "SIGNATURES.tsv",
}

// TableTypes returns the fixed set of record table types in a stable order
func TableTypes() []string {
	return []string{
		TableSubmissions, TableIssuers, TableOfferings,
		TableRecipients, TableRelatedPersons, TableSignatures,
	}
}

// Loader discovers quarterly extract directories and consolidates their
// tables into one period-spanning table per record type.
type Loader struct {
	baseDir string
	logger  *slog.Logger
}

// NewLoader creates a loader over the given base directory
func NewLoader(baseDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{baseDir: baseDir, logger: logger}
}

// DiscoverPeriods scans the base directory for quarterly extract directories
// named like "2024Q1_d" and returns their periods sorted by (year, quarter).
// Directories with unparseable names are logged and skipped. Zero discovered
// periods is an error: there is nothing to process.
func (l *Loader) DiscoverPeriods(ctx context.Context) ([]domain.Period, error) {
	entries, err := os.ReadDir(l.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read base directory %s: %w", l.baseDir, err)
	}

	var periods []domain.Period
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		p, ok := parsePeriodDir(entry.Name())
		if !ok {
			if strings.Contains(entry.Name(), "Q") {
				l.logger.WarnContext(ctx, "skipping directory with unexpected format",
					"directory", entry.Name())
			}
			continue
		}
		periods = append(periods, p)
	}

	if len(periods) == 0 {
		return nil, fmt.Errorf("no quarterly extract directories found in %s", l.baseDir)
	}

	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })

	l.logger.InfoContext(ctx, "discovered quarterly extracts",
		"count", len(periods),
		"first", periods[0].Label(),
		"last", periods[len(periods)-1].Label(),
	)
	return periods, nil
}

// parsePeriodDir parses a directory name like "2024Q1_d" into a period
func parsePeriodDir(name string) (domain.Period, bool) {
	trimmed, found := strings.CutSuffix(name, "_d")
	if !found {
		return domain.Period{}, false
	}
	parts := strings.SplitN(trimmed, "Q", 2)
	if len(parts) != 2 {
		return domain.Period{}, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return domain.Period{}, false
	}
	quarter, err := strconv.Atoi(parts[1])
	if err != nil {
		return domain.Period{}, false
	}
	p := domain.Period{Year: year, Quarter: quarter}
	return p, p.IsValid()
}

// LoadPeriod reads all record tables for one period and tags every row with
// the period metadata columns. A missing table file is tolerated (logged);
// the returned map simply lacks that type for this period.
func (l *Loader) LoadPeriod(ctx context.Context, p domain.Period) (map[string]*Table, error) {
	dir := filepath.Join(l.baseDir, p.Label()+"_d")
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("quarter directory not found: %s", dir)
	}

	l.logger.InfoContext(ctx, "loading quarterly extract", "period", p.Label())

	tables := make(map[string]*Table)
	for _, tableType := range TableTypes() {
		path := filepath.Join(dir, tableFiles[tableType])
		if _, err := os.Stat(path); err != nil {
			l.logger.WarnContext(ctx, "table file not found",
				"period", p.Label(), "file", tableFiles[tableType])
			continue
		}

		table, err := readTSV(path, tableType)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		if err := tagPeriod(table, p); err != nil {
			return nil, fmt.Errorf("failed to tag %s with period metadata: %w", tableType, err)
		}

		tables[tableType] = table
		l.logger.InfoContext(ctx, "loaded table",
			"period", p.Label(), "table", tableType, "rows", table.NumRows())
	}

	return tables, nil
}

// LoadAll consolidates all discovered periods into one table per record type.
// A period that fails to load is logged and excluded; processing continues
// with the remaining periods. A record type present in no period is fatal.
func (l *Loader) LoadAll(ctx context.Context) (map[string]*Table, error) {
	periods, err := l.DiscoverPeriods(ctx)
	if err != nil {
		return nil, err
	}

	consolidated := make(map[string]*Table)
	loaded := 0
	for _, p := range periods {
		tables, err := l.LoadPeriod(ctx, p)
		if err != nil {
			l.logger.ErrorContext(ctx, "failed to load period, excluding it",
				"period", p.Label(), "error", err)
			continue
		}
		loaded++

		for tableType, table := range tables {
			if existing, ok := consolidated[tableType]; ok {
				existing.Append(table)
			} else {
				master := NewTable(tableType, table.Columns)
				master.Append(table)
				consolidated[tableType] = master
			}
		}
	}

	if loaded == 0 {
		return nil, fmt.Errorf("all %d discovered periods failed to load", len(periods))
	}

	for _, tableType := range TableTypes() {
		if _, ok := consolidated[tableType]; !ok {
			return nil, fmt.Errorf("required table %s missing from every period", tableType)
		}
	}

	for tableType, table := range consolidated {
		l.logger.InfoContext(ctx, "consolidated table",
			"table", tableType,
			"rows", table.NumRows(),
			"columns", len(table.Columns),
			"periods", loaded,
		)
	}

	return consolidated, nil
}

// tagPeriod appends the period metadata columns to a batch table
func tagPeriod(t *Table, p domain.Period) error {
	if err := t.AddConstantColumn(ColDataYear, strconv.Itoa(p.Year)); err != nil {
		return err
	}
	if err := t.AddConstantColumn(ColDataQuarter, strconv.Itoa(p.Quarter)); err != nil {
		return err
	}
	return t.AddConstantColumn(ColDataPeriod, p.Label())
}

// readTSV reads one tab-delimited table file. The first row is the header.
func readTSV(path, name string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse TSV: %w", err)
	}
	if len(records) == 0 {
		return NewTable(name, nil), nil
	}

	table := NewTable(name, records[0])
	for _, row := range records[1:] {
		table.AppendRow(row)
	}
	return table, nil
}
