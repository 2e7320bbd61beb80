package ingest

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// accessionColumn is the primary key column shared by all record tables
const accessionColumn = "ACCESSIONNUMBER"

// TableQuality holds validation results for one consolidated table
type TableQuality struct {
	TableType     string
	RowCount      int
	ColumnCount   int
	MissingValues map[string]int
	DuplicateKeys int
	Issues        []string
}

// ValidateTable computes data-quality statistics for a consolidated table.
// Duplicate accession keys are only flagged for tables where the key is
// expected to be unique (submissions, offerings).
func ValidateTable(t *Table) TableQuality {
	q := TableQuality{
		TableType:     t.Name,
		RowCount:      t.NumRows(),
		ColumnCount:   len(t.Columns),
		MissingValues: make(map[string]int),
	}

	for _, col := range t.Columns {
		missing := 0
		for i := 0; i < t.NumRows(); i++ {
			if strings.TrimSpace(t.Value(i, col)) == "" {
				missing++
			}
		}
		if missing > 0 {
			q.MissingValues[col] = missing
		}
	}

	if t.Name == TableSubmissions || t.Name == TableOfferings {
		seen := make(map[string]bool, t.NumRows())
		for i := 0; i < t.NumRows(); i++ {
			key := t.Value(i, accessionColumn)
			if key == "" {
				continue
			}
			if seen[key] {
				q.DuplicateKeys++
			}
			seen[key] = true
		}
		if q.DuplicateKeys > 0 {
			q.Issues = append(q.Issues,
				fmt.Sprintf("found %d duplicate accession numbers", q.DuplicateKeys))
		}
	}

	return q
}

// QualityReport renders a plain-text data quality report over all
// consolidated tables, listing the ten worst missing-value columns per table.
func QualityReport(tables map[string]*Table, now time.Time) string {
	var b strings.Builder
	line := strings.Repeat("=", 80)

	b.WriteString(line + "\n")
	b.WriteString("FORM D DATA QUALITY REPORT\n")
	b.WriteString(line + "\n")
	b.WriteString("Generated: " + now.Format("2006-01-02 15:04:05") + "\n")

	for _, tableType := range TableTypes() {
		t, ok := tables[tableType]
		if !ok {
			continue
		}
		q := ValidateTable(t)

		b.WriteString("\n" + line + "\n")
		b.WriteString("TABLE: " + strings.ToUpper(tableType) + "\n")
		b.WriteString(line + "\n")
		fmt.Fprintf(&b, "Total Rows: %d\n", q.RowCount)
		fmt.Fprintf(&b, "Total Columns: %d\n", q.ColumnCount)
		fmt.Fprintf(&b, "Duplicate Keys: %d\n", q.DuplicateKeys)

		if len(q.MissingValues) == 0 {
			b.WriteString("\nMissing Values: None\n")
		} else {
			b.WriteString("\nMissing Values:\n")
			type colCount struct {
				col   string
				count int
			}
			counts := make([]colCount, 0, len(q.MissingValues))
			for col, count := range q.MissingValues {
				counts = append(counts, colCount{col, count})
			}
			sort.Slice(counts, func(i, j int) bool {
				if counts[i].count != counts[j].count {
					return counts[i].count > counts[j].count
				}
				return counts[i].col < counts[j].col
			})
			if len(counts) > 10 {
				counts = counts[:10]
			}
			for _, cc := range counts {
				pct := float64(cc.count) / float64(q.RowCount) * 100
				fmt.Fprintf(&b, "  %s: %d (%.1f%%)\n", cc.col, cc.count, pct)
			}
		}

		if len(q.Issues) > 0 {
			b.WriteString("\nData Quality Issues:\n")
			for _, issue := range q.Issues {
				b.WriteString("  - " + issue + "\n")
			}
		}
	}

	b.WriteString("\n" + line + "\n")
	b.WriteString("END OF REPORT\n")
	b.WriteString(line + "\n")

	return b.String()
}
