package exporter

import (
	"fmt"
	"math"
	"time"
)

// indefiniteLabel is written for +Inf amounts so the sentinel survives export
const indefiniteLabel = "Indefinite"

// formatAmount formats a float64 amount for CSV output. Missing values
// export as empty cells and the indefinite sentinel exports as its label,
// so a spreadsheet never sees Inf or NaN.
func formatAmount(f float64) string {
	switch {
	case math.IsNaN(f):
		return ""
	case math.IsInf(f, 1):
		return indefiniteLabel
	case math.IsInf(f, -1):
		return ""
	default:
		return fmt.Sprintf("%.2f", f)
	}
}

// formatFloat formats a float64 value with exactly 2 decimal places
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatBool formats a boolean value for CSV output
func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// formatDate formats a date, writing an empty cell for the zero time
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
