package domain

import "fmt"

// Period identifies one quarterly reporting period of the Form D extract set.
type Period struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`
}

// IsValid checks if the period is a well-formed (year, quarter) pair
func (p Period) IsValid() bool {
	return p.Year >= 2000 && p.Year <= 2100 && p.Quarter >= 1 && p.Quarter <= 4
}

// Label returns the human-readable period label, e.g. "2024Q3"
func (p Period) Label() string {
	return fmt.Sprintf("%dQ%d", p.Year, p.Quarter)
}

// Before reports whether p precedes other in calendar order
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Quarter < other.Quarter
}

// MidMonth returns the middle month of the quarter (Feb, May, Aug, Nov).
// Used when reconstructing an approximate filing date from period metadata.
func (p Period) MidMonth() int {
	return (p.Quarter-1)*3 + 2
}
