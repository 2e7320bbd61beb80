// Package analytics joins the cleaned Form D tables into one analytical
// record per offering and derives the cross-table signals (repeat filings,
// related-person counts, offering age and activity) that classification and
// scoring consume. It also produces the period and sector trend aggregates
// for reporting.
package analytics
