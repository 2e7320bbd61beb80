// Package ingest reads quarterly Form D extract directories and consolidates
// their tab-delimited record tables into one period-spanning table per record
// type, tagging every row with its reporting period. It also produces the
// data-quality report covering the consolidated set.
package ingest
