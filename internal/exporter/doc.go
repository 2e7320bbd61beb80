// Package exporter writes the pipeline outputs: the flat analytical dataset
// as CSV, the ranked target list as CSV and styled XLSX, the full-universe
// listing, trend tables, and the data quality report. All writers resolve
// relative paths through config.Paths.
package exporter
