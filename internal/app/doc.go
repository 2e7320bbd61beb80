// Package app wires the pipeline stages together: ingestion, normalization,
// the analytical join, classification, scoring, and export. The two CLI
// entrypoints stay thin and delegate here.
package app
