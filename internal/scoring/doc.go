// Package scoring computes the weighted thesis score for analytical records
// and produces the ranked, deduplicated target list. The five sub-scores are
// pure per-record functions with fixed ceilings; the total is the weighted
// sum of each sub-score as a fraction of its ceiling, so a thesis whose
// weights sum to 100 yields a maximum total of 100.
package scoring
