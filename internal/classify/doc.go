// Package classify assigns thesis-relevant signals and sub-categories to
// analytical records. Evidence sources are independent and overlapping:
// keyword families over the entity name, the raw industry taxonomy, and a
// standalone-acronym match with a false-positive denylist. No single source
// is authoritative, but pooled investment funds are excluded outright.
package classify
