// Package normalize converts the consolidated raw tables into typed,
// analysis-ready records: mixed-format date parsing with period fallback,
// dual-mode amount parsing with "Indefinite" sentinel handling, two-tier
// industry-to-sector standardization, state-to-region mapping, and
// exact-literal boolean flag derivation.
package normalize
