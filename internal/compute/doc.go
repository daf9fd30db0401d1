// Package compute derives the numeric values the pipeline stores.
//
// round.go provides Round, the fixed-place half-away-from-zero rounding used
// for every derived figure.
//
// aggregate.go provides Aggregate, which computes the synthetic Common entry
// as the unweighted per-field mean of a table, and WithCommon, which returns
// a copy of a table with that entry inserted.
package compute
