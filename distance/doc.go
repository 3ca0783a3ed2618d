// Package distance implements the string distance used by analogical proportions.
//
// The distance between two strings counts only insertions and deletions, so
// it is derived from the length of their longest common subsequence:
//
//	d(a, b) = |a| + |b| - 2·lcs(a, b)
//
// Lengths are measured in runes. Two ways of querying are offered:
//
//   - Oracle.Distance(a, b) for one-off queries
//   - Oracle.Anchor(a).From(b) for one-vs-many queries, where the anchor's
//     per-rune match masks are built once and every query runs the
//     bit-parallel LCS recurrence in O(|b|·⌈|a|/64⌉)
//
// Both paths return identical values. Memo wraps any Oracle with a symmetric
// cache that is safe for concurrent use.
package distance
