// Package genotype describes the integer-vector encoding consumed by the
// decoder: its length and the per-gene value ranges that keep decoded graphs
// feed-forward under a levels-back window.
//
// Bounds are half-open, [Min[i], Max[i]). A reference gene of a node in column
// c may point at any input or any node in the columns before c. Once c exceeds
// the levels-back window the lower bound moves up to the first visible column
// and the upper bound is widened by nInputs; the widened band lies at or above
// the column threshold and therefore folds back onto the Input nodes when
// decoded, so inputs stay reachable from every column.
package genotype
