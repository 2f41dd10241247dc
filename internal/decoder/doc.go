// Package decoder maps a CGP genotype (a flat integer vector) onto its
// phenotype, a graph.Graph.
//
// # Genotype Layout
//
// The vector holds rows*columns node descriptors followed by nOutputs output
// genes:
//
//	[fn, ref_1 .. ref_arity] × rows*columns, out_1 .. out_nOutputs
//
// Descriptors are walked column-major: the column advances every `rows`
// descriptors.
//
// # Reference Resolution
//
// Each raw reference r of the k-th descriptor is resolved against the id of
// the first node in its column, threshold = nInputs + (k/rows)*rows:
//
//	r >= threshold  ->  r - threshold
//	r <  threshold  ->  r
//
// The output gene is resolved the same way against the Output node's own id.
// With genotype bounds produced by the genotype package every resolved id
// points at an earlier node, which keeps the graph feed-forward. Values that
// fold onto a node at or after the referencing one are rejected with
// ErrInvalidReference.
//
// After construction, every node reachable from the Output node is marked
// active.
package decoder
