// Package graph is the in-memory phenotype of a CGP program: a feed-forward
// graph of Input, Function and Output nodes laid out on a rows × columns grid.
//
// # Ids and Layout
//
// Node ids are contiguous and double as arena indices:
//
//	0 .. nInputs-1                         Input nodes, in variable order
//	nInputs .. nInputs+rows*columns-1      Function nodes, column-major
//	nInputs+rows*columns                   the single Output node
//
// Every id stored in a node's Inputs refers to a node with a strictly smaller
// id, so the graph is acyclic by construction. The decoder guarantees this;
// the graph does not re-check it.
//
// # Lifecycle
//
// A Graph is produced once per genotype by the decoder, which also runs the
// single activation pass. After that the graph is read-only and may be shared
// between goroutines. Anything that has to outlive the population it came
// from (for example the best solution retained across generations) must take
// a Clone, which shares no memory with the original.
package graph
