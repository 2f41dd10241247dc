// Package executor evaluates a population of genotypes concurrently and
// retains the best solution seen across batches.
//
// Each individual is decoded into its own graph and evaluated on the
// training rows by a shared interpreter. The best graph of a batch is deep
// copied before it is annotated and scored, so the retained solution never
// aliases a graph owned by a worker.
package executor
