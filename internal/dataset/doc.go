// Package dataset holds the tabular, numeric data a CGP program is evaluated
// against, and the split of its rows into training and test partitions.
//
// Columns are addressed by name and are read-only once loaded, so a Dataset
// may be shared freely between concurrently running interpreters.
package dataset
