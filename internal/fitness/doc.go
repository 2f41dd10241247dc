// Package fitness scores a program's estimates against the target column:
// the mean squared error used as the search fitness, plus the regression
// statistics reported for a retained solution.
package fitness
