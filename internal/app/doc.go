// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle that loads a regression
// problem, evaluates its population and reports the best solution, decoupled
// from any specific entrypoint like a CLI.
package app
