// Package config defines the format-agnostic model of a regression run and
// the Loader interface that fills it from configuration files.
//
// The `config.Model` is the single source of truth for the `app` and
// `executor` packages. Concrete loaders, such as HCL and YAML, live in
// separate packages.
package config
