// Package hcl provides the HCL implementation of config.Loader. It parses
// run files with hclparse, decodes their blocks with gohcl and converts list
// attributes through cty before binding them to the format-agnostic model.
package hcl
