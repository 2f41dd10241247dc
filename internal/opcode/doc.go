// Package opcode is the fixed catalogue of arithmetic and transcendental
// operators a CGP function node can select.
//
// The table is closed: an operator index outside of it is a version mismatch
// between whoever produced the genotype and this interpreter, and is reported
// as ErrUnsupported rather than recovered.
package opcode
