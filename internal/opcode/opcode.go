package opcode

import (
	"errors"
	"fmt"
	"math"
)

// OpCode selects one row of the operator table.
type OpCode uint8

const (
	ConstA OpCode = iota
	Add
	Sub
	Mul
	Div
	Sin
	Cos
	Tan
	Log
	Exp
	Pow
	Cube
	Sqrt
	Square
	Root
	CubeRoot
)

// ErrUnsupported is matched by every error returned for an unknown operator index.
var ErrUnsupported = errors.New("unsupported operator")

// UnsupportedError reports a function index that has no entry in the table.
type UnsupportedError struct {
	Index int
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported operator: function index %d is not in the operator table", e.Index)
}

// Is lets errors.Is(err, ErrUnsupported) match.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

type operator struct {
	symbol string
	arity  int
	fn     func(a, b float64) float64
}

// table is indexed by OpCode and never mutated.
var table = [...]operator{
	ConstA:   {"const", 1, func(a, _ float64) float64 { return a }},
	Add:      {"+", 2, func(a, b float64) float64 { return a + b }},
	Sub:      {"-", 2, func(a, b float64) float64 { return a - b }},
	Mul:      {"*", 2, func(a, b float64) float64 { return a * b }},
	Div:      {"/", 2, func(a, b float64) float64 { return a / b }},
	Sin:      {"sin", 1, func(a, _ float64) float64 { return math.Sin(a) }},
	Cos:      {"cos", 1, func(a, _ float64) float64 { return math.Cos(a) }},
	Tan:      {"tan", 1, func(a, _ float64) float64 { return math.Tan(a) }},
	Log:      {"log", 1, func(a, _ float64) float64 { return math.Log(a) }},
	Exp:      {"exp", 2, func(a, _ float64) float64 { return math.Exp(a) }},
	Pow:      {"pow", 2, math.Pow},
	Cube:     {"^3", 1, func(a, _ float64) float64 { return math.Pow(a, 3) }},
	Sqrt:     {"sqrt", 1, func(a, _ float64) float64 { return math.Sqrt(a) }},
	Square:   {"^2", 1, func(a, _ float64) float64 { return a * a }},
	Root:     {"root", 2, func(a, b float64) float64 { return math.Pow(a, 1.0/b) }},
	CubeRoot: {"cubeRoot", 1, func(a, _ float64) float64 { return math.Pow(a, 1.0/3) }},
}

// Count returns the number of operators in the table.
func Count() int {
	return len(table)
}

// MaxArity is the largest arity in the table. A grid whose nodes carry
// fewer references cannot feed every operator.
func MaxArity() int {
	m := 0
	for _, op := range table {
		m = max(m, op.arity)
	}
	return m
}

// Lookup maps a raw function index from a genotype onto an OpCode.
func Lookup(index int) (OpCode, error) {
	if index < 0 || index >= len(table) {
		return 0, &UnsupportedError{Index: index}
	}
	return OpCode(index), nil
}

// All returns every operator in index order.
func All() []OpCode {
	ops := make([]OpCode, len(table))
	for i := range table {
		ops[i] = OpCode(i)
	}
	return ops
}

// Symbol is the display name used in solution strings.
func (op OpCode) Symbol() string {
	return table[op].symbol
}

// Arity is the number of operands the operator consumes.
func (op OpCode) Arity() int {
	return table[op].arity
}

// Apply evaluates the operator. The right operand is ignored by unary operators.
// Domain errors such as sqrt(-1) yield NaN, never an error.
func (op OpCode) Apply(left, right float64) float64 {
	return table[op].fn(left, right)
}

func (op OpCode) String() string {
	if int(op) >= len(table) {
		return fmt.Sprintf("OpCode(%d)", uint8(op))
	}
	return table[op].symbol
}
