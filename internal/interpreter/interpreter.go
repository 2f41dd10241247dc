package interpreter

import (
	"fmt"
	"math"
	"sync"

	"github.com/specialistvlad/cgpgrid/internal/dataset"
	"github.com/specialistvlad/cgpgrid/internal/graph"
	"github.com/specialistvlad/cgpgrid/internal/opcode"
)

// Constraint inspects the value computed by a function node for one row.
// Returning a non-nil error aborts the evaluation.
type Constraint interface {
	Check(n *graph.Node, value float64) error
}

// ConstraintFunc adapts a function to the Constraint interface.
type ConstraintFunc func(n *graph.Node, value float64) error

func (f ConstraintFunc) Check(n *graph.Node, value float64) error {
	return f(n, value)
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithConstraint installs a per-node constraint check.
func WithConstraint(c Constraint) Option {
	return func(in *Interpreter) {
		in.constraint = c
	}
}

// Interpreter evaluates graphs and counts how many solutions it evaluated.
type Interpreter struct {
	mu        sync.Mutex
	evaluated int

	constraint Constraint
}

// New creates an interpreter with a zeroed counter.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// EvaluatedSolutions returns the number of non-empty Evaluate calls so far.
func (in *Interpreter) EvaluatedSolutions() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.evaluated
}

// Reset zeroes the evaluated-solutions counter.
func (in *Interpreter) Reset() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.evaluated = 0
}

// NumberOfFunctions is the size of the operator table.
func (in *Interpreter) NumberOfFunctions() int {
	return opcode.Count()
}

// Evaluate computes the program's prediction for each of rows, in order.
// An empty row selection returns an empty result and is not counted.
func (in *Interpreter) Evaluate(g *graph.Graph, ds dataset.Dataset, rows []int) ([]float64, error) {
	if len(rows) == 0 {
		return []float64{}, nil
	}

	in.mu.Lock()
	in.evaluated++
	in.mu.Unlock()

	out := g.OutputNode()
	if out == nil || len(out.Inputs) != 1 {
		return nil, fmt.Errorf("%w: graph has no output node with a single input", ErrMalformedGraph)
	}
	root, ok := g.Node(out.Inputs[0])
	if !ok {
		return nil, fmt.Errorf("%w: output reads from missing node %d", ErrMalformedGraph, out.Inputs[0])
	}

	e := &evaluation{
		interp:  in,
		g:       g,
		ds:      ds,
		columns: make(map[string][]float64),
	}

	results := make([]float64, len(rows))
	for i, row := range rows {
		e.row = row
		v, err := e.node(root)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = math.MaxFloat64
		}
		results[i] = v
	}
	return results, nil
}

// evaluation carries the state of a single Evaluate call. Column slices are
// looked up once per call; node values are never cached.
type evaluation struct {
	interp  *Interpreter
	g       *graph.Graph
	ds      dataset.Dataset
	row     int
	columns map[string][]float64
}

func (e *evaluation) node(n *graph.Node) (float64, error) {
	switch n.Kind {
	case graph.Input:
		return e.input(n)
	case graph.Output:
		child, err := e.child(n, 0)
		if err != nil {
			return 0, err
		}
		return e.node(child)
	}

	op, err := opcode.Lookup(n.Function)
	if err != nil {
		return 0, fmt.Errorf("node %d: %w", n.ID, err)
	}
	if len(n.Inputs) < op.Arity() {
		return 0, fmt.Errorf("%w: node %d has %d inputs, operator %q needs %d", ErrMalformedGraph, n.ID, len(n.Inputs), op.Symbol(), op.Arity())
	}

	leftNode, err := e.child(n, 0)
	if err != nil {
		return 0, err
	}
	left, err := e.node(leftNode)
	if err != nil {
		return 0, err
	}

	right := 0.0
	if op.Arity() == 2 {
		rightNode, err := e.child(n, 1)
		if err != nil {
			return 0, err
		}
		right, err = e.node(rightNode)
		if err != nil {
			return 0, err
		}
	}

	v := op.Apply(left, right)
	if c := e.interp.constraint; c != nil {
		if err := c.Check(n, v); err != nil {
			return 0, err
		}
	}
	return v, nil
}

func (e *evaluation) child(n *graph.Node, pos int) (*graph.Node, error) {
	if pos >= len(n.Inputs) {
		return nil, fmt.Errorf("%w: node %d has no input %d", ErrMalformedGraph, n.ID, pos)
	}
	child, ok := e.g.Node(n.Inputs[pos])
	if !ok {
		return nil, fmt.Errorf("%w: node %d reads from missing node %d", ErrMalformedGraph, n.ID, n.Inputs[pos])
	}
	return child, nil
}

func (e *evaluation) input(n *graph.Node) (float64, error) {
	values, ok := e.columns[n.Name]
	if !ok {
		var err error
		values, err = e.ds.Values(n.Name)
		if err != nil {
			return 0, fmt.Errorf("input node %d: %w", n.ID, err)
		}
		e.columns[n.Name] = values
	}
	if e.row < 0 || e.row >= len(values) {
		return 0, fmt.Errorf("row %d out of range for column %q with %d rows", e.row, n.Name, len(values))
	}
	return values[e.row], nil
}
