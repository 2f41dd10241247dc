package interpreter

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/cgpgrid/internal/graph"
	"github.com/specialistvlad/cgpgrid/internal/opcode"
)

// FunctionString returns the operator symbol of a function node.
func (in *Interpreter) FunctionString(n *graph.Node) (string, error) {
	op, err := opcode.Lookup(n.Function)
	if err != nil {
		return "", fmt.Errorf("node %d: %w", n.ID, err)
	}
	return op.Symbol(), nil
}

// SolutionString renders the active program as an infix expression followed
// by "=<target>", e.g. "(x0) + (sin(x1))=y".
func (in *Interpreter) SolutionString(g *graph.Graph) (string, error) {
	out := g.OutputNode()
	if out == nil || len(out.Inputs) != 1 {
		return "", fmt.Errorf("%w: graph has no output node with a single input", ErrMalformedGraph)
	}
	root, ok := g.Node(out.Inputs[0])
	if !ok {
		return "", fmt.Errorf("%w: output reads from missing node %d", ErrMalformedGraph, out.Inputs[0])
	}

	var sb strings.Builder
	if err := in.render(&sb, g, root); err != nil {
		return "", err
	}
	sb.WriteString("=")
	sb.WriteString(out.Name)
	return sb.String(), nil
}

func (in *Interpreter) render(sb *strings.Builder, g *graph.Graph, n *graph.Node) error {
	if n.Kind != graph.Function {
		sb.WriteString(n.Name)
		return nil
	}

	op, err := opcode.Lookup(n.Function)
	if err != nil {
		return fmt.Errorf("node %d: %w", n.ID, err)
	}
	operands := make([]*graph.Node, op.Arity())
	for i := range operands {
		if i >= len(n.Inputs) {
			return fmt.Errorf("%w: node %d has no input %d", ErrMalformedGraph, n.ID, i)
		}
		child, ok := g.Node(n.Inputs[i])
		if !ok {
			return fmt.Errorf("%w: node %d reads from missing node %d", ErrMalformedGraph, n.ID, n.Inputs[i])
		}
		operands[i] = child
	}

	if op.Arity() == 1 {
		sb.WriteString(op.Symbol())
		sb.WriteString("(")
		if err := in.render(sb, g, operands[0]); err != nil {
			return err
		}
		sb.WriteString(")")
		return nil
	}

	sb.WriteString("(")
	if err := in.render(sb, g, operands[0]); err != nil {
		return err
	}
	sb.WriteString(") ")
	sb.WriteString(op.Symbol())
	sb.WriteString(" (")
	if err := in.render(sb, g, operands[1]); err != nil {
		return err
	}
	sb.WriteString(")")
	return nil
}

// Annotate names every function node after its operator and stores the
// solution string on the graph. It mutates g, so it must only be applied to
// a graph the caller owns, typically a Clone.
func (in *Interpreter) Annotate(g *graph.Graph) error {
	for _, n := range g.Nodes() {
		if n.Kind != graph.Function {
			continue
		}
		name, err := in.FunctionString(n)
		if err != nil {
			return err
		}
		n.Name = name
	}

	s, err := in.SolutionString(g)
	if err != nil {
		return err
	}
	g.SolutionString = s
	return nil
}
