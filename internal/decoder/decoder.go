package decoder

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/cgpgrid/internal/graph"
	"github.com/specialistvlad/cgpgrid/internal/opcode"
)

var (
	// ErrGenotypeLength is returned when the vector length does not match the grid.
	ErrGenotypeLength = errors.New("genotype length does not match grid")
	// ErrInvalidReference is returned when a gene resolves to a node that
	// does not precede the node reading from it.
	ErrInvalidReference = errors.New("invalid node reference")
)

// Length returns the genotype length required for the given grid.
func Length(nOutputs, arity, rows, columns int) int {
	return rows*columns*(arity+1) + nOutputs
}

// Decode builds the graph encoded by genotype. It is a pure function of its
// arguments.
//
// A function node whose operator is known keeps only as many references as
// the operator consumes; with an unknown function index all arity references
// are kept and the mismatch surfaces when the graph is evaluated.
//
// Every reference is checked while the node is built, before activation, so
// a gene that resolves outside [0, id) rejects the whole genotype with
// ErrInvalidReference even when the node reading it ends up inactive.
// Genotypes inside the bounds of a genotype.Encoding never trigger this.
func Decode(nInputs, nOutputs, arity, rows, columns int, genotype []int) (*graph.Graph, error) {
	if nInputs < 0 || nOutputs < 1 || arity < 1 || rows < 1 || columns < 1 {
		return nil, fmt.Errorf("invalid grid: inputs=%d outputs=%d arity=%d rows=%d columns=%d", nInputs, nOutputs, arity, rows, columns)
	}
	if want := Length(nOutputs, arity, rows, columns); len(genotype) != want {
		return nil, fmt.Errorf("%w: got %d genes, want %d", ErrGenotypeLength, len(genotype), want)
	}

	g := graph.New(rows, columns)
	id := 0

	for i := 0; i < nInputs; i++ {
		if err := g.AddNode(&graph.Node{ID: id, Kind: graph.Input}); err != nil {
			return nil, err
		}
		id++
	}

	stride := arity + 1
	for k := 0; k < rows*columns; k++ {
		desc := genotype[k*stride : (k+1)*stride]
		threshold := nInputs + (k/rows)*rows

		n := &graph.Node{
			ID:       id,
			Kind:     graph.Function,
			Function: desc[0],
			Inputs:   make([]int, 0, arity),
		}
		for _, raw := range desc[1:] {
			ref := resolve(raw, threshold)
			if ref < 0 || ref >= id {
				return nil, fmt.Errorf("%w: gene %d of node %d resolves to %d", ErrInvalidReference, raw, id, ref)
			}
			n.Inputs = append(n.Inputs, ref)
		}
		if op, err := opcode.Lookup(n.Function); err == nil && op.Arity() <= len(n.Inputs) {
			n.Inputs = n.Inputs[:op.Arity()]
		}

		if err := g.AddNode(n); err != nil {
			return nil, err
		}
		id++
	}

	raw := genotype[len(genotype)-nOutputs]
	ref := resolve(raw, id)
	if ref < 0 || ref >= id {
		return nil, fmt.Errorf("%w: output gene %d resolves to %d", ErrInvalidReference, raw, ref)
	}
	out := &graph.Node{ID: id, Kind: graph.Output, Inputs: []int{ref}}
	if err := g.AddNode(out); err != nil {
		return nil, err
	}

	activate(g, out)
	return g, nil
}

func resolve(raw, threshold int) int {
	if raw >= threshold {
		return raw - threshold
	}
	return raw
}

// activate marks n and everything it transitively reads from. References
// always point backwards, so no cycle guard is needed; already active nodes
// are not descended into again.
func activate(g *graph.Graph, n *graph.Node) {
	n.Active = true
	for _, ref := range n.Inputs {
		child, _ := g.Node(ref)
		if !child.Active {
			activate(g, child)
		}
	}
}
