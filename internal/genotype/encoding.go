package genotype

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrOutOfBounds is matched by errors from Validate for genes outside their range.
var ErrOutOfBounds = errors.New("gene out of bounds")

// Params are the grid and problem dimensions an encoding is derived from.
type Params struct {
	Inputs     int
	Outputs    int
	Arity      int
	Rows       int
	Columns    int
	LevelsBack int
	Functions  int
}

// Encoding is the shape of a valid genotype.
type Encoding struct {
	Params
	Min []int
	Max []int
}

// NewEncoding computes the genotype length and per-gene bounds for p.
func NewEncoding(p Params) (*Encoding, error) {
	switch {
	case p.Inputs < 1:
		return nil, fmt.Errorf("at least one input variable is required, got %d", p.Inputs)
	case p.Outputs < 1:
		return nil, fmt.Errorf("at least one output is required, got %d", p.Outputs)
	case p.Arity < 1:
		return nil, fmt.Errorf("arity must be positive, got %d", p.Arity)
	case p.Rows < 1 || p.Columns < 1:
		return nil, fmt.Errorf("grid must have at least one row and column, got %dx%d", p.Rows, p.Columns)
	case p.LevelsBack < 1:
		return nil, fmt.Errorf("levels-back must be positive, got %d", p.LevelsBack)
	case p.Functions < 1:
		return nil, fmt.Errorf("function count must be positive, got %d", p.Functions)
	}

	nodes := p.Rows * p.Columns
	length := nodes*(p.Arity+1) + p.Outputs
	e := &Encoding{
		Params: p,
		Min:    make([]int, 0, length),
		Max:    make([]int, 0, length),
	}

	for col := 0; col < p.Columns; col++ {
		for row := 0; row < p.Rows; row++ {
			e.Min = append(e.Min, 0)
			e.Max = append(e.Max, p.Functions)

			minNode := 0
			maxNode := col*p.Rows + p.Inputs
			if col > p.LevelsBack {
				minNode = (col-p.LevelsBack)*p.Rows + p.Inputs
				maxNode += p.Inputs
			}
			for k := 0; k < p.Arity; k++ {
				e.Min = append(e.Min, minNode)
				e.Max = append(e.Max, maxNode)
			}
		}
	}

	minOut := 0
	maxOut := nodes + 2*p.Inputs
	if p.Columns > p.LevelsBack {
		minOut = (p.Columns-p.LevelsBack)*p.Rows + p.Inputs
	}
	for i := 0; i < p.Outputs; i++ {
		e.Min = append(e.Min, minOut)
		e.Max = append(e.Max, maxOut)
	}

	return e, nil
}

// Length is the number of genes in a genotype of this encoding.
func (e *Encoding) Length() int {
	return len(e.Min)
}

// Validate checks the length of genotype and that every gene lies in its range.
func (e *Encoding) Validate(genotype []int) error {
	if len(genotype) != e.Length() {
		return fmt.Errorf("genotype has %d genes, encoding requires %d", len(genotype), e.Length())
	}
	for i, v := range genotype {
		if v < e.Min[i] || v >= e.Max[i] {
			return fmt.Errorf("%w: gene %d = %d, want [%d, %d)", ErrOutOfBounds, i, v, e.Min[i], e.Max[i])
		}
	}
	return nil
}

// Random samples a genotype uniformly within the bounds.
func (e *Encoding) Random(rng *rand.Rand) []int {
	out := make([]int, e.Length())
	for i := range out {
		out[i] = e.Min[i] + rng.IntN(e.Max[i]-e.Min[i])
	}
	return out
}
