package graph

import (
	"fmt"
)

// Kind distinguishes the three roles a node can have.
type Kind int

const (
	Function Kind = iota
	Input
	Output
)

func (k Kind) String() string {
	switch k {
	case Function:
		return "function"
	case Input:
		return "input"
	case Output:
		return "output"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is one vertex of a decoded program.
type Node struct {
	ID   int
	Kind Kind
	// Function is the raw operator index; only meaningful for Function nodes.
	Function int
	// Inputs holds the ids this node reads from, in operand order.
	Inputs []int
	Active bool
	// Name is the bound column name for Input and Output nodes, and the
	// operator symbol for Function nodes once the graph is annotated.
	Name string
}

// Graph is a decoded CGP program.
type Graph struct {
	Rows    int
	Columns int

	nodes  []*Node
	inputs []int
	output int

	SolutionString string
}

// New creates an empty graph for a grid of the given dimensions.
func New(rows, columns int) *Graph {
	return &Graph{
		Rows:    rows,
		Columns: columns,
		output:  -1,
	}
}

// AddNode appends n to the graph. Ids must be added contiguously starting at
// zero; Input and Output nodes are registered in their designated slots.
func (g *Graph) AddNode(n *Node) error {
	if n.ID != len(g.nodes) {
		return fmt.Errorf("node id %d out of sequence: expected %d", n.ID, len(g.nodes))
	}
	switch n.Kind {
	case Input:
		g.inputs = append(g.inputs, n.ID)
	case Output:
		if g.output >= 0 {
			return fmt.Errorf("graph already has output node %d", g.output)
		}
		g.output = n.ID
	}
	g.nodes = append(g.nodes, n)
	return nil
}

// Node returns the node with the given id.
func (g *Graph) Node(id int) (*Node, bool) {
	if id < 0 || id >= len(g.nodes) {
		return nil, false
	}
	return g.nodes[id], true
}

// Nodes returns all nodes in id order. The slice is a copy; the nodes are not.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// InputNodes returns the Input nodes in variable order.
func (g *Graph) InputNodes() []*Node {
	out := make([]*Node, len(g.inputs))
	for i, id := range g.inputs {
		out[i] = g.nodes[id]
	}
	return out
}

// OutputNode returns the designated Output node, or nil if none was added.
func (g *Graph) OutputNode() *Node {
	if g.output < 0 {
		return nil
	}
	return g.nodes[g.output]
}

// ActiveCount returns the number of nodes reachable from the Output node,
// including Input nodes and the Output node itself.
func (g *Graph) ActiveCount() int {
	count := 0
	for _, n := range g.nodes {
		if n.Active {
			count++
		}
	}
	return count
}

// InactiveCount returns the number of nodes with no effect on the result.
func (g *Graph) InactiveCount() int {
	return len(g.nodes) - g.ActiveCount()
}

// Bind names the Input nodes after the selected predictor variables and the
// Output node after the target variable.
func (g *Graph) Bind(inputNames []string, target string) error {
	if len(inputNames) != len(g.inputs) {
		return fmt.Errorf("graph has %d inputs but %d variable names were given", len(g.inputs), len(inputNames))
	}
	for i, id := range g.inputs {
		g.nodes[id].Name = inputNames[i]
	}
	if out := g.OutputNode(); out != nil {
		out.Name = target
	}
	return nil
}

// Clone returns a deep copy of g. No node, slice or map is shared with the
// original, so either graph may be annotated without affecting the other.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		Rows:           g.Rows,
		Columns:        g.Columns,
		nodes:          make([]*Node, len(g.nodes)),
		inputs:         append([]int(nil), g.inputs...),
		output:         g.output,
		SolutionString: g.SolutionString,
	}
	for i, n := range g.nodes {
		cp := *n
		cp.Inputs = append([]int(nil), n.Inputs...)
		c.nodes[i] = &cp
	}
	return c
}
