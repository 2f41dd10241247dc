package executor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/specialistvlad/cgpgrid/internal/dataset"
	"github.com/specialistvlad/cgpgrid/internal/fitness"
	"github.com/specialistvlad/cgpgrid/internal/genotype"
	"github.com/specialistvlad/cgpgrid/internal/graph"
	"github.com/specialistvlad/cgpgrid/internal/interpreter"
	"github.com/specialistvlad/cgpgrid/internal/metrics"
	"github.com/specialistvlad/cgpgrid/internal/opcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Genotypes for a 1x2 grid over a single input x; node ids are x=0, 1, 2
// and the output 3.
var (
	double   = Individual{Name: "double", Genotype: []int{int(opcode.Add), 0, 0, int(opcode.ConstA), 0, 0, 1}}
	square   = Individual{Name: "square", Genotype: []int{int(opcode.Square), 0, 0, int(opcode.ConstA), 0, 0, 1}}
	identity = Individual{Name: "identity", Genotype: []int{int(opcode.ConstA), 0, 0, int(opcode.ConstA), 0, 0, 0}}
)

func newProblem(t *testing.T, functions int, trainingFraction float64) *Problem {
	t.Helper()
	x := []float64{1, 2, 3, 4, 5, 6}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 2 * v
	}
	tbl, err := dataset.NewTable([]string{"x", "y"}, [][]float64{x, y})
	require.NoError(t, err)

	part, err := dataset.Split(tbl.Rows(), trainingFraction)
	require.NoError(t, err)

	enc, err := genotype.NewEncoding(genotype.Params{
		Inputs: 1, Outputs: 1, Arity: 2, Rows: 1, Columns: 2, LevelsBack: 2, Functions: functions,
	})
	require.NoError(t, err)

	return &Problem{
		Dataset:   tbl,
		Inputs:    []string{"x"},
		Target:    "y",
		Partition: part,
		Limit:     fitness.Unbounded,
		Encoding:  enc,
	}
}

func newExecutor(t *testing.T, p *Problem, interp *interpreter.Interpreter, rec *metrics.Recorder) *Executor {
	t.Helper()
	e, err := New(p, interp, 4, rec)
	require.NoError(t, err)
	return e
}

func TestEvaluate_SelectsBest(t *testing.T) {
	interp := interpreter.New()
	e := newExecutor(t, newProblem(t, opcode.Count(), 0.5), interp, nil)

	report, err := e.Evaluate(context.Background(), []Individual{square, double, identity})
	require.NoError(t, err)

	require.Len(t, report.Results, 3)
	assert.Equal(t, "square", report.Results[0].Name)
	assert.InDelta(t, 10.0/3, report.Results[0].TrainingMSE, 1e-12)
	assert.Equal(t, 0.0, report.Results[1].TrainingMSE)
	assert.InDelta(t, 14.0/3, report.Results[2].TrainingMSE, 1e-12)

	best := report.Best
	require.NotNil(t, best)
	assert.Equal(t, "double", best.Name)
	assert.True(t, report.Improved)
	assert.Same(t, best, e.Retained())

	s := best.Summary
	assert.Equal(t, "(x) + (x)=y", s.SolutionString)
	assert.True(t, s.HasTest)
	assert.Equal(t, 0.0, s.Training.MeanSquaredError)
	assert.Equal(t, 0.0, s.Test.MeanSquaredError)
	assert.InDelta(t, 1.0, s.Test.RSquared, 1e-12)
	assert.Equal(t, 3, s.ActiveNodes) // x, the adder and the output
	assert.Equal(t, 1, s.InactiveNodes)

	// Three training evaluations plus one on the test rows for the best.
	assert.Equal(t, 4, interp.EvaluatedSolutions())
}

func TestEvaluate_BestGraphIsDetached(t *testing.T) {
	e := newExecutor(t, newProblem(t, opcode.Count(), 1), interpreter.New(), nil)

	report, err := e.Evaluate(context.Background(), []Individual{double})
	require.NoError(t, err)

	live := report.Results[0].Graph
	best := report.Best.Graph
	require.NotSame(t, live, best)

	adder, ok := best.Node(1)
	require.True(t, ok)
	assert.Equal(t, "+", adder.Name)

	liveAdder, ok := live.Node(1)
	require.True(t, ok)
	assert.Empty(t, liveAdder.Name, "annotating the retained copy must not touch the live graph")
	assert.Empty(t, live.SolutionString)

	liveAdder.Inputs[0] = 99
	assert.Equal(t, []int{0, 0}, adder.Inputs)
}

func TestEvaluate_RetainsAcrossBatches(t *testing.T) {
	e := newExecutor(t, newProblem(t, opcode.Count(), 0.5), interpreter.New(), nil)

	report, err := e.Evaluate(context.Background(), []Individual{identity})
	require.NoError(t, err)
	assert.True(t, report.Improved)

	report, err = e.Evaluate(context.Background(), []Individual{square})
	require.NoError(t, err)
	assert.False(t, report.Improved, "square is worse than identity on the test rows")
	assert.Equal(t, "identity", e.Retained().Name)

	report, err = e.Evaluate(context.Background(), []Individual{double})
	require.NoError(t, err)
	assert.True(t, report.Improved)
	assert.Equal(t, "double", e.Retained().Name)
}

func TestEvaluate_UnsupportedOperatorIsFatal(t *testing.T) {
	rec := metrics.New(func() float64 { return 0 })
	// An encoding wider than the operator table lets unknown indices through.
	e := newExecutor(t, newProblem(t, opcode.Count()+4, 1), interpreter.New(), rec)

	bad := Individual{Name: "bad", Genotype: []int{opcode.Count() + 1, 0, 0, int(opcode.ConstA), 0, 0, 1}}
	_, err := e.Evaluate(context.Background(), []Individual{double, bad})

	require.Error(t, err)
	assert.True(t, errors.Is(err, opcode.ErrUnsupported))
	assert.Contains(t, err.Error(), `individual "bad"`)
	assert.Nil(t, e.Retained())
	expected := `
# HELP cgpgrid_evaluation_failures_total Number of individuals whose evaluation failed, by reason.
# TYPE cgpgrid_evaluation_failures_total counter
cgpgrid_evaluation_failures_total{reason="unsupported_operator"} 1
`
	require.NoError(t, testutil.GatherAndCompare(rec.Registry(), strings.NewReader(expected), "cgpgrid_evaluation_failures_total"))
}

func TestEvaluate_ConstraintViolationIsFatal(t *testing.T) {
	interp := interpreter.New(interpreter.WithConstraint(interpreter.ConstraintFunc(
		func(n *graph.Node, v float64) error {
			if n.Kind == graph.Function && v > 10 {
				return &interpreter.ConstraintViolationError{NodeID: n.ID, Message: "value too large"}
			}
			return nil
		})))
	e := newExecutor(t, newProblem(t, opcode.Count(), 1), interp, nil)

	_, err := e.Evaluate(context.Background(), []Individual{double})
	require.Error(t, err)
	assert.True(t, errors.Is(err, interpreter.ErrConstraintViolation))
}

func TestEvaluate_InvalidGenotype(t *testing.T) {
	e := newExecutor(t, newProblem(t, opcode.Count(), 1), interpreter.New(), nil)

	_, err := e.Evaluate(context.Background(), []Individual{{Name: "short", Genotype: []int{1, 0, 0}}})
	require.ErrorContains(t, err, "genotype has 3 genes")

	_, err = e.Evaluate(context.Background(), []Individual{{Name: "far", Genotype: []int{1, 0, 0, 0, 0, 0, 9}}})
	require.True(t, errors.Is(err, genotype.ErrOutOfBounds))

	_, err = e.Evaluate(context.Background(), nil)
	require.Error(t, err)
}

func TestEvaluate_CancelledContext(t *testing.T) {
	e := newExecutor(t, newProblem(t, opcode.Count(), 1), interpreter.New(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Evaluate(ctx, []Individual{double})
	require.ErrorIs(t, err, context.Canceled)
}

func TestEvaluate_ConcurrentCounter(t *testing.T) {
	interp := interpreter.New()
	rec := metrics.New(func() float64 { return float64(interp.EvaluatedSolutions()) })
	p := newProblem(t, opcode.Count(), 1)
	e := newExecutor(t, p, interp, rec)

	individuals := RandomIndividuals(p.Encoding, 200, 1)
	report, err := e.Evaluate(context.Background(), individuals)
	require.NoError(t, err)

	// No test rows, so exactly one evaluation per individual.
	assert.Equal(t, 200, interp.EvaluatedSolutions())
	for i, r := range report.Results {
		assert.Equal(t, fmt.Sprintf("random-%d", i), r.Name)
		assert.False(t, math.IsNaN(r.TrainingMSE))
		assert.GreaterOrEqual(t, r.TrainingMSE, report.Best.Summary.Training.MeanSquaredError)
	}
}

func TestRandomIndividuals(t *testing.T) {
	p := newProblem(t, opcode.Count(), 1)

	a := RandomIndividuals(p.Encoding, 10, 7)
	b := RandomIndividuals(p.Encoding, 10, 7)
	assert.Equal(t, a, b)
	for _, ind := range a {
		require.NoError(t, p.Encoding.Validate(ind.Genotype))
	}
}

func TestNew_Errors(t *testing.T) {
	p := newProblem(t, opcode.Count(), 1)

	_, err := New(p, interpreter.New(), 0, nil)
	require.ErrorContains(t, err, "worker count")

	bad := *p
	bad.Inputs = []string{"x", "z"}
	_, err = New(&bad, interpreter.New(), 1, nil)
	require.ErrorContains(t, err, "encoding expects 1 inputs")

	bad = *p
	bad.Target = "missing"
	_, err = New(&bad, interpreter.New(), 1, nil)
	require.ErrorIs(t, err, dataset.ErrUnknownColumn)
}
