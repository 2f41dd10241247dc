package fitness

import (
	"errors"
	"math"
	"testing"

	"github.com/specialistvlad/cgpgrid/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanSquaredError(t *testing.T) {
	mse, err := MeanSquaredError([]float64{1, 2, 3}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 0.0, mse)

	mse, err = MeanSquaredError([]float64{0, 0}, []float64{1, 3})
	require.NoError(t, err)
	assert.Equal(t, 5.0, mse)

	mse, err = MeanSquaredError([]float64{0}, []float64{math.MaxFloat64})
	require.NoError(t, err)
	assert.Equal(t, math.MaxFloat64, mse, "overflowing error is clamped")

	_, err = MeanSquaredError(nil, nil)
	assert.True(t, errors.Is(err, ErrNoData))
	_, err = MeanSquaredError([]float64{1}, []float64{1, 2})
	assert.ErrorContains(t, err, "1 target values but 2 estimates")
}

func TestRSquared(t *testing.T) {
	r2, err := RSquared([]float64{1, 2, 3, 4}, []float64{2, 4, 6, 8})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r2, 1e-12)

	r2, err = RSquared([]float64{1, 2, 3, 4}, []float64{4, 3, 2, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r2, 1e-12, "anti-correlation still explains the variance")

	r2, err = RSquared([]float64{1, 2, 3}, []float64{5, 5, 5})
	require.NoError(t, err)
	assert.Equal(t, 0.0, r2)

	r2, err = RSquared([]float64{1, 2}, []float64{math.MaxFloat64, -math.MaxFloat64})
	require.NoError(t, err)
	assert.Equal(t, 0.0, r2)
}

func TestMeanRelativeError(t *testing.T) {
	rel, err := MeanRelativeError([]float64{2, 4, 0}, []float64{3, 2, 100})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, rel, 1e-12)

	_, err = MeanRelativeError([]float64{0}, []float64{1})
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestLimitClamp(t *testing.T) {
	l := Limit{Lower: -1, Upper: 1}
	got, hits := l.Clamp([]float64{-5, 0.5, 3, math.NaN()})

	assert.Equal(t, -1.0, got[0])
	assert.Equal(t, 0.5, got[1])
	assert.Equal(t, 1.0, got[2])
	assert.True(t, math.IsNaN(got[3]))
	assert.Equal(t, LimitHits{Lower: 1, Upper: 1, NaN: 1}, hits)

	got, hits = Unbounded.Clamp([]float64{math.MaxFloat64, -3})
	assert.Equal(t, []float64{math.MaxFloat64, -3}, got)
	assert.Equal(t, LimitHits{}, hits)
}

func sampleGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New(1, 2)
	require.NoError(t, g.AddNode(&graph.Node{ID: 0, Kind: graph.Input, Active: true}))
	require.NoError(t, g.AddNode(&graph.Node{ID: 1, Kind: graph.Function, Function: 13, Inputs: []int{0}, Active: true}))
	require.NoError(t, g.AddNode(&graph.Node{ID: 2, Kind: graph.Function, Function: 5, Inputs: []int{0}}))
	require.NoError(t, g.AddNode(&graph.Node{ID: 3, Kind: graph.Output, Inputs: []int{1}, Active: true}))
	g.SolutionString = "^2(x)=y"
	return g
}

func TestSummarize(t *testing.T) {
	g := sampleGraph(t)
	training := Sample{Original: []float64{1, 4, 9}, Estimated: []float64{1, 4, 9}}
	test := Sample{Original: []float64{16, 25}, Estimated: []float64{16, math.MaxFloat64}}

	s, err := Summarize(g, Limit{Lower: 0, Upper: 100}, training, test)
	require.NoError(t, err)

	assert.Equal(t, 3, s.ActiveNodes)
	assert.Equal(t, 1, s.InactiveNodes)
	assert.Equal(t, "^2(x)=y", s.SolutionString)
	assert.Equal(t, 0.0, s.Training.MeanSquaredError)
	assert.InDelta(t, 1.0, s.Training.RSquared, 1e-12)
	assert.True(t, s.HasTest)
	assert.Equal(t, 1, s.Test.Hits.Upper)
	assert.InDelta(t, (75.0*75.0)/2, s.Test.MeanSquaredError, 1e-9)
}

func TestSummarize_WithoutTestData(t *testing.T) {
	s, err := Summarize(sampleGraph(t), Unbounded, Sample{Original: []float64{0, 0}, Estimated: []float64{0, 0}}, Sample{})
	require.NoError(t, err)
	assert.False(t, s.HasTest)
	assert.Equal(t, 0.0, s.Training.MeanRelativeError, "all-zero targets have no relative error")

	_, err = Summarize(sampleGraph(t), Unbounded, Sample{}, Sample{})
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestIsBetter(t *testing.T) {
	current := Summary{
		Training: Scores{MeanSquaredError: 10, RSquared: 0.5, MeanRelativeError: 0.3},
		Test:     Scores{MeanSquaredError: 12, RSquared: 0.4, MeanRelativeError: 0.4},
		HasTest:  true,
	}

	better := current
	better.Training.MeanSquaredError = 5
	better.Test.MeanSquaredError = 6
	assert.True(t, IsBetter(current, better))

	overfit := current
	overfit.Training.MeanSquaredError = 1
	overfit.Test.MeanSquaredError = 50
	assert.False(t, IsBetter(current, overfit))

	correlated := current
	correlated.Training.RSquared = 0.9
	correlated.Test.RSquared = 0.8
	assert.True(t, IsBetter(current, correlated))

	relative := current
	relative.Training.MeanRelativeError = 0.1
	relative.Test.MeanRelativeError = 0.1
	assert.True(t, IsBetter(current, relative))

	assert.False(t, IsBetter(current, current))

	trainingOnly := Summary{Training: Scores{MeanSquaredError: 1}}
	assert.True(t, IsBetter(Summary{Training: Scores{MeanSquaredError: 2}}, trainingOnly))
}
