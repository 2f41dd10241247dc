package fitness

import (
	"errors"

	"github.com/specialistvlad/cgpgrid/internal/graph"
)

// Sample pairs target values with a program's estimates for the same rows.
type Sample struct {
	Original  []float64
	Estimated []float64
}

// Scores are the regression statistics of one partition.
type Scores struct {
	MeanSquaredError  float64
	RSquared          float64
	MeanRelativeError float64
	Hits              LimitHits
}

// Summary describes a retained solution.
type Summary struct {
	ActiveNodes    int
	InactiveNodes  int
	SolutionString string
	Training       Scores
	Test           Scores
	HasTest        bool
}

// Summarize scores g on training and, if present, test data. Estimates are
// clamped into limit first.
func Summarize(g *graph.Graph, limit Limit, training, test Sample) (Summary, error) {
	s := Summary{
		ActiveNodes:    g.ActiveCount(),
		InactiveNodes:  g.InactiveCount(),
		SolutionString: g.SolutionString,
	}

	var err error
	s.Training, err = score(limit, training)
	if err != nil {
		return Summary{}, err
	}
	if len(test.Original) > 0 {
		s.Test, err = score(limit, test)
		if err != nil {
			return Summary{}, err
		}
		s.HasTest = true
	}
	return s, nil
}

func score(limit Limit, sample Sample) (Scores, error) {
	estimated, hits := limit.Clamp(sample.Estimated)

	mse, err := MeanSquaredError(sample.Original, estimated)
	if err != nil {
		return Scores{}, err
	}
	r2, err := RSquared(sample.Original, estimated)
	if err != nil {
		return Scores{}, err
	}
	rel, err := MeanRelativeError(sample.Original, estimated)
	if err != nil && !errors.Is(err, ErrNoData) {
		return Scores{}, err
	}
	return Scores{
		MeanSquaredError:  mse,
		RSquared:          r2,
		MeanRelativeError: rel,
		Hits:              hits,
	}, nil
}

// IsBetter reports whether candidate should replace current as the retained
// solution: it must improve on both partitions in mean squared error, R² or
// relative error. Without test data only training scores are compared.
func IsBetter(current, candidate Summary) bool {
	both := func(better func(old, new Scores) bool) bool {
		if !better(current.Training, candidate.Training) {
			return false
		}
		return !current.HasTest || !candidate.HasTest || better(current.Test, candidate.Test)
	}

	if both(func(o, n Scores) bool { return n.MeanSquaredError < o.MeanSquaredError }) {
		return true
	}
	if both(func(o, n Scores) bool { return n.RSquared > o.RSquared }) {
		return true
	}
	return both(func(o, n Scores) bool { return n.MeanRelativeError < o.MeanRelativeError })
}
