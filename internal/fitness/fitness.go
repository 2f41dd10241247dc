package fitness

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoData is returned when there is nothing to score.
var ErrNoData = errors.New("no data to score")

func checkPair(original, estimated []float64) error {
	if len(original) != len(estimated) {
		return fmt.Errorf("got %d target values but %d estimates", len(original), len(estimated))
	}
	if len(original) == 0 {
		return ErrNoData
	}
	return nil
}

// MeanSquaredError is the fitness minimized by the search. An infinite error
// is reported as math.MaxFloat64.
func MeanSquaredError(original, estimated []float64) (float64, error) {
	if err := checkPair(original, estimated); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := range original {
		d := estimated[i] - original[i]
		sum += d * d
	}
	mse := sum / float64(len(original))
	if math.IsInf(mse, 0) {
		mse = math.MaxFloat64
	}
	return mse, nil
}

// RSquared is the squared Pearson correlation between target and estimates.
// It is zero when either series is constant or the result is not finite.
func RSquared(original, estimated []float64) (float64, error) {
	if err := checkPair(original, estimated); err != nil {
		return 0, err
	}
	n := float64(len(original))
	var meanO, meanE float64
	for i := range original {
		meanO += original[i]
		meanE += estimated[i]
	}
	meanO /= n
	meanE /= n

	var cov, varO, varE float64
	for i := range original {
		do := original[i] - meanO
		de := estimated[i] - meanE
		cov += do * de
		varO += do * do
		varE += de * de
	}
	if varO == 0 || varE == 0 {
		return 0, nil
	}
	r := cov / math.Sqrt(varO*varE)
	r2 := r * r
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		return 0, nil
	}
	return r2, nil
}

// MeanRelativeError is the mean of |estimate - target| / |target| over all
// rows with a non-zero target.
func MeanRelativeError(original, estimated []float64) (float64, error) {
	if err := checkPair(original, estimated); err != nil {
		return 0, err
	}
	sum := 0.0
	count := 0
	for i := range original {
		if original[i] == 0 {
			continue
		}
		sum += math.Abs(estimated[i]-original[i]) / math.Abs(original[i])
		count++
	}
	if count == 0 {
		return 0, ErrNoData
	}
	return sum / float64(count), nil
}
