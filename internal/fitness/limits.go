package fitness

import "math"

// Limit is the range estimates are clamped into before being reported.
type Limit struct {
	Lower float64
	Upper float64
}

// Unbounded leaves every finite estimate untouched.
var Unbounded = Limit{Lower: -math.MaxFloat64, Upper: math.MaxFloat64}

// LimitHits counts how often estimates fell outside a Limit.
type LimitHits struct {
	Lower int
	Upper int
	NaN   int
}

// Clamp returns a copy of values limited to [l.Lower, l.Upper]. NaN values
// are kept and counted.
func (l Limit) Clamp(values []float64) ([]float64, LimitHits) {
	var hits LimitHits
	out := make([]float64, len(values))
	for i, v := range values {
		switch {
		case math.IsNaN(v):
			hits.NaN++
		case v < l.Lower:
			v = l.Lower
			hits.Lower++
		case v > l.Upper:
			v = l.Upper
			hits.Upper++
		}
		out[i] = v
	}
	return out, hits
}
