package executor

import (
	"fmt"
	"math/rand/v2"

	"github.com/specialistvlad/cgpgrid/internal/genotype"
)

// RandomIndividuals samples n genotypes within the bounds of enc. The same
// seed always yields the same individuals.
func RandomIndividuals(enc *genotype.Encoding, n int, seed uint64) []Individual {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]Individual, n)
	for i := range out {
		out[i] = Individual{
			Name:     fmt.Sprintf("random-%d", i),
			Genotype: enc.Random(rng),
		}
	}
	return out
}
