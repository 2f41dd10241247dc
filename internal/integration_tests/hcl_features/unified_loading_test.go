package integration_tests

import (
	"testing"

	"github.com/specialistvlad/cgpgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test for: blocks spread across files are merged and genotype helpers work
func TestHCLFeatures_SplitFilesAndGenotypeFunctions(t *testing.T) {
	files := map[string]string{
		"data/points.csv": testutil.CSV([]string{"a", "b", "y"},
			[]float64{1, 2, 2},
			[]float64{2, 3, 6},
			[]float64{3, 4, 12},
		),
		"runs/problem.hcl": `
problem {
  dataset = "../data/points.csv"
  target  = "y"
  inputs  = ["a", "b"]
}
`,
		"runs/grid.hcl": `
grid {
  rows    = 1
  columns = 2
}
`,
		"runs/population.hcl": `
population {
  # node 2 = a * b, node 3 = const(node 2); output -> node 2
  individual "product" {
    genotype = concat([3], range(2), [0, 2, 2], [2])
  }
}
`,
	}

	result := testutil.RunIntegrationTest(t, files, testutil.HarnessOptions{ConfigPath: "runs"})
	testutil.AssertBestSolution(t, result, "(a) * (b)=y")

	model := result.App.Model()
	require.Len(t, model.Population.Individuals, 1)
	assert.Equal(t, []int{3, 0, 1, 0, 2, 2, 2}, model.Population.Individuals[0].Genotype)
	assert.Equal(t, 0.0, result.Best.Summary.Training.MeanSquaredError)
}
