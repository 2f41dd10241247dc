package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertBestSolution checks that the run finished and logged the given
// solution string as its best.
func AssertBestSolution(t *testing.T, result *HarnessResult, solution string) {
	t.Helper()
	require.NoError(t, result.Err)
	require.NotNil(t, result.Best)
	require.Equal(t, solution, result.Best.Summary.SolutionString)

	expected := fmt.Sprintf("solution=%q", solution)
	require.True(t,
		strings.Contains(result.LogOutput, expected),
		"expected %s in the run log", expected,
	)
}
