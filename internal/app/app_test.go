package app

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/cgpgrid/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticLoader hands out a fixed model.
type staticLoader struct {
	model *config.Model
	err   error
}

func (l *staticLoader) Load(context.Context, ...string) (*config.Model, error) {
	return l.model, l.err
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	content := "x,z,y\n1,0,3\n2,0,5\n3,0,7\n4,0,9\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestApp(t *testing.T, model *config.Model) (*App, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg := &Config{ConfigPath: "unused", LogLevel: "debug", LogFormat: "text", WorkerCount: 2}
	a, err := NewApp(context.Background(), &buf, cfg, &staticLoader{model: model})
	require.NoError(t, err)
	return a, &buf
}

func TestNewApp_AppliesDefaultsAndValidates(t *testing.T) {
	model := &config.Model{
		Problem:    &config.Problem{Dataset: "d.csv", Target: "y"},
		Grid:       &config.Grid{Rows: 1, Columns: 3},
		Population: &config.Population{Random: 1},
	}
	a, buf := newTestApp(t, model)

	assert.Equal(t, 3, a.Model().Grid.LevelsBack)
	assert.Equal(t, 1.0, a.Model().Problem.TrainingFraction)
	assert.NotEmpty(t, a.RunID())
	assert.Contains(t, buf.String(), "run_id="+a.RunID())

	_, err := NewApp(context.Background(), buf, &Config{WorkerCount: 1},
		&staticLoader{model: &config.Model{}})
	require.ErrorContains(t, err, "invalid configuration")

	_, err = NewApp(context.Background(), buf, &Config{WorkerCount: 1},
		&staticLoader{err: errors.New("boom")})
	require.ErrorContains(t, err, "failed to load configuration: boom")
}

func TestRun_ConfiguredAndRandomIndividuals(t *testing.T) {
	// y = 2x + 1 has no exact program without constants; triple = 3x scores
	// an MSE of 3.5 and bounds the best from above.
	model := &config.Model{
		Problem: &config.Problem{Dataset: writeDataset(t), Target: "y", Inputs: []string{"x"}},
		Grid:    &config.Grid{Rows: 1, Columns: 2},
		Population: &config.Population{
			Seed:   9,
			Random: 10,
			Individuals: []*config.Individual{
				// id 1 = x + x, id 2 = (x + x) + x, output -> 2
				{Name: "triple", Genotype: []int{1, 0, 0, 1, 1, 0, 2}},
			},
		},
	}
	a, buf := newTestApp(t, model)

	best, err := a.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Contains(t, buf.String(), "Evaluation finished.")
	assert.Equal(t, 11, a.interp.EvaluatedSolutions())
	assert.LessOrEqual(t, best.Summary.Training.MeanSquaredError, 3.5)
}

func TestRun_DefaultInputsExcludeTarget(t *testing.T) {
	model := &config.Model{
		Problem: &config.Problem{Dataset: writeDataset(t), Target: "y", TrainingFraction: 0.5},
		Grid:    &config.Grid{Rows: 1, Columns: 1},
		Population: &config.Population{Individuals: []*config.Individual{
			// inputs are x=0, z=1; id 2 = x + z; output -> 2
			{Name: "sum", Genotype: []int{1, 0, 1, 2}},
		}},
	}
	a, buf := newTestApp(t, model)

	best, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "(x) + (z)=y", best.Summary.SolutionString)
	assert.True(t, best.Summary.HasTest)
	assert.Contains(t, buf.String(), "test_mse=")
}

func TestRun_UnknownTarget(t *testing.T) {
	model := &config.Model{
		Problem:    &config.Problem{Dataset: writeDataset(t), Target: "missing"},
		Grid:       &config.Grid{Rows: 1, Columns: 1},
		Population: &config.Population{Random: 1},
	}
	a, _ := newTestApp(t, model)

	_, err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown column")
}

func TestHealthMux(t *testing.T) {
	model := &config.Model{
		Problem:    &config.Problem{Dataset: "d.csv", Target: "y"},
		Grid:       &config.Grid{Rows: 1, Columns: 1},
		Population: &config.Population{Random: 1},
	}
	a, _ := newTestApp(t, model)
	mux := a.newHealthMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK\n", rec.Body.String())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cgpgrid_interpreter_evaluated_solutions 0")
}

func TestHealthCheckServer_DisabledIsNoop(t *testing.T) {
	model := &config.Model{
		Problem:    &config.Problem{Dataset: "d.csv", Target: "y"},
		Grid:       &config.Grid{Rows: 1, Columns: 1},
		Population: &config.Population{Random: 1},
	}
	a, _ := newTestApp(t, model)

	a.startHealthCheckServer()
	assert.Nil(t, a.httpServer)
	require.NoError(t, a.closeHealthCheckServer())
}

func TestNewApp_RejectsInvalidLogLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{ConfigPath: "unused", LogLevel: "loud", WorkerCount: 1}

	_, err := NewApp(context.Background(), &buf, cfg, &staticLoader{err: errors.New("not reached")})
	require.ErrorContains(t, err, `invalid log level "loud"`)
	assert.Empty(t, buf.String())
}
