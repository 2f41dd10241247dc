package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/cgpgrid/internal/ctxlog"
	"github.com/specialistvlad/cgpgrid/internal/dataset"
	"github.com/specialistvlad/cgpgrid/internal/decoder"
	"github.com/specialistvlad/cgpgrid/internal/fitness"
	"github.com/specialistvlad/cgpgrid/internal/genotype"
	"github.com/specialistvlad/cgpgrid/internal/graph"
	"github.com/specialistvlad/cgpgrid/internal/interpreter"
	"github.com/specialistvlad/cgpgrid/internal/metrics"
	"github.com/specialistvlad/cgpgrid/internal/opcode"
	"golang.org/x/sync/errgroup"
)

// Problem binds a dataset to the variables and grid of a regression.
type Problem struct {
	Dataset   dataset.Dataset
	Inputs    []string
	Target    string
	Partition dataset.Partition
	Limit     fitness.Limit
	Encoding  *genotype.Encoding
}

// Individual is one genotype to evaluate.
type Individual struct {
	Name     string
	Genotype []int
}

// Result is the fitness of one individual.
type Result struct {
	Name        string
	Genotype    []int
	Graph       *graph.Graph
	TrainingMSE float64
	estimates   []float64
}

// Solution is a retained best individual. Its graph is detached from every
// graph of the batch it came from.
type Solution struct {
	Name     string
	Genotype []int
	Graph    *graph.Graph
	Summary  fitness.Summary
}

// Report describes one evaluated batch.
type Report struct {
	// Results are in the order the individuals were given.
	Results []Result
	// Best is the best individual of this batch.
	Best *Solution
	// Improved is true when Best replaced the retained solution.
	Improved bool
}

// Executor evaluates batches of individuals with a bounded worker pool.
type Executor struct {
	problem  *Problem
	interp   *interpreter.Interpreter
	workers  int
	recorder *metrics.Recorder

	original []float64
	retained *Solution
}

// New validates the problem and prepares an executor. recorder may be nil.
func New(p *Problem, interp *interpreter.Interpreter, workers int, recorder *metrics.Recorder) (*Executor, error) {
	if workers < 1 {
		return nil, fmt.Errorf("worker count must be positive, got %d", workers)
	}
	if p.Encoding == nil {
		return nil, errors.New("problem has no genotype encoding")
	}
	if p.Encoding.Inputs != len(p.Inputs) {
		return nil, fmt.Errorf("encoding expects %d inputs, problem has %d", p.Encoding.Inputs, len(p.Inputs))
	}
	if len(p.Partition.Training) == 0 {
		return nil, errors.New("problem has no training rows")
	}
	original, err := dataset.Select(p.Dataset, p.Target, p.Partition.Training)
	if err != nil {
		return nil, fmt.Errorf("failed to read target column: %w", err)
	}
	for _, in := range p.Inputs {
		if _, err := p.Dataset.Values(in); err != nil {
			return nil, fmt.Errorf("failed to read input column: %w", err)
		}
	}

	return &Executor{
		problem:  p,
		interp:   interp,
		workers:  workers,
		recorder: recorder,
		original: original,
	}, nil
}

// Retained returns the best solution seen so far, or nil.
func (e *Executor) Retained() *Solution {
	return e.retained
}

// Evaluate computes the training fitness of every individual. The first
// fatal error cancels the remaining work and is returned.
func (e *Executor) Evaluate(ctx context.Context, individuals []Individual) (*Report, error) {
	logger := ctxlog.FromContext(ctx)
	if len(individuals) == 0 {
		return nil, errors.New("no individuals to evaluate")
	}
	logger.Debug("Executor starting batch.", "individuals", len(individuals), "workers", e.workers)

	results := make([]Result, len(individuals))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, ind := range individuals {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := e.evaluate(gctx, ind)
			if err != nil {
				e.observeFailure(err)
				return fmt.Errorf("individual %q: %w", ind.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Batch evaluation failed.", "error", err)
		return nil, err
	}

	best := 0
	for i := range results {
		if results[i].TrainingMSE < results[best].TrainingMSE {
			best = i
		}
	}

	solution, err := e.detach(ctx, results[best])
	if err != nil {
		return nil, fmt.Errorf("individual %q: %w", results[best].Name, err)
	}

	report := &Report{Results: results, Best: solution}
	if e.retained == nil || fitness.IsBetter(e.retained.Summary, solution.Summary) {
		e.retained = solution
		report.Improved = true
		if e.recorder != nil {
			e.recorder.SetBestFitness(solution.Summary.Training.MeanSquaredError)
		}
		logger.Info("New best solution retained.",
			"name", solution.Name,
			"training_mse", solution.Summary.Training.MeanSquaredError,
			"solution", solution.Summary.SolutionString,
		)
	}
	logger.Debug("Executor finished batch.", "best", solution.Name, "improved", report.Improved)
	return report, nil
}

// evaluate decodes one individual into a fresh graph and scores it on the
// training rows.
func (e *Executor) evaluate(ctx context.Context, ind Individual) (Result, error) {
	start := time.Now()
	enc := e.problem.Encoding
	if err := enc.Validate(ind.Genotype); err != nil {
		return Result{}, err
	}

	g, err := decoder.Decode(enc.Inputs, enc.Outputs, enc.Arity, enc.Rows, enc.Columns, ind.Genotype)
	if err != nil {
		return Result{}, err
	}
	if err := g.Bind(e.problem.Inputs, e.problem.Target); err != nil {
		return Result{}, err
	}

	estimates, err := e.interp.Evaluate(g, e.problem.Dataset, e.problem.Partition.Training)
	if err != nil {
		return Result{}, err
	}
	mse, err := fitness.MeanSquaredError(e.original, estimates)
	if err != nil {
		return Result{}, err
	}

	if e.recorder != nil {
		e.recorder.ObserveIndividual(g.ActiveCount(), time.Since(start).Seconds())
	}
	ctxlog.FromContext(ctx).Debug("Individual evaluated.", "name", ind.Name, "training_mse", mse, "active_nodes", g.ActiveCount())
	return Result{
		Name:        ind.Name,
		Genotype:    ind.Genotype,
		Graph:       g,
		TrainingMSE: mse,
		estimates:   estimates,
	}, nil
}

// detach deep copies the graph of res, annotates the copy and scores it on
// both partitions.
func (e *Executor) detach(ctx context.Context, res Result) (*Solution, error) {
	g := res.Graph.Clone()
	if err := e.interp.Annotate(g); err != nil {
		return nil, err
	}

	test := fitness.Sample{}
	if rows := e.problem.Partition.Test; len(rows) > 0 {
		estimated, err := e.interp.Evaluate(g, e.problem.Dataset, rows)
		if err != nil {
			return nil, err
		}
		original, err := dataset.Select(e.problem.Dataset, e.problem.Target, rows)
		if err != nil {
			return nil, err
		}
		test = fitness.Sample{Original: original, Estimated: estimated}
	}

	summary, err := fitness.Summarize(g, e.problem.Limit,
		fitness.Sample{Original: e.original, Estimated: res.estimates}, test)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Best individual detached.", "name", res.Name, "active_nodes", summary.ActiveNodes)
	return &Solution{
		Name:     res.Name,
		Genotype: append([]int(nil), res.Genotype...),
		Graph:    g,
		Summary:  summary,
	}, nil
}

func (e *Executor) observeFailure(err error) {
	if e.recorder == nil {
		return
	}
	switch {
	case errors.Is(err, context.Canceled):
		return
	case errors.Is(err, opcode.ErrUnsupported):
		e.recorder.ObserveFailure("unsupported_operator")
	case errors.Is(err, interpreter.ErrConstraintViolation):
		e.recorder.ObserveFailure("constraint_violation")
	case errors.Is(err, genotype.ErrOutOfBounds):
		e.recorder.ObserveFailure("out_of_bounds")
	default:
		e.recorder.ObserveFailure("other")
	}
}
