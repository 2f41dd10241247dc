package app

import (
	"context"
	"fmt"
	"slices"

	"github.com/specialistvlad/cgpgrid/internal/ctxlog"
	"github.com/specialistvlad/cgpgrid/internal/dataset"
	"github.com/specialistvlad/cgpgrid/internal/executor"
	"github.com/specialistvlad/cgpgrid/internal/fitness"
	"github.com/specialistvlad/cgpgrid/internal/genotype"
	"github.com/specialistvlad/cgpgrid/internal/opcode"
)

// Run loads the dataset, evaluates the configured population and logs the
// best solution. It returns the retained solution.
func (a *App) Run(ctx context.Context) (*executor.Solution, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.startHealthCheckServer()
	defer a.closeHealthCheckServer()

	problem, err := a.buildProblem(ctx)
	if err != nil {
		return nil, err
	}

	exec, err := executor.New(problem, a.interp, a.config.WorkerCount, a.recorder)
	if err != nil {
		return nil, fmt.Errorf("failed to create executor: %w", err)
	}

	individuals := a.individuals(problem.Encoding)
	a.logger.Info("🚀 Starting concurrent evaluation...",
		"individuals", len(individuals),
		"workers", a.config.WorkerCount,
		"genotype_length", problem.Encoding.Length(),
	)
	if _, err := exec.Evaluate(ctx, individuals); err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}

	best := exec.Retained()
	s := best.Summary
	attrs := []any{
		"best", best.Name,
		"solution", s.SolutionString,
		"active_nodes", s.ActiveNodes,
		"inactive_nodes", s.InactiveNodes,
		"training_mse", s.Training.MeanSquaredError,
		"training_r2", s.Training.RSquared,
		"training_relative_error", s.Training.MeanRelativeError,
		"evaluated_solutions", a.interp.EvaluatedSolutions(),
	}
	if s.HasTest {
		attrs = append(attrs,
			"test_mse", s.Test.MeanSquaredError,
			"test_r2", s.Test.RSquared,
			"test_relative_error", s.Test.MeanRelativeError,
		)
	}
	if hits := s.Training.Hits; hits != (fitness.LimitHits{}) {
		attrs = append(attrs, "lower_limit_hits", hits.Lower, "upper_limit_hits", hits.Upper, "nan_evaluations", hits.NaN)
	}
	a.logger.Info("🏁 Evaluation finished.", attrs...)

	a.logger.Debug("App.Run method finished.")
	return best, nil
}

// buildProblem loads the dataset and derives the variables, partition and
// genotype encoding from the model.
func (a *App) buildProblem(ctx context.Context) (*executor.Problem, error) {
	p := a.model.Problem
	ds, err := dataset.LoadCSV(ctx, p.Dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	if !slices.Contains(ds.Columns(), p.Target) {
		return nil, fmt.Errorf("target %w: %q", dataset.ErrUnknownColumn, p.Target)
	}

	inputs := p.Inputs
	if len(inputs) == 0 {
		for _, c := range ds.Columns() {
			if c != p.Target {
				inputs = append(inputs, c)
			}
		}
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("dataset %s has no predictor columns besides %q", p.Dataset, p.Target)
	}

	partition, err := dataset.Split(ds.Rows(), p.TrainingFraction)
	if err != nil {
		return nil, err
	}

	g := a.model.Grid
	enc, err := genotype.NewEncoding(genotype.Params{
		Inputs:     len(inputs),
		Outputs:    g.Outputs,
		Arity:      g.Arity,
		Rows:       g.Rows,
		Columns:    g.Columns,
		LevelsBack: g.LevelsBack,
		Functions:  opcode.Count(),
	})
	if err != nil {
		return nil, fmt.Errorf("invalid grid: %w", err)
	}

	limit := fitness.Unbounded
	if p.Limit != nil {
		limit = fitness.Limit{Lower: p.Limit.Lower, Upper: p.Limit.Upper}
	}

	a.logger.Debug("Problem prepared.",
		"rows", ds.Rows(),
		"inputs", inputs,
		"target", p.Target,
		"training_rows", len(partition.Training),
		"test_rows", len(partition.Test),
	)
	return &executor.Problem{
		Dataset:   ds,
		Inputs:    inputs,
		Target:    p.Target,
		Partition: partition,
		Limit:     limit,
		Encoding:  enc,
	}, nil
}

// individuals lists the configured genotypes followed by the random ones.
func (a *App) individuals(enc *genotype.Encoding) []executor.Individual {
	pop := a.model.Population
	out := make([]executor.Individual, 0, len(pop.Individuals)+pop.Random)
	for _, ind := range pop.Individuals {
		out = append(out, executor.Individual{Name: ind.Name, Genotype: ind.Genotype})
	}
	return append(out, executor.RandomIndividuals(enc, pop.Random, pop.Seed)...)
}
