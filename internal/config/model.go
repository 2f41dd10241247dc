package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/cgpgrid/internal/opcode"
)

// Model is the unified, format-agnostic representation of one regression run.
type Model struct {
	Problem    *Problem
	Grid       *Grid
	Population *Population
}

// Problem describes the dataset and the variables of the regression.
type Problem struct {
	// Dataset is the path of a CSV file. Relative paths are resolved
	// against the directory of the file that declared them.
	Dataset string
	Target  string
	// Inputs lists the predictor columns. Empty means every column except
	// the target.
	Inputs           []string
	TrainingFraction float64
	Limit            *Limit
}

// Limit bounds the estimates that are reported for the retained solution.
type Limit struct {
	Lower float64
	Upper float64
}

// Grid holds the CGP grid dimensions.
type Grid struct {
	Rows       int
	Columns    int
	LevelsBack int
	Arity      int
	Outputs    int
}

// Population lists the individuals to evaluate.
type Population struct {
	Seed        uint64
	Random      int
	Individuals []*Individual
}

// Individual is one explicitly configured genotype.
type Individual struct {
	Name     string
	Genotype []int
}

const (
	DefaultTrainingFraction = 1.0
	DefaultArity            = 2
	DefaultOutputs          = 1
)

// ApplyDefaults fills zero values with their defaults. LevelsBack defaults
// to the number of columns.
func (m *Model) ApplyDefaults() {
	if m.Problem != nil && m.Problem.TrainingFraction == 0 {
		m.Problem.TrainingFraction = DefaultTrainingFraction
	}
	if m.Grid != nil {
		if m.Grid.Arity == 0 {
			m.Grid.Arity = DefaultArity
		}
		if m.Grid.Outputs == 0 {
			m.Grid.Outputs = DefaultOutputs
		}
		if m.Grid.LevelsBack == 0 {
			m.Grid.LevelsBack = m.Grid.Columns
		}
	}
	if m.Population == nil {
		m.Population = &Population{}
	}
}

// Validate checks the model for missing or inconsistent settings.
func (m *Model) Validate() error {
	var errs []error
	if m.Problem == nil {
		errs = append(errs, errors.New("problem block is required"))
	} else {
		if m.Problem.Dataset == "" {
			errs = append(errs, errors.New("problem: dataset is required"))
		}
		if m.Problem.Target == "" {
			errs = append(errs, errors.New("problem: target is required"))
		}
		for _, in := range m.Problem.Inputs {
			if in == m.Problem.Target {
				errs = append(errs, fmt.Errorf("problem: target %q cannot also be an input", in))
			}
		}
		if f := m.Problem.TrainingFraction; f <= 0 || f > 1 {
			errs = append(errs, fmt.Errorf("problem: training_fraction must be in (0, 1], got %v", f))
		}
		if l := m.Problem.Limit; l != nil && l.Lower > l.Upper {
			errs = append(errs, fmt.Errorf("problem: limit lower %v exceeds upper %v", l.Lower, l.Upper))
		}
	}

	if m.Grid == nil {
		errs = append(errs, errors.New("grid block is required"))
	} else {
		g := m.Grid
		if g.Rows < 1 || g.Columns < 1 {
			errs = append(errs, fmt.Errorf("grid: rows and columns must be positive, got %dx%d", g.Rows, g.Columns))
		}
		if g.LevelsBack < 1 || g.LevelsBack > g.Columns {
			errs = append(errs, fmt.Errorf("grid: levels_back must be in [1, %d], got %d", g.Columns, g.LevelsBack))
		}
		if g.Arity < opcode.MaxArity() {
			errs = append(errs, fmt.Errorf("grid: arity must be at least %d to feed every operator, got %d", opcode.MaxArity(), g.Arity))
		}
		if g.Outputs < 1 {
			errs = append(errs, fmt.Errorf("grid: outputs must be positive, got %d", g.Outputs))
		}
	}

	if p := m.Population; p != nil {
		if p.Random < 0 {
			errs = append(errs, fmt.Errorf("population: random must not be negative, got %d", p.Random))
		}
		seen := make(map[string]struct{}, len(p.Individuals))
		for _, ind := range p.Individuals {
			if _, dup := seen[ind.Name]; dup {
				errs = append(errs, fmt.Errorf("population: duplicate individual %q", ind.Name))
			}
			seen[ind.Name] = struct{}{}
		}
		if p.Random == 0 && len(p.Individuals) == 0 {
			errs = append(errs, errors.New("population: no individuals to evaluate"))
		}
	}
	return errors.Join(errs...)
}

// ResolvePath makes a dataset path relative to the directory of the config
// file it was declared in.
func ResolvePath(configFile, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(configFile), path)
}

// Merge folds other into m. Blocks may be declared in only one file;
// individuals accumulate.
func (m *Model) Merge(other *Model) error {
	if other.Problem != nil {
		if m.Problem != nil {
			return errors.New("problem block declared more than once")
		}
		m.Problem = other.Problem
	}
	if other.Grid != nil {
		if m.Grid != nil {
			return errors.New("grid block declared more than once")
		}
		m.Grid = other.Grid
	}
	if other.Population != nil {
		if m.Population == nil {
			m.Population = &Population{}
		}
		if other.Population.Seed != 0 {
			m.Population.Seed = other.Population.Seed
		}
		m.Population.Random += other.Population.Random
		m.Population.Individuals = append(m.Population.Individuals, other.Population.Individuals...)
	}
	return nil
}
