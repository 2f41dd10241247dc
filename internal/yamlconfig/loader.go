// Package yamlconfig loads run configuration from YAML documents.
package yamlconfig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/cgpgrid/internal/config"
	"github.com/specialistvlad/cgpgrid/internal/ctxlog"
	"github.com/specialistvlad/cgpgrid/internal/fsutil"
	"gopkg.in/yaml.v3"
)

type document struct {
	Problem    *problem    `yaml:"problem"`
	Grid       *grid       `yaml:"grid"`
	Population *population `yaml:"population"`
}

type problem struct {
	Dataset          string   `yaml:"dataset"`
	Target           string   `yaml:"target"`
	Inputs           []string `yaml:"inputs"`
	TrainingFraction float64  `yaml:"training_fraction"`
	Limit            *struct {
		Lower float64 `yaml:"lower"`
		Upper float64 `yaml:"upper"`
	} `yaml:"limit"`
}

type grid struct {
	Rows       int `yaml:"rows"`
	Columns    int `yaml:"columns"`
	LevelsBack int `yaml:"levels_back"`
	Arity      int `yaml:"arity"`
	Outputs    int `yaml:"outputs"`
}

type population struct {
	Seed        uint64 `yaml:"seed"`
	Random      int    `yaml:"random"`
	Individuals []struct {
		Name     string `yaml:"name"`
		Genotype []int  `yaml:"genotype"`
	} `yaml:"individuals"`
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .yaml and .yml file under paths. A file may hold several
// documents separated by "---"; all of them are merged.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(paths, ".yaml", ".yml")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .yaml files found in %v", paths)
	}

	model := &config.Model{}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		for {
			var doc document
			if err := dec.Decode(&doc); err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
			}
			if err := model.Merge(doc.translate(file)); err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
		}
		logger.Debug("YAML file merged.", "file", file)
	}

	logger.Debug("YAML loading complete.", "files", len(files))
	return model, nil
}

func (d *document) translate(file string) *config.Model {
	m := &config.Model{}
	if p := d.Problem; p != nil {
		m.Problem = &config.Problem{
			Dataset:          config.ResolvePath(file, p.Dataset),
			Target:           p.Target,
			Inputs:           p.Inputs,
			TrainingFraction: p.TrainingFraction,
		}
		if p.Limit != nil {
			m.Problem.Limit = &config.Limit{Lower: p.Limit.Lower, Upper: p.Limit.Upper}
		}
	}
	if g := d.Grid; g != nil {
		m.Grid = &config.Grid{
			Rows:       g.Rows,
			Columns:    g.Columns,
			LevelsBack: g.LevelsBack,
			Arity:      g.Arity,
			Outputs:    g.Outputs,
		}
	}
	if p := d.Population; p != nil {
		m.Population = &config.Population{Seed: p.Seed, Random: p.Random}
		for _, ind := range p.Individuals {
			m.Population.Individuals = append(m.Population.Individuals, &config.Individual{
				Name:     ind.Name,
				Genotype: ind.Genotype,
			})
		}
	}
	return m
}
