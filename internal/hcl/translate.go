package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/cgpgrid/internal/config"
	"github.com/specialistvlad/cgpgrid/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// translate converts the blocks of one file into a partial model.
func (l *Loader) translate(ctx context.Context, file string, root *fileRoot) (*config.Model, error) {
	m := &config.Model{}

	if p := root.Problem; p != nil {
		m.Problem = &config.Problem{
			Dataset: config.ResolvePath(file, p.Dataset),
			Target:  p.Target,
		}
		if err := l.decodeList(ctx, p.Inputs, cty.String, &m.Problem.Inputs); err != nil {
			return nil, fmt.Errorf("problem inputs: %w", err)
		}
		if p.TrainingFraction != nil {
			m.Problem.TrainingFraction = *p.TrainingFraction
		}
		if p.Limit != nil {
			m.Problem.Limit = &config.Limit{Lower: p.Limit.Lower, Upper: p.Limit.Upper}
		}
	}

	if g := root.Grid; g != nil {
		m.Grid = &config.Grid{
			Rows:       g.Rows,
			Columns:    g.Columns,
			LevelsBack: deref(g.LevelsBack),
			Arity:      deref(g.Arity),
			Outputs:    deref(g.Outputs),
		}
	}

	if p := root.Population; p != nil {
		m.Population = &config.Population{Random: deref(p.Random)}
		if p.Seed != nil {
			if *p.Seed < 0 {
				return nil, fmt.Errorf("population seed must not be negative, got %d", *p.Seed)
			}
			m.Population.Seed = uint64(*p.Seed)
		}
		for _, ind := range p.Individuals {
			var genes []int
			if err := l.decodeList(ctx, ind.Genotype, cty.Number, &genes); err != nil {
				return nil, fmt.Errorf("individual %q genotype: %w", ind.Name, err)
			}
			m.Population.Individuals = append(m.Population.Individuals, &config.Individual{
				Name:     ind.Name,
				Genotype: genes,
			})
		}
	}
	return m, nil
}

// decodeList evaluates expr, converts it to a list of elem and binds it to
// target. A missing or null expression leaves target untouched.
func (l *Loader) decodeList(ctx context.Context, expr hcl.Expression, elem cty.Type, target any) error {
	if expr == nil {
		return nil
	}
	val, diags := expr.Value(l.evalCtx)
	if diags.HasErrors() {
		return diags
	}
	if val.IsNull() {
		return nil
	}

	want := cty.List(elem)
	converted, err := convert.Convert(val, want)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), want.FriendlyName(), err)
	}
	if !val.Type().Equals(converted.Type()) {
		ctxlog.FromContext(ctx).Debug("Implicitly converted value type.",
			"from", val.Type().FriendlyName(),
			"to", converted.Type().FriendlyName(),
		)
	}
	return gocty.FromCtyValue(converted, target)
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
