package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block a run file may contain.
type fileRoot struct {
	Problem    *problemBlock    `hcl:"problem,block"`
	Grid       *gridBlock       `hcl:"grid,block"`
	Population *populationBlock `hcl:"population,block"`
	Remain     hcl.Body         `hcl:",remain"`
}

type problemBlock struct {
	Dataset          string         `hcl:"dataset"`
	Target           string         `hcl:"target"`
	Inputs           hcl.Expression `hcl:"inputs,optional"`
	TrainingFraction *float64       `hcl:"training_fraction,optional"`
	Limit            *limitBlock    `hcl:"limit,block"`
}

type limitBlock struct {
	Lower float64 `hcl:"lower"`
	Upper float64 `hcl:"upper"`
}

type gridBlock struct {
	Rows       int  `hcl:"rows"`
	Columns    int  `hcl:"columns"`
	LevelsBack *int `hcl:"levels_back,optional"`
	Arity      *int `hcl:"arity,optional"`
	Outputs    *int `hcl:"outputs,optional"`
}

type populationBlock struct {
	Seed        *int               `hcl:"seed,optional"`
	Random      *int               `hcl:"random,optional"`
	Individuals []*individualBlock `hcl:"individual,block"`
}

type individualBlock struct {
	Name     string         `hcl:"name,label"`
	Genotype hcl.Expression `hcl:"genotype"`
}
