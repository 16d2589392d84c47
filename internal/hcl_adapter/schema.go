package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top-level blocks of a problem file.
type fileRoot struct {
	Problems []*problemBlock `hcl:"problem,block"`
	Remain   hcl.Body        `hcl:",remain"`
}

// problemBlock is the raw shape of a problem block. Numeric settings stay
// expressions so an absent attribute can be told apart from zero.
type problemBlock struct {
	Name        string         `hcl:"name,label"`
	Inputs      []string       `hcl:"inputs,optional"`
	Outputs     []string       `hcl:"outputs"`
	Timers      []string       `hcl:"timers,optional"`
	Assume      []string       `hcl:"assume,optional"`
	Guarantees  []string       `hcl:"guarantees"`
	UnrollSteps hcl.Expression `hcl:"unroll_steps,optional"`
	RiskBound   hcl.Expression `hcl:"risk_bound,optional"`
	Engine      *string        `hcl:"engine,optional"`
}
