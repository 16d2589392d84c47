package engine

import (
	"github.com/vk/reactsynth/internal/automaton"
	"github.com/vk/reactsynth/internal/config"
	"github.com/vk/reactsynth/internal/reduce"
	"github.com/vk/reactsynth/internal/session"
)

// Defaults applied to options left at zero.
const (
	DefaultUnrollSteps = 3
	DefaultGroupSize   = 2
)

// Options configures a run. Problem settings take precedence over Engine,
// UnrollSteps and RiskBound.
type Options struct {
	Engine      string
	UnrollSteps int
	RiskBound   int
	// GroupSize is the number of guarantees per compositional sub-problem.
	GroupSize int
	// ParallelSubproblems bounds concurrent compositional sub-solves.
	ParallelSubproblems int
	ProveNonExistence   bool

	Session    session.Options
	Translator automaton.Translator
}

// resolve merges the problem's settings and fills in defaults.
func (o Options) resolve(p *config.Problem) Options {
	if p.Engine != "" {
		o.Engine = p.Engine
	}
	if p.UnrollSteps > 0 {
		o.UnrollSteps = p.UnrollSteps
	}
	if p.RiskBound > 0 {
		o.RiskBound = p.RiskBound
	}
	if o.Engine == "" {
		o.Engine = config.EngineCoBuechi
	}
	if o.UnrollSteps <= 0 {
		o.UnrollSteps = DefaultUnrollSteps
	}
	if o.RiskBound <= 0 {
		o.RiskBound = reduce.DefaultRiskBound
	}
	if o.GroupSize <= 0 {
		o.GroupSize = DefaultGroupSize
	}
	if o.Translator == nil {
		o.Translator = automaton.NewTableau()
	}
	return o
}

func (o Options) mode() Mode {
	if o.ProveNonExistence {
		return NonExistence
	}
	return Existence
}
