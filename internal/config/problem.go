package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/reactsynth/internal/ltl"
	"github.com/vk/reactsynth/internal/valuation"
)

// ErrInvalidProblem is wrapped by every validation failure.
var ErrInvalidProblem = errors.New("config: invalid problem")

// Engine names accepted in problem files and on the command line.
const (
	EngineCoBuechi      = "cobuechi"
	EngineBuechi        = "buechi"
	EngineCompositional = "compositional"
)

// Problem is one synthesis task.
type Problem struct {
	Name   string
	Source string

	Inputs  []string
	Outputs []string
	// Timers are carried through to the result; they do not take part in
	// the game.
	Timers []string

	Assumptions []string
	Guarantees  []string

	// UnrollSteps, RiskBound and Engine override the run defaults when set.
	UnrollSteps int
	RiskBound   int
	Engine      string
}

// Formula returns the conjunction of the guarantees, implied by the
// conjunction of the assumptions when there are any.
func (p *Problem) Formula() string {
	return implication(p.Assumptions, p.Guarantees)
}

// Group is a slice of consecutive guarantees synthesized together.
type Group struct {
	Index      int
	Guarantees []string
	// Formula includes the problem's assumptions.
	Formula string
}

// Groups splits the guarantees into chunks of at most size lines.
func (p *Problem) Groups(size int) []Group {
	if size <= 0 {
		size = 1
	}
	var out []Group
	for start := 0; start < len(p.Guarantees); start += size {
		end := min(start+size, len(p.Guarantees))
		chunk := p.Guarantees[start:end]
		out = append(out, Group{
			Index:      len(out),
			Guarantees: chunk,
			Formula:    implication(p.Assumptions, chunk),
		})
	}
	return out
}

func implication(assumptions, guarantees []string) string {
	g := conjunction(guarantees)
	if len(assumptions) == 0 {
		return g
	}
	return "(" + conjunction(assumptions) + ") -> (" + g + ")"
}

func conjunction(lines []string) string {
	if len(lines) == 0 {
		return "true"
	}
	return "(" + strings.Join(lines, ") && (") + ")"
}

// Validate checks the signal declarations and that every formula parses.
func (p *Problem) Validate() error {
	if len(p.Outputs) == 0 {
		return fmt.Errorf("%w: %s declares no outputs", ErrInvalidProblem, p.Name)
	}
	if len(p.Inputs) > valuation.MaxSignals || len(p.Outputs) > valuation.MaxSignals {
		return fmt.Errorf("%w: %s declares more than %d inputs or outputs", ErrInvalidProblem, p.Name, valuation.MaxSignals)
	}
	if len(p.Guarantees) == 0 {
		return fmt.Errorf("%w: %s has no guarantees", ErrInvalidProblem, p.Name)
	}
	seen := make(map[string]struct{})
	for _, group := range [][]string{p.Inputs, p.Outputs, p.Timers} {
		for _, name := range group {
			if name == "" {
				return fmt.Errorf("%w: %s declares an empty signal name", ErrInvalidProblem, p.Name)
			}
			if _, dup := seen[name]; dup {
				return fmt.Errorf("%w: %s declares signal %q twice", ErrInvalidProblem, p.Name, name)
			}
			seen[name] = struct{}{}
		}
	}
	for i, line := range p.Assumptions {
		if _, err := ltl.Parse(line); err != nil {
			return fmt.Errorf("%w: %s assumption %d: %w", ErrInvalidProblem, p.Name, i+1, err)
		}
	}
	for i, line := range p.Guarantees {
		if _, err := ltl.Parse(line); err != nil {
			return fmt.Errorf("%w: %s guarantee %d: %w", ErrInvalidProblem, p.Name, i+1, err)
		}
	}
	switch p.Engine {
	case "", EngineCoBuechi, EngineBuechi, EngineCompositional:
	default:
		return fmt.Errorf("%w: %s names unknown engine %q", ErrInvalidProblem, p.Name, p.Engine)
	}
	if p.UnrollSteps < 0 || p.RiskBound < 0 {
		return fmt.Errorf("%w: %s has a negative unroll depth or risk bound", ErrInvalidProblem, p.Name)
	}
	return nil
}
