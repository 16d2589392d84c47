package arena

import (
	"fmt"
	"strings"

	"github.com/vk/reactsynth/internal/valuation"
)

// Role tells which player moves from a vertex.
type Role int

const (
	RoleInitialPlant Role = iota
	RolePlant
	RoleControl
)

func (r Role) String() string {
	switch r {
	case RoleInitialPlant:
		return "initial-plant"
	case RolePlant:
		return "plant"
	case RoleControl:
		return "control"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Color marks the vertices that copy an accepting automaton state.
type Color int

const (
	ColorNormal Color = iota
	ColorFinal
)

// Edge is a move between vertices. Labels holds valuation indices: the
// single input valuation on an environment edge, and the sorted output
// valuations on a control edge.
type Edge struct {
	Source int
	Dest   int
	Labels []int
}

// Vertex is one position of the game.
type Vertex struct {
	ID    int
	Role  Role
	Color Color
	// State is the automaton state the vertex belongs to.
	State int
	// Input is the input valuation of a control vertex, or -1.
	Input int
	Edges []*Edge
}

// IsEnv reports whether the environment moves from v.
func (v *Vertex) IsEnv() bool {
	return v.Role != RoleControl
}

// Arena is the game graph built from an automaton.
type Arena struct {
	Inputs   []string
	Outputs  []string
	Vertices []*Vertex
	Initial  int
	// UnknownLiterals lists guard literals that named no declared signal.
	UnknownLiterals []string
}

func (a *Arena) stride() int {
	return valuation.Count(len(a.Inputs)) + 1
}

// InputValuations returns the number of input valuations.
func (a *Arena) InputValuations() int {
	return valuation.Count(len(a.Inputs))
}

// OutputValuations returns the number of output valuations.
func (a *Arena) OutputValuations() int {
	return valuation.Count(len(a.Outputs))
}

// States returns the number of automaton states the arena was built from.
func (a *Arena) States() int {
	return len(a.Vertices) / a.stride()
}

// EnvVertex returns the id of the environment vertex of a state.
func (a *Arena) EnvVertex(state int) int {
	return state * a.stride()
}

// ControlVertex returns the id of the control vertex reached from state
// under input valuation v.
func (a *Arena) ControlVertex(state, v int) int {
	return state*a.stride() + 1 + v
}

// SourceEnv returns the environment vertex that precedes a control vertex.
func (a *Arena) SourceEnv(control int) int {
	return (control / a.stride()) * a.stride()
}

// StateOf returns the automaton state of any vertex id.
func (a *Arena) StateOf(id int) int {
	return id / a.stride()
}

// FinalVertices returns the ids of the final environment vertices in
// ascending order.
func (a *Arena) FinalVertices() []int {
	var out []int
	for _, v := range a.Vertices {
		if v.Color == ColorFinal {
			out = append(out, v.ID)
		}
	}
	return out
}

// EdgeBetween returns the edge from source to dest, if any.
func (a *Arena) EdgeBetween(source, dest int) (*Edge, bool) {
	if source < 0 || source >= len(a.Vertices) {
		return nil, false
	}
	for _, e := range a.Vertices[source].Edges {
		if e.Dest == dest {
			return e, true
		}
	}
	return nil, false
}

// Describe renders the arena for debug logs.
func (a *Arena) Describe() string {
	var b strings.Builder
	for _, v := range a.Vertices {
		fmt.Fprintf(&b, "%d[%s", v.ID, v.Role)
		if v.Color == ColorFinal {
			b.WriteString(",final")
		}
		b.WriteString("]")
		for _, e := range v.Edges {
			fmt.Fprintf(&b, " ->%d%v", e.Dest, e.Labels)
		}
		b.WriteString("\n")
	}
	return b.String()
}
