package reduce

import (
	"strconv"
	"strings"
)

// Class is a position of the safety game.
type Class struct {
	ID    int
	IsEnv bool
	// Risk marks the absorbing risk class. It has no successors.
	Risk bool
	// Accumulator holds the sorted arena environment vertices of an
	// environment class.
	Accumulator []int
	// ControlVertices holds the sorted arena control vertices of a control
	// class.
	ControlVertices []int
	// Score is indexed by automaton state, then by final state position.
	Score [][]int
	// Input is the input valuation that created a control class, or -1.
	Input int
	// Successors is indexed by input valuation on environment classes and
	// by output valuation on control classes.
	Successors []*Class
}

func (c *Class) key() string {
	var b strings.Builder
	if c.IsEnv {
		b.WriteString("e|")
	} else {
		b.WriteString("c|")
	}
	writeInts(&b, c.Accumulator)
	b.WriteByte('|')
	writeInts(&b, c.ControlVertices)
	b.WriteByte('|')
	for _, row := range c.Score {
		writeInts(&b, row)
		b.WriteByte(';')
	}
	return b.String()
}

func writeInts(b *strings.Builder, xs []int) {
	for i, x := range xs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(x))
	}
}

// Game is the safety game produced by Reduce.
type Game struct {
	Classes []*Class
	Initial *Class
	Risk    *Class
	// Inputs and Outputs are the number of input and output valuations.
	Inputs  int
	Outputs int
	// Truncated counts the moves redirected to the risk class by the
	// unroll limit rather than by the score bound.
	Truncated int
}

// Len returns the number of classes.
func (g *Game) Len() int {
	return len(g.Classes)
}
