// Package arena builds the two-player game arena of an automaton.
//
// Every automaton state k becomes an environment vertex with id
// k*(|inputs|+1). For each input valuation v it is followed by a control
// vertex with id k*(|inputs|+1)+1+v. The environment vertex has one edge
// per input valuation to its control vertices. A control vertex has one
// edge per automaton successor, labelled with the output valuations that
// the automaton edge's guard allows together with v.
package arena
