// Package reduce turns the Co-Büchi game on an arena into a finite safety
// game.
//
// A position of the safety game is an equivalence class: the set of arena
// vertices the automaton may occupy together with a score matrix that
// counts, per automaton state and per final state, the most visits to that
// final state along any run ending in the state. Classes whose score
// reaches the risk bound, or that would lie deeper than the unroll limit,
// are redirected to a single absorbing risk class. Environment classes are
// merged when their accumulator, control vertices and scores coincide.
package reduce
