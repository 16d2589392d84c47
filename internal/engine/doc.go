// Package engine runs the synthesis pipelines end to end.
//
// Each entry point takes a problem, translates its formula into an
// automaton, builds the game arena and solves it, then converts the outcome
// into a Result. Failures of any stage, including panics and relation
// engine exhaustion, are reported on the Result instead of escaping.
//
// Three pipelines are available:
//
//   - CoBuechi reduces the negated specification to a bounded safety game.
//   - Buechi solves the specification automaton as a Büchi game directly.
//   - Compositional synthesizes groups of guarantees separately and
//     combines the controllers with package compose.
//
// Every pipeline can instead search for a witness of non-existence, in
// which case the players are swapped.
package engine
