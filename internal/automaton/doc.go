// Package automaton holds the state-based Büchi automata the synthesis
// engines consume, and a tableau translator that produces them from LTL.
//
// # Graph shape
//
// A Graph has integer node ids 0..n-1 and a distinguished initial node.
// Edges carry a guard: a conjunction of signal literals written "a&!b",
// or "-" when the edge is unconstrained. Acceptance is on nodes.
//
// # Translation
//
// Tableau follows the on-the-fly construction of Gerth, Peled, Vardi and
// Wolper: the formula is put in negation normal form, expanded into
// tableau nodes that record the obligations for the current and next
// instant, and the generalized acceptance condition (one set per until
// subformula) is folded into a single set by layering copies of the
// node graph. Nodes that cannot reach an accepting cycle are dropped, so
// a graph with no accepting node recognises the empty language.
package automaton
