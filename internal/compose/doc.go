// Package compose assembles one controller from controllers synthesized
// for independent parts of a specification.
//
// Split derives the sub-problems and the signals each one mentions.
// Assembler solves them, sequentially or on a bounded errgroup, then
// encodes every sub-machine as a relation over a shared variable space:
// global inputs, global outputs, and one current/next pair per sub-machine
// state bit. The joint relation is the conjunction of the sub-relations,
// restricted by Completeness to the states that answer every input. A
// deterministic controller is read back from the part reachable from the
// joint initial state.
package compose
