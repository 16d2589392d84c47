// Package mealy models the controllers produced by synthesis: finite
// machines whose edges read an input valuation and emit an output
// valuation. Valuations are bit strings in signal declaration order.
package mealy
