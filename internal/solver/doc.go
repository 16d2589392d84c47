// Package solver decides symbolic two-player games.
//
// Game positions are integers encoded in binary over interleaved current
// and next variables: bit j of a position lives in variable 2j, its
// successor copy in 2j+1. A game carries two transition relations, one per
// player, and an initial set. Winning regions are least fixpoints of the
// controllable predecessor operator: a position is attracted when its
// owner can pick a move into the target, or when its opponent owns it and
// every available move lands in the target.
//
// SolveBuechi computes a strategy visiting a final set infinitely often.
// SolveSafety computes the opponent's attractor of a risk set; swapping
// the roles of the players turns either into a check for a counter
// strategy.
package solver
