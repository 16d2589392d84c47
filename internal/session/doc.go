// Package session owns the binary decision diagram engine used by the
// symbolic solvers. A Session is created once per worker and reset for
// every game, so node tables are never shared between goroutines.
//
// Engine failures, most commonly an exhausted node table, leave the
// underlying diagram in an error state. Every operation that can observe
// such a state reports ErrCapacityExhausted through Err.
package session
