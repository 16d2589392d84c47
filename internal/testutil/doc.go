// Package testutil runs whole synthesis batches from in-memory problem
// files and checks the controllers they produce.
package testutil
