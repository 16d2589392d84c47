// Package config defines the format-agnostic synthesis problem model and
// the loaders that produce it.
//
// A Problem lists its input, output and timer signals in declaration order
// together with assumption and guarantee formulas. Loaders are picked by
// file extension: this package reads the line-oriented .ltl format, and
// other packages (such as hcl_adapter) plug in further formats through the
// FileLoader interface.
//
// The .ltl format:
//
//	## comment            (lines starting with "!--" are comments too)
//	INPUT req1, req2
//	OUTPUT grant1, grant2
//	TIMER t1
//	ASSUME [] <> !req1
//	ALWAYS (req1 -> NEXT grant1)
//
// Every line that is not a declaration or comment is a guarantee.
package config
