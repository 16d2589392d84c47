// Package ltl parses linear temporal logic formulas and rewrites them into
// negation normal form.
//
// The accepted syntax uses ! && || -> <-> for the boolean connectives,
// X for next, [] for always, <> for eventually, U for until and V for
// release. The keywords ALWAYS, EVENTUALLY, UNTIL and NEXT are accepted as
// spellings of [], <>, U and X. Signal names match [A-Za-z_][A-Za-z0-9_.]*;
// the single letters X, U and V are reserved.
//
// Binding strength, loosest first: -> and <-> (right associative), ||, &&,
// U and V (right associative), then the unary operators.
package ltl
