package ltl

import (
	"fmt"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokTrue
	tokFalse
	tokLParen
	tokRParen
	tokNot
	tokAnd
	tokOr
	tokImplies
	tokIff
	tokNext
	tokAlways
	tokEventually
	tokUntil
	tokRelease
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

var keywords = map[string]tokenKind{
	"true":       tokTrue,
	"TRUE":       tokTrue,
	"false":      tokFalse,
	"FALSE":      tokFalse,
	"X":          tokNext,
	"NEXT":       tokNext,
	"U":          tokUntil,
	"UNTIL":      tokUntil,
	"V":          tokRelease,
	"ALWAYS":     tokAlways,
	"EVENTUALLY": tokEventually,
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c == '.' || (c >= '0' && c <= '9')
}

func tokenize(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
			continue
		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			word := src[start:i]
			kind, ok := keywords[word]
			if !ok {
				kind = tokIdent
			}
			toks = append(toks, token{kind: kind, text: word, pos: start})
			continue
		}

		kind, width := symbol(src[i:])
		if width == 0 {
			return nil, fmt.Errorf("%w: unexpected character %q at offset %d", ErrSyntax, c, i)
		}
		toks = append(toks, token{kind: kind, text: src[i : i+width], pos: i})
		i += width
	}
	return append(toks, token{kind: tokEOF, pos: len(src)}), nil
}

// symbol matches the longest operator at the head of s.
func symbol(s string) (tokenKind, int) {
	twoChar := map[string]tokenKind{
		"&&": tokAnd,
		"||": tokOr,
		"->": tokImplies,
		"[]": tokAlways,
		"<>": tokEventually,
	}
	if len(s) >= 3 && s[:3] == "<->" {
		return tokIff, 3
	}
	if len(s) >= 2 {
		if kind, ok := twoChar[s[:2]]; ok {
			return kind, 2
		}
	}
	switch s[0] {
	case '(':
		return tokLParen, 1
	case ')':
		return tokRParen, 1
	case '!':
		return tokNot, 1
	case '&':
		return tokAnd, 1
	case '|':
		return tokOr, 1
	}
	return tokEOF, 0
}
