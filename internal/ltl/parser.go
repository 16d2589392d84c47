package ltl

import (
	"errors"
	"fmt"
)

// ErrSyntax is wrapped by every error Parse returns.
var ErrSyntax = errors.New("ltl: syntax error")

// Parse reads a formula from src.
func Parse(src string) (*Formula, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return nil, fmt.Errorf("%w: empty formula", ErrSyntax)
	}
	f, err := p.implication()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, tok.text, tok.pos)
	}
	return f, nil
}

// MustParse is Parse for formulas known to be well formed.
func MustParse(src string) *Formula {
	f, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return f
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) implication() (*Formula, error) {
	left, err := p.disjunction()
	if err != nil {
		return nil, err
	}
	switch p.peek().kind {
	case tokImplies:
		p.next()
		right, err := p.implication()
		if err != nil {
			return nil, err
		}
		return Implies(left, right), nil
	case tokIff:
		p.next()
		right, err := p.implication()
		if err != nil {
			return nil, err
		}
		return Iff(left, right), nil
	}
	return left, nil
}

func (p *parser) disjunction() (*Formula, error) {
	left, err := p.conjunction()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.conjunction()
		if err != nil {
			return nil, err
		}
		left = Or(left, right)
	}
	return left, nil
}

func (p *parser) conjunction() (*Formula, error) {
	left, err := p.temporal()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.temporal()
		if err != nil {
			return nil, err
		}
		left = And(left, right)
	}
	return left, nil
}

func (p *parser) temporal() (*Formula, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	switch p.peek().kind {
	case tokUntil:
		p.next()
		right, err := p.temporal()
		if err != nil {
			return nil, err
		}
		return Until(left, right), nil
	case tokRelease:
		p.next()
		right, err := p.temporal()
		if err != nil {
			return nil, err
		}
		return Release(left, right), nil
	}
	return left, nil
}

func (p *parser) unary() (*Formula, error) {
	var wrap func(*Formula) *Formula
	switch p.peek().kind {
	case tokNot:
		wrap = Not
	case tokNext:
		wrap = Next
	case tokAlways:
		wrap = Always
	case tokEventually:
		wrap = Eventually
	default:
		return p.primary()
	}
	p.next()
	operand, err := p.unary()
	if err != nil {
		return nil, err
	}
	return wrap(operand), nil
}

func (p *parser) primary() (*Formula, error) {
	tok := p.next()
	switch tok.kind {
	case tokIdent:
		return Atom(tok.text), nil
	case tokTrue:
		return True(), nil
	case tokFalse:
		return False(), nil
	case tokLParen:
		inner, err := p.implication()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, fmt.Errorf("%w: expected ')' at offset %d", ErrSyntax, closing.pos)
		}
		return inner, nil
	case tokEOF:
		return nil, fmt.Errorf("%w: unexpected end of formula", ErrSyntax)
	}
	return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, tok.text, tok.pos)
}
