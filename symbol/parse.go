package symbol

import (
	"math/big"
	"unicode"

	"github.com/njchilds90/taylorpoly/taylorerr"
)

// Parse reads an infix expression such as "ln(t)" or "sin(2*t) + t^3".
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = ("-" | "+") unary | power
//	power   = primary [ ("^" | "**") unary ]
//	primary = number | name | name "(" expr ")" | "(" expr ")"
//
// "pi" and "e" are constants, "^" is right associative, and decimals are
// read as exact fractions. Multiplication must be written out.
func Parse(src string) (Expr, error) {
	p := &parser{src: []rune(src)}
	p.next()
	if p.tok.kind == tokEOF {
		return nil, p.errorf(p.tok, "empty expression")
	}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf(p.tok, "unexpected %q", p.tok.text)
	}
	return e, nil
}

// MustParse is Parse for literals known to be valid. It panics on error.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokNum
	tokName
	tokOp
	tokBad
)

type token struct {
	kind tokKind
	text string
	col  int
}

type parser struct {
	src []rune
	pos int
	tok token
}

func (p *parser) errorf(t token, format string, args ...interface{}) error {
	return taylorerr.Newf(taylorerr.TypeParse, "column %d: "+format, append([]interface{}{t.col}, args...)...)
}

func (p *parser) next() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
	start := p.pos
	if p.pos >= len(p.src) {
		p.tok = token{kind: tokEOF, col: start + 1}
		return
	}
	r := p.src[p.pos]
	switch {
	case unicode.IsDigit(r) || r == '.':
		p.scanNumber()
		p.tok = token{kind: tokNum, text: string(p.src[start:p.pos]), col: start + 1}
	case unicode.IsLetter(r) || r == '_':
		for p.pos < len(p.src) && (unicode.IsLetter(p.src[p.pos]) || unicode.IsDigit(p.src[p.pos]) || p.src[p.pos] == '_') {
			p.pos++
		}
		p.tok = token{kind: tokName, text: string(p.src[start:p.pos]), col: start + 1}
	case r == '*' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '*':
		p.pos += 2
		p.tok = token{kind: tokOp, text: "^", col: start + 1}
	case r == '+' || r == '-' || r == '*' || r == '/' || r == '^' || r == '(' || r == ')':
		p.pos++
		p.tok = token{kind: tokOp, text: string(r), col: start + 1}
	default:
		p.pos++
		p.tok = token{kind: tokBad, text: string(r), col: start + 1}
	}
}

func (p *parser) scanNumber() {
	digits := func() {
		for p.pos < len(p.src) && unicode.IsDigit(p.src[p.pos]) {
			p.pos++
		}
	}
	digits()
	if p.pos < len(p.src) && p.src[p.pos] == '.' {
		p.pos++
		digits()
	}
	if p.pos < len(p.src) && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') {
		save := p.pos
		p.pos++
		if p.pos < len(p.src) && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
			p.pos++
		}
		if p.pos < len(p.src) && unicode.IsDigit(p.src[p.pos]) {
			digits()
		} else {
			// "2e" is 2 followed by the name e.
			p.pos = save
		}
	}
}

func (p *parser) isOp(s string) bool { return p.tok.kind == tokOp && p.tok.text == s }

func (p *parser) expr() (Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.isOp("+") || p.isOp("-") {
		op := p.tok.text
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		if op == "+" {
			left = AddOf(left, right)
		} else {
			left = SubOf(left, right)
		}
	}
	return left, nil
}

func (p *parser) term() (Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.isOp("*") || p.isOp("/") {
		op := p.tok.text
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		if op == "*" {
			left = MulOf(left, right)
		} else {
			left = DivOf(left, right)
		}
	}
	return left, nil
}

func (p *parser) unary() (Expr, error) {
	switch {
	case p.isOp("-"):
		p.next()
		e, err := p.unary()
		if err != nil {
			return nil, err
		}
		return MulOf(N(-1), e), nil
	case p.isOp("+"):
		p.next()
		return p.unary()
	}
	return p.power()
}

func (p *parser) power() (Expr, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if !p.isOp("^") {
		return base, nil
	}
	p.next()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return PowOf(base, exp), nil
}

func (p *parser) primary() (Expr, error) {
	t := p.tok
	switch t.kind {
	case tokNum:
		p.next()
		r, ok := new(big.Rat).SetString(t.text)
		if !ok {
			return nil, p.errorf(t, "invalid number %q", t.text)
		}
		return &Num{val: r}, nil

	case tokName:
		p.next()
		if p.isOp("(") {
			fn, ok := LookupFunc(t.text)
			if !ok {
				return nil, p.errorf(t, "unknown function %q", t.text)
			}
			p.next()
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			if !p.isOp(")") {
				return nil, p.errorf(p.tok, "expected \")\" to close %s(", t.text)
			}
			p.next()
			return fn(arg), nil
		}
		if c, ok := LookupConst(t.text); ok {
			return c, nil
		}
		return S(t.text), nil

	case tokOp:
		if t.text == "(" {
			p.next()
			e, err := p.expr()
			if err != nil {
				return nil, err
			}
			if !p.isOp(")") {
				return nil, p.errorf(p.tok, "expected \")\"")
			}
			p.next()
			return e, nil
		}
	case tokEOF:
		return nil, p.errorf(t, "unexpected end of input")
	}
	return nil, p.errorf(t, "unexpected %q", t.text)
}
