package symbol

import "math"

// Pow is base^exp.
type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

// SqrtOf returns arg^(1/2).
func SqrtOf(arg Expr) Expr { return PowOf(arg, F(1, 2)) }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	en, expIsNum := exp.(*Num)
	if expIsNum && en.IsZero() {
		return N(1)
	}
	if expIsNum && en.IsOne() {
		return base
	}

	if bn, ok := base.(*Num); ok {
		switch {
		case bn.IsZero():
			// 0^0 is indeterminate and 0^-k divides by zero; both stay
			// unevaluated so Eval can report them as undefined.
			if expIsNum && (en.IsZero() || en.IsNegative()) {
				return &Pow{base: base, exp: exp}
			}
			if expIsNum {
				return N(0)
			}
		case bn.IsOne():
			return N(1)
		case expIsNum && en.IsInteger():
			if e := en.val.Num(); e.IsInt64() && e.Int64() >= -20 && e.Int64() <= 20 {
				return numPow(bn, e.Int64())
			}
		}
	}
	if inner, ok := base.(*Pow); ok && expIsNum && en.IsInteger() {
		return PowOf(inner.base, MulOf(inner.exp, exp))
	}
	return &Pow{base: base, exp: exp}
}

func (p *Pow) String() string { return printer{}.print(p) }

func (p *Pow) LaTeX() string {
	baseStr := p.base.LaTeX()
	switch b := p.base.(type) {
	case *Add, *Mul, *Pow:
		baseStr = "\\left(" + baseStr + "\\right)"
	case *Num:
		if !b.IsInteger() || b.IsNegative() {
			baseStr = "\\left(" + baseStr + "\\right)"
		}
	}
	return baseStr + "^{" + p.exp.LaTeX() + "}"
}

func (p *Pow) Sub(name string, value Expr) Expr {
	return PowOf(p.base.Sub(name, value), p.exp.Sub(name, value))
}

func (p *Pow) Diff(name string) (Expr, error) {
	du, err := p.base.Diff(name)
	if err != nil {
		return nil, err
	}
	dv, err := p.exp.Diff(name)
	if err != nil {
		return nil, err
	}
	if _, expIsNum := p.exp.(*Num); expIsNum {
		return MulOf(p.exp, PowOf(p.base, AddOf(p.exp, N(-1))), du), nil
	}
	switch p.base.(type) {
	case *Num, *Const:
		return MulOf(PowOf(p.base, p.exp), LnOf(p.base), dv), nil
	}
	// d(u^v) = u^v * (v' ln u + v u'/u)
	logTerm := MulOf(dv, LnOf(p.base))
	divTerm := MulOf(p.exp, du, PowOf(p.base, N(-1)))
	return MulOf(PowOf(p.base, p.exp), AddOf(logTerm, divTerm)), nil
}

func (p *Pow) Eval() (*Num, bool) {
	b, ok := p.base.Eval()
	if !ok {
		return nil, false
	}
	e, ok := p.exp.Eval()
	if !ok {
		return nil, false
	}
	if e.IsInteger() && e.val.Num().IsInt64() {
		k := e.val.Num().Int64()
		if b.IsZero() && k <= 0 {
			return nil, false
		}
		if k >= -64 && k <= 64 {
			return numPow(b, k), true
		}
	}
	return foldFloat(math.Pow(b.Float64(), e.Float64()))
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) kind() string { return "pow" }

func (p *Pow) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}

func (p *Pow) Base() Expr     { return p.base }
func (p *Pow) Exponent() Expr { return p.exp }
