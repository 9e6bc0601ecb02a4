package symbol

import (
	"sort"
	"strings"
)

// Mul is a product of factors. A numeric coefficient, when present, is
// always the first factor.
type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// DivOf returns a / b.
func DivOf(a, b Expr) Expr { return MulOf(a, PowOf(b, N(-1))) }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}
	coeff := N(1)
	type power struct {
		base Expr
		exps []Expr
	}
	powers := map[string]*power{}
	var order []string
	for _, f := range flat {
		if v, ok := f.(*Num); ok {
			coeff = numMul(coeff, v)
			continue
		}
		base, exp := f, Expr(N(1))
		if p, ok := f.(*Pow); ok {
			base, exp = p.base, p.exp
		}
		id := key(base)
		pw, seen := powers[id]
		if !seen {
			pw = &power{base: base}
			powers[id] = pw
			order = append(order, id)
		}
		pw.exps = append(pw.exps, exp)
	}
	if coeff.IsZero() {
		return N(0)
	}

	// Repeated bases merge into one power; a merged power may fold back
	// into a number.
	others := make([]Expr, 0, len(order))
	for _, id := range order {
		pw := powers[id]
		var merged Expr
		if len(pw.exps) == 1 {
			merged = PowOf(pw.base, pw.exps[0])
		} else {
			merged = PowOf(pw.base, AddOf(pw.exps...))
		}
		switch v := merged.(type) {
		case *Num:
			coeff = numMul(coeff, v)
		case *Mul:
			for _, f := range v.factors {
				if n, ok := f.(*Num); ok {
					coeff = numMul(coeff, n)
				} else {
					others = append(others, f)
				}
			}
		default:
			others = append(others, merged)
		}
	}
	if coeff.IsZero() {
		return N(0)
	}
	if len(others) == 0 {
		return coeff
	}

	type keyed struct {
		e   Expr
		key string
	}
	ks := make([]keyed, len(others))
	for i, e := range others {
		ks[i] = keyed{e: e, key: e.String() + "\x00" + key(e)}
	}
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].key < ks[j].key })
	for i := range ks {
		others[i] = ks[i].e
	}

	if coeff.IsOne() {
		if len(others) == 1 {
			return others[0]
		}
		return &Mul{factors: others}
	}
	return &Mul{factors: append([]Expr{coeff}, others...)}
}

func (m *Mul) String() string { return printer{}.print(m) }

func (m *Mul) LaTeX() string {
	sign := ""
	parts := make([]string, 0, len(m.factors))
	for i, f := range m.factors {
		if n, ok := f.(*Num); ok && i == 0 && n.IsNegOne() {
			sign = "-"
			continue
		}
		if _, ok := f.(*Add); ok {
			parts = append(parts, "\\left("+f.LaTeX()+"\\right)")
		} else {
			parts = append(parts, f.LaTeX())
		}
	}
	return sign + strings.Join(parts, " ")
}

func (m *Mul) Sub(name string, value Expr) Expr {
	newFactors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		newFactors[i] = f.Sub(name, value)
	}
	return MulOf(newFactors...)
}

// Diff applies the product rule.
func (m *Mul) Diff(name string) (Expr, error) {
	terms := make([]Expr, 0, len(m.factors))
	for i, fi := range m.factors {
		dfi, err := fi.Diff(name)
		if err != nil {
			return nil, err
		}
		if isNumEqual(dfi.Simplify(), 0) {
			continue
		}
		prod := make([]Expr, 0, len(m.factors))
		prod = append(prod, dfi)
		for j, fj := range m.factors {
			if j != i {
				prod = append(prod, fj)
			}
		}
		terms = append(terms, MulOf(prod...))
	}
	return AddOf(terms...), nil
}

func (m *Mul) Eval() (*Num, bool) {
	acc := N(1)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc = numMul(acc, v)
	}
	return acc, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) kind() string { return "mul" }

func (m *Mul) toJSON() map[string]interface{} {
	fs := make([]map[string]interface{}, len(m.factors))
	for i, f := range m.factors {
		fs[i] = f.toJSON()
	}
	return map[string]interface{}{"type": "mul", "factors": fs}
}

// Factors returns a copy of the factors.
func (m *Mul) Factors() []Expr { return append([]Expr(nil), m.factors...) }
