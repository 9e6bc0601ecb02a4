package symbol

import (
	"strconv"
	"strings"
)

// printer renders expressions as infix text that Parse reads back. With
// digits > 0 non-integer numbers are shown as rounded decimals instead of
// exact fractions.
type printer struct{ digits int }

// Approx renders e with non-integer numbers rounded to the given number of
// significant digits. The output is for display; Parse of it is not exact.
func Approx(e Expr, digits int) string {
	if digits <= 0 {
		digits = 6
	}
	return printer{digits: digits}.print(e)
}

func (p printer) print(e Expr) string {
	switch v := e.(type) {
	case *Num:
		return p.num(v)
	case *Add:
		return p.add(v)
	case *Mul:
		return p.mul(v)
	case *Pow:
		return p.pow(v)
	case *Func:
		return v.name + "(" + p.print(v.arg) + ")"
	}
	return e.String()
}

func (p printer) num(n *Num) string {
	if p.digits == 0 || n.IsInteger() {
		return n.String()
	}
	return strconv.FormatFloat(n.Float64(), 'g', p.digits, 64)
}

func (p printer) add(a *Add) string {
	var sb strings.Builder
	for i, t := range a.terms {
		if i > 0 {
			if pos, neg := negated(t); neg {
				sb.WriteString(" - ")
				sb.WriteString(p.print(pos))
				continue
			}
			sb.WriteString(" + ")
		}
		sb.WriteString(p.print(t))
	}
	return sb.String()
}

func (p printer) mul(m *Mul) string {
	sign := ""
	parts := make([]string, 0, len(m.factors))
	for i, f := range m.factors {
		if n, ok := f.(*Num); ok && i == 0 && n.IsNegOne() {
			sign = "-"
			continue
		}
		if _, ok := f.(*Add); ok {
			parts = append(parts, "("+p.print(f)+")")
		} else {
			parts = append(parts, p.print(f))
		}
	}
	return sign + strings.Join(parts, "*")
}

func (p printer) pow(pw *Pow) string {
	base := p.print(pw.base)
	switch b := pw.base.(type) {
	case *Add, *Mul, *Pow:
		base = "(" + base + ")"
	case *Num:
		if !b.IsInteger() || b.IsNegative() {
			base = "(" + base + ")"
		}
	}
	exp := p.print(pw.exp)
	switch x := pw.exp.(type) {
	case *Add, *Mul, *Pow:
		exp = "(" + exp + ")"
	case *Num:
		if !x.IsInteger() {
			exp = "(" + exp + ")"
		}
	}
	return base + "^" + exp
}

// negated reports whether t carries a negative sign and returns its
// magnitude.
func negated(t Expr) (Expr, bool) {
	if n, ok := t.(*Num); ok {
		if n.IsNegative() {
			return numMul(n, N(-1)), true
		}
		return t, false
	}
	if coeff, _ := splitCoeff(t); coeff.IsNegative() {
		return MulOf(N(-1), t), true
	}
	return t, false
}
