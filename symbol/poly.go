package symbol

import "sort"

// maxExpandPower bounds the integer powers Expand multiplies out.
const maxExpandPower = 32

// Expand distributes products over sums and multiplies out small
// non-negative integer powers of sums.
func Expand(e Expr) Expr { return expandExpr(e).Simplify() }

func expandExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Mul:
		expanded := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			expanded[i] = expandExpr(f)
		}
		for i, f := range expanded {
			a, ok := f.(*Add)
			if !ok {
				continue
			}
			rest := make([]Expr, 0, len(expanded)-1)
			rest = append(rest, expanded[:i]...)
			rest = append(rest, expanded[i+1:]...)
			terms := make([]Expr, len(a.terms))
			for k, t := range a.terms {
				terms[k] = expandExpr(MulOf(append([]Expr{t}, rest...)...))
			}
			return AddOf(terms...)
		}
		return MulOf(expanded...)
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = expandExpr(t)
		}
		return AddOf(terms...)
	case *Pow:
		base := expandExpr(v.base)
		if n, ok := v.exp.(*Num); ok && n.IsInteger() {
			k := n.val.Num().Int64()
			if _, isAdd := base.(*Add); isAdd && k >= 2 && k <= maxExpandPower {
				result := base
				for i := int64(1); i < k; i++ {
					result = distribute(result, base)
				}
				return result
			}
		}
		return PowOf(base, expandExpr(v.exp))
	case *Func:
		return funcOf(v.name, expandExpr(v.arg)).Simplify()
	}
	return e
}

// distribute multiplies two expanded expressions term by term. MulOf would
// fold a sum times itself back into a power.
func distribute(a, b Expr) Expr {
	ta, tb := summands(a), summands(b)
	products := make([]Expr, 0, len(ta)*len(tb))
	for _, x := range ta {
		for _, y := range tb {
			products = append(products, expandExpr(MulOf(x, y)))
		}
	}
	return AddOf(products...)
}

func summands(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}

// Degree returns the degree of e as a polynomial in name, or -1 when e is
// not a polynomial in name.
func Degree(e Expr, name string) int {
	switch v := e.Simplify().(type) {
	case *Num, *Const:
		return 0
	case *Sym:
		if v.name == name {
			return 1
		}
		return 0
	case *Pow:
		d := Degree(v.base, name)
		if d == 0 && !HasSymbol(v.exp, name) {
			return 0
		}
		n, ok := v.exp.(*Num)
		if d < 0 || !ok || !n.IsInteger() || n.IsNegative() {
			return -1
		}
		return d * int(n.val.Num().Int64())
	case *Add:
		maxDeg := 0
		for _, t := range v.terms {
			d := Degree(t, name)
			if d < 0 {
				return -1
			}
			if d > maxDeg {
				maxDeg = d
			}
		}
		return maxDeg
	case *Mul:
		total := 0
		for _, f := range v.factors {
			d := Degree(f, name)
			if d < 0 {
				return -1
			}
			total += d
		}
		return total
	case *Func:
		if HasSymbol(v.arg, name) {
			return -1
		}
		return 0
	}
	return -1
}

// PolyCoeffs expands e and returns its coefficients by power of name. The
// result is nil when e is not a polynomial in name.
func PolyCoeffs(e Expr, name string) map[int]Expr {
	if Degree(e, name) < 0 || !expandable(e, name) {
		return nil
	}
	expanded := Expand(e)
	out := map[int]Expr{}
	for _, t := range summands(expanded) {
		if !monomial(t, name) {
			return nil
		}
		deg := Degree(t, name)
		addCoeff(out, deg, Sub(t, name, N(1)))
	}
	return out
}

// expandable reports whether every power of a sum involving name is small
// enough for Expand to multiply out.
func expandable(e Expr, name string) bool {
	switch v := e.(type) {
	case *Pow:
		if _, isAdd := v.base.(*Add); isAdd && HasSymbol(v.base, name) {
			n, ok := v.exp.(*Num)
			if !ok || !n.IsInteger() || n.val.Num().Int64() > maxExpandPower {
				return false
			}
		}
		return expandable(v.base, name)
	case *Add:
		for _, t := range v.terms {
			if !expandable(t, name) {
				return false
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if !expandable(f, name) {
				return false
			}
		}
	}
	return true
}

// monomial reports whether name occurs in t only as a plain factor or power,
// so that substituting 1 for name leaves the coefficient.
func monomial(t Expr, name string) bool {
	switch v := t.(type) {
	case *Add:
		return !HasSymbol(v, name)
	case *Mul:
		for _, f := range v.factors {
			if !monomial(f, name) {
				return false
			}
		}
	case *Pow:
		return monomial(v.base, name)
	}
	return true
}

func addCoeff(out map[int]Expr, deg int, val Expr) {
	if existing, ok := out[deg]; ok {
		out[deg] = AddOf(existing, val)
	} else {
		out[deg] = val
	}
}

// Collect rewrites a polynomial in name as a sum of coeff*name^k in
// descending powers. Non-polynomials are returned unchanged. The result keeps
// its display order, so it is not in the canonical form AddOf would build.
func Collect(e Expr, name string) Expr {
	coeffs := PolyCoeffs(e, name)
	if coeffs == nil {
		return e
	}
	degrees := make([]int, 0, len(coeffs))
	for d := range coeffs {
		degrees = append(degrees, d)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(degrees)))
	terms := make([]Expr, 0, len(degrees))
	for _, d := range degrees {
		c := coeffs[d]
		switch {
		case isNumEqual(c, 0):
		case d == 0:
			terms = append(terms, summands(c)...)
		default:
			terms = append(terms, MulOf(c, PowOf(S(name), N(int64(d)))))
		}
	}
	switch len(terms) {
	case 0:
		return N(0)
	case 1:
		return terms[0]
	}
	return &Add{terms: terms}
}
