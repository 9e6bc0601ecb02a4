package symbol

import (
	"sort"
	"strings"
)

// Add is a sum of terms.
type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// SubOf returns a - b.
func SubOf(a, b Expr) Expr { return AddOf(a, MulOf(N(-1), b)) }

// Simplify flattens nested sums, folds numbers, and combines like terms:
// terms that differ only in their numeric coefficient are merged. Symbols come
// first in name order, then the remaining terms in first-seen order, then the
// numeric part.
func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}

	type like struct {
		coeff *Num
		rest  Expr
	}
	numAccum := N(0)
	groups := map[string]*like{}
	var symKeys, otherKeys []string
	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			numAccum = numAdd(numAccum, n)
			continue
		}
		coeff, rest := splitCoeff(t)
		id := key(rest)
		g, seen := groups[id]
		if !seen {
			g = &like{coeff: N(0), rest: rest}
			groups[id] = g
			if _, isSym := rest.(*Sym); isSym {
				symKeys = append(symKeys, id)
			} else {
				otherKeys = append(otherKeys, id)
			}
		}
		g.coeff = numAdd(g.coeff, coeff)
	}
	sort.Strings(symKeys)

	result := make([]Expr, 0, len(groups)+1)
	for _, id := range append(symKeys, otherKeys...) {
		g := groups[id]
		switch {
		case g.coeff.IsZero():
		case g.coeff.IsOne():
			result = append(result, g.rest)
		default:
			result = append(result, MulOf(g.coeff, g.rest))
		}
	}
	if !numAccum.IsZero() {
		result = append(result, numAccum)
	}
	switch len(result) {
	case 0:
		return N(0)
	case 1:
		return result[0]
	}
	return &Add{terms: result}
}

// splitCoeff separates the leading numeric coefficient of a product.
func splitCoeff(e Expr) (*Num, Expr) {
	m, ok := e.(*Mul)
	if !ok || len(m.factors) < 2 {
		return N(1), e
	}
	coeff, ok := m.factors[0].(*Num)
	if !ok {
		return N(1), e
	}
	rest := m.factors[1:]
	if len(rest) == 1 {
		return coeff, rest[0]
	}
	return coeff, &Mul{factors: rest}
}

func (a *Add) String() string { return printer{}.print(a) }

func (a *Add) LaTeX() string {
	var sb strings.Builder
	for i, t := range a.terms {
		if i > 0 {
			if pos, neg := negated(t); neg {
				sb.WriteString(" - ")
				sb.WriteString(pos.LaTeX())
				continue
			}
			sb.WriteString(" + ")
		}
		sb.WriteString(t.LaTeX())
	}
	return sb.String()
}

func (a *Add) Sub(name string, value Expr) Expr {
	newTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		newTerms[i] = t.Sub(name, value)
	}
	return AddOf(newTerms...)
}

func (a *Add) Diff(name string) (Expr, error) {
	dTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		d, err := t.Diff(name)
		if err != nil {
			return nil, err
		}
		dTerms[i] = d
	}
	return AddOf(dTerms...), nil
}

func (a *Add) Eval() (*Num, bool) {
	acc := N(0)
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc = numAdd(acc, v)
	}
	return acc, true
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) kind() string { return "add" }

func (a *Add) toJSON() map[string]interface{} {
	ts := make([]map[string]interface{}, len(a.terms))
	for i, t := range a.terms {
		ts[i] = t.toJSON()
	}
	return map[string]interface{}{"type": "add", "terms": ts}
}

// Terms returns a copy of the summands.
func (a *Add) Terms() []Expr { return append([]Expr(nil), a.terms...) }
