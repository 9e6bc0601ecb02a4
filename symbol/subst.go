package symbol

import (
	"sort"
	"strconv"

	"github.com/njchilds90/taylorpoly/taylorerr"
)

// Substitute replaces name with value and checks the result. It fails when
// value is nil, or when the result has no free symbols left but is undefined,
// as ln(0) or 0^-1 are.
func Substitute(e Expr, name string, value Expr) (Expr, error) {
	if value == nil {
		return nil, taylorerr.Newf(taylorerr.TypeSubstitution, "substitute %s in %s: nil value", name, e)
	}
	result := Sub(e, name, value)
	if len(FreeSymbols(result)) == 0 {
		if _, ok := result.Eval(); !ok {
			return nil, taylorerr.Newf(taylorerr.TypeSubstitution,
				"%s is undefined at %s = %s", e, name, value)
		}
	}
	return result, nil
}

// Snapshot replaces the variable name with the placeholder symbol so that the
// expression's shape is frozen until Thaw binds the placeholder to a value.
// The placeholder must not already occur free in e.
func Snapshot(e Expr, name, placeholder string) (Expr, error) {
	if placeholder == name {
		return nil, taylorerr.Newf(taylorerr.TypeSubstitution, "placeholder %q equals the variable", placeholder)
	}
	if _, taken := FreeSymbols(e)[placeholder]; taken {
		return nil, taylorerr.Newf(taylorerr.TypeSubstitution,
			"placeholder %q already occurs in %s", placeholder, e)
	}
	return Sub(e, name, S(placeholder)), nil
}

// Thaw binds a snapshot's placeholder to value.
func Thaw(e Expr, placeholder string, value Expr) (Expr, error) {
	return Substitute(e, placeholder, value)
}

// FreeSymbols returns the names of the symbols in e. Constants are not free.
func FreeSymbols(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	walk(e, func(x Expr) {
		if s, ok := x.(*Sym); ok {
			out[s.name] = struct{}{}
		}
	})
	return out
}

// SortedSymbols returns the free symbol names in order.
func SortedSymbols(e Expr) []string {
	free := FreeSymbols(e)
	names := make([]string, 0, len(free))
	for n := range free {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// HasSymbol reports whether name occurs free in e.
func HasSymbol(e Expr, name string) bool {
	_, ok := FreeSymbols(e)[name]
	return ok
}

// UniqueName returns base if it is not taken, otherwise the first of base_1,
// base_2, ... that is free.
func UniqueName(base string, taken map[string]struct{}) string {
	if _, ok := taken[base]; !ok {
		return base
	}
	for i := 1; ; i++ {
		candidate := base + "_" + strconv.Itoa(i)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

// walk visits e and every subexpression, parents first.
func walk(e Expr, visit func(Expr)) {
	visit(e)
	switch v := e.(type) {
	case *Add:
		for _, t := range v.terms {
			walk(t, visit)
		}
	case *Mul:
		for _, f := range v.factors {
			walk(f, visit)
		}
	case *Pow:
		walk(v.base, visit)
		walk(v.exp, visit)
	case *Func:
		walk(v.arg, visit)
	}
}
