package symbol

import (
	"math"

	"github.com/njchilds90/taylorpoly/taylorerr"
)

// Evalf evaluates e in float64 arithmetic with the symbols bound by env.
// Points outside the domain (ln of a non-positive number, division by zero)
// give NaN and no error; an unbound symbol is a SubstitutionError.
func Evalf(e Expr, env map[string]float64) (float64, error) {
	switch v := e.(type) {
	case *Num:
		return v.Float64(), nil
	case *Const:
		return v.value, nil
	case *Sym:
		x, ok := env[v.name]
		if !ok {
			return 0, taylorerr.Newf(taylorerr.TypeSubstitution, "symbol %s is unbound", v.name)
		}
		return x, nil
	case *Add:
		sum := 0.0
		for _, t := range v.terms {
			x, err := Evalf(t, env)
			if err != nil {
				return 0, err
			}
			sum += x
		}
		return sum, nil
	case *Mul:
		prod := 1.0
		for _, f := range v.factors {
			x, err := Evalf(f, env)
			if err != nil {
				return 0, err
			}
			prod *= x
		}
		return prod, nil
	case *Pow:
		b, err := Evalf(v.base, env)
		if err != nil {
			return 0, err
		}
		x, err := Evalf(v.exp, env)
		if err != nil {
			return 0, err
		}
		if b == 0 && x <= 0 {
			return math.NaN(), nil
		}
		return math.Pow(b, x), nil
	case *Func:
		x, err := Evalf(v.arg, env)
		if err != nil {
			return 0, err
		}
		r, ok := applyFloat(v.name, x)
		if !ok {
			return math.NaN(), nil
		}
		return r, nil
	}
	return 0, taylorerr.Newf(taylorerr.TypeSubstitution, "cannot evaluate %s", e)
}

// Lambdify compiles e into a function of the single variable name. Other
// free symbols make it fail up front.
func Lambdify(e Expr, name string) (func(float64) (float64, error), error) {
	for s := range FreeSymbols(e) {
		if s != name {
			return nil, taylorerr.Newf(taylorerr.TypeSubstitution, "%s has free symbol %s besides %s", e, s, name)
		}
	}
	return func(x float64) (float64, error) {
		return Evalf(e, map[string]float64{name: x})
	}, nil
}
