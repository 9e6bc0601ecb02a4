// Package verify cross-checks symbolic derivatives against numeric ones.
package verify

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/num/hyperdual"

	"github.com/njchilds90/taylorpoly"
	"github.com/njchilds90/taylorpoly/symbol"
	"github.com/njchilds90/taylorpoly/taylorerr"
)

// Method names the numeric differentiation scheme of a Check.
type Method string

const (
	FiniteDiff Method = "finite-difference"
	HyperDual  Method = "hyperdual"
)

// DefaultTol is the relative tolerance used when Options.Tol is zero.
const DefaultTol = 1e-5

// Options configure Derivatives. At overrides the evaluation point, which
// otherwise is the expansion point.
type Options struct {
	At  *float64
	Tol float64
}

// Check compares one symbolic derivative with a numeric estimate.
type Check struct {
	Order    int     `json:"order"`
	Method   Method  `json:"method"`
	At       float64 `json:"at"`
	Symbolic float64 `json:"symbolic"`
	Numeric  float64 `json:"numeric"`
	AbsErr   float64 `json:"abs_err"`
	RelErr   float64 `json:"rel_err"`
	Pass     bool    `json:"pass"`
}

// Derivatives checks the first and second derivatives of exp. Finite
// differences are always reported; hyperdual checks are added when every
// head of the function has a hyperdual counterpart. Orders above the
// expansion order are skipped.
func Derivatives(exp *taylorpoly.Expansion, opts Options) ([]Check, error) {
	tol := opts.Tol
	if tol == 0 {
		tol = DefaultTol
	}
	if tol < 0 {
		return nil, taylorerr.Newf(taylorerr.TypeInvalidConfig, "tolerance %g is negative", tol)
	}

	var at float64
	if opts.At != nil {
		at = *opts.At
	} else {
		v, err := symbol.Evalf(exp.Point, nil)
		if err != nil {
			return nil, taylorerr.Wrap(taylorerr.TypeSubstitution, err, "numeric point")
		}
		at = v
	}

	f, err := symbol.Lambdify(exp.Func, exp.Var)
	if err != nil {
		return nil, err
	}
	var ferr error
	g := func(x float64) float64 {
		v, err := f(x)
		if err != nil && ferr == nil {
			ferr = err
		}
		return v
	}

	derivs := exp.Derivatives()
	dual, dualOK := dualFunc(exp.Func, exp.Var)
	var dualAt hyperdual.Number
	if dualOK {
		dualAt = dual(hyperdual.Number{Real: at, E1mag: 1, E2mag: 1})
	}

	var checks []Check
	for _, order := range []int{1, 2} {
		if order >= len(derivs) {
			break
		}
		want, err := symbol.Evalf(derivs[order], map[string]float64{exp.Placeholder: at})
		if err != nil {
			return nil, err
		}

		formula := fd.Central
		if order == 2 {
			formula = fd.Central2nd
		}
		got := fd.Derivative(g, at, &fd.Settings{Formula: formula})
		if ferr != nil {
			return nil, ferr
		}
		checks = append(checks, newCheck(order, FiniteDiff, at, want, got, tol))

		if dualOK {
			got := dualAt.E1mag
			if order == 2 {
				got = dualAt.E1E2mag
			}
			checks = append(checks, newCheck(order, HyperDual, at, want, got, tol))
		}
	}
	return checks, nil
}

func newCheck(order int, m Method, at, want, got, tol float64) Check {
	abs := math.Abs(want - got)
	rel := abs / math.Max(1, math.Abs(want))
	return Check{
		Order:    order,
		Method:   m,
		At:       at,
		Symbolic: want,
		Numeric:  got,
		AbsErr:   abs,
		RelErr:   rel,
		Pass:     rel <= tol,
	}
}

// Passed reports whether every check passed.
func Passed(checks []Check) bool {
	for _, c := range checks {
		if !c.Pass {
			return false
		}
	}
	return true
}
