// Package taylorpoly expands a single-variable symbolic function into its
// Taylor terms about a point and accumulates them into the partial-sum
// polynomials P0..Pn.
//
//	f := symbol.LnOf(symbol.S("t"))
//	exp, err := taylorpoly.Expand(f, "t", 4, symbol.Pi)
//	exp.Polynomial(2) // ln(pi) + pi^-1*(t - pi) - 1/2*(t - pi)^2*pi^-2
//
// Expansion is pure: no shared state, no I/O, and the results are immutable.
package taylorpoly

import (
	"fmt"

	"github.com/njchilds90/taylorpoly/symbol"
	"github.com/njchilds90/taylorpoly/taylorerr"
)

// Expansion is the result of expanding Func in Var about Point up to Order.
// Derivatives, Terms and Polynomials all have Order+1 entries.
type Expansion struct {
	Func        symbol.Expr
	Var         string
	Placeholder string
	Point       symbol.Expr
	Order       int

	derivatives []symbol.Expr
	terms       []symbol.Expr
	polynomials []symbol.Expr
}

// Derivatives returns the snapshots f, f', ..., f^(n) with Var replaced by
// Placeholder.
func (e *Expansion) Derivatives() []symbol.Expr { return clone(e.derivatives) }

// Terms returns f^(i)(Point)/i! * (Var - Point)^i for i = 0..Order.
func (e *Expansion) Terms() []symbol.Expr { return clone(e.terms) }

// Polynomials returns the partial sums P0..Pn.
func (e *Expansion) Polynomials() []symbol.Expr { return clone(e.polynomials) }

// Polynomial returns Pk. It panics when k is outside 0..Order.
func (e *Expansion) Polynomial(k int) symbol.Expr { return e.polynomials[k] }

// Len is Order+1.
func (e *Expansion) Len() int { return len(e.terms) }

func clone(s []symbol.Expr) []symbol.Expr { return append([]symbol.Expr(nil), s...) }

var defaultExpander = NewExpander()

// Expand computes the Taylor expansion of f in varName about point up to
// order with the default Expander.
func Expand(f symbol.Expr, varName string, order int, point symbol.Expr) (*Expansion, error) {
	return defaultExpander.Expand(f, varName, order, point)
}

// Expander expands functions with a fixed set of options. It holds no state
// between calls and is safe for concurrent use.
type Expander struct {
	opts options
}

func NewExpander(opts ...Option) *Expander {
	o := defaultOptions()
	for _, opt := range opts {
		o = opt(o)
	}
	return &Expander{opts: o}
}

// Expand differentiates f order times in a bounded loop, snapshotting each
// derivative under a placeholder chosen for this call, then builds the terms
// and partial sums.
func (x *Expander) Expand(f symbol.Expr, varName string, order int, point symbol.Expr) (*Expansion, error) {
	if order < 0 {
		return nil, taylorerr.Newf(taylorerr.TypeInvalidOrder, "order must be >= 0, got %d", order)
	}
	if f == nil || point == nil {
		return nil, taylorerr.New(taylorerr.TypeSubstitution, "function and point are required")
	}
	if varName == "" {
		return nil, taylorerr.New(taylorerr.TypeSubstitution, "variable name is empty")
	}
	if symbol.HasSymbol(point, varName) {
		return nil, taylorerr.Newf(taylorerr.TypeSubstitution,
			"point %s depends on the expansion variable %s", point, varName)
	}

	placeholder := x.placeholderFor(f, varName, point)
	log := x.opts.logger.With().
		Str("func", f.String()).
		Str("var", varName).
		Str("point", point.String()).
		Int("order", order).
		Logger()

	derivatives := make([]symbol.Expr, order+1)
	live := f
	for i := 0; i <= order; i++ {
		if i > 0 {
			d, err := symbol.Diff(live, varName)
			if err != nil {
				return nil, taylorerr.Wrap(taylorerr.TypeDifferentiation, err, fmt.Sprintf("derivative %d", i))
			}
			live = d
		}
		snap, err := symbol.Snapshot(live, varName, placeholder)
		if err != nil {
			return nil, err
		}
		derivatives[i] = snap
		log.Debug().Int("i", i).Str("derivative", snap.String()).Msg("derivative")
	}

	terms, err := Terms(derivatives, varName, placeholder, point)
	if err != nil {
		return nil, err
	}
	return &Expansion{
		Func:        f,
		Var:         varName,
		Placeholder: placeholder,
		Point:       point,
		Order:       order,
		derivatives: derivatives,
		terms:       terms,
		polynomials: Accumulate(terms),
	}, nil
}

// placeholderFor picks the preferred placeholder unless it would collide with
// a symbol of f, of point, or the variable itself.
func (x *Expander) placeholderFor(f symbol.Expr, varName string, point symbol.Expr) string {
	taken := symbol.FreeSymbols(f)
	for s := range symbol.FreeSymbols(point) {
		taken[s] = struct{}{}
	}
	taken[varName] = struct{}{}
	return symbol.UniqueName(x.opts.placeholder, taken)
}

// Terms applies the term formula to derivative snapshots:
//
//	term_i = derivatives[i]{placeholder := point} / i! * (varName - point)^i
//
// Feeding it an Expansion's own Derivatives reproduces its Terms exactly.
func Terms(derivatives []symbol.Expr, varName, placeholder string, point symbol.Expr) ([]symbol.Expr, error) {
	terms := make([]symbol.Expr, len(derivatives))
	shift := symbol.SubOf(symbol.S(varName), point)
	for i, d := range derivatives {
		value, err := symbol.Thaw(d, placeholder, point)
		if err != nil {
			return nil, taylorerr.Wrap(taylorerr.TypeSubstitution, err, fmt.Sprintf("term %d", i))
		}
		terms[i] = symbol.MulOf(
			value,
			symbol.PowOf(symbol.Factorial(i), symbol.N(-1)),
			symbol.PowOf(shift, symbol.N(int64(i))),
		)
	}
	return terms, nil
}

// Accumulate returns the running sums of terms: out[0] = terms[0] and
// out[k] = out[k-1] + terms[k]. Empty input gives an empty, non-nil result.
func Accumulate(terms []symbol.Expr) []symbol.Expr {
	out := make([]symbol.Expr, len(terms))
	for k, term := range terms {
		if k == 0 {
			out[0] = term
			continue
		}
		out[k] = symbol.AddOf(out[k-1], term)
	}
	return out
}
