// Package sample evaluates Taylor expansions numerically over a grid and
// exports the resulting tables.
package sample

import (
	"github.com/govalues/decimal"

	"github.com/njchilds90/taylorpoly/symbol"
	"github.com/njchilds90/taylorpoly/taylorerr"
)

// MaxPoints bounds the grids Range will build.
const MaxPoints = 1_000_000

// Range returns start, start+step, ... up to but excluding stop. Grid points
// are computed as start + k*step in decimal arithmetic, so "0.01" stepped by
// "0.1" lands on 6.21 rather than 6.209999999999999. Each bound is a decimal
// literal or a constant expression such as "2*pi".
func Range(start, stop, step string) ([]float64, error) {
	lo, err := parseBound("start", start)
	if err != nil {
		return nil, err
	}
	hi, err := parseBound("stop", stop)
	if err != nil {
		return nil, err
	}
	dx, err := parseBound("step", step)
	if err != nil {
		return nil, err
	}
	return decimalRange(lo, hi, dx)
}

// RangeFloat is Range for float bounds.
func RangeFloat(start, stop, step float64) ([]float64, error) {
	var bounds [3]decimal.Decimal
	for i, f := range []float64{start, stop, step} {
		d, err := decimal.NewFromFloat64(f)
		if err != nil {
			return nil, taylorerr.Wrap(taylorerr.TypeInvalidRange, err, "range bound")
		}
		bounds[i] = d
	}
	return decimalRange(bounds[0], bounds[1], bounds[2])
}

func decimalRange(start, stop, step decimal.Decimal) ([]float64, error) {
	if step.Sign() <= 0 {
		return nil, taylorerr.Newf(taylorerr.TypeInvalidRange, "step must be positive, got %s", step)
	}
	if start.Cmp(stop) >= 0 {
		return nil, taylorerr.Newf(taylorerr.TypeInvalidRange, "start %s must be below stop %s", start, stop)
	}

	var grid []float64
	for k := int64(0); ; k++ {
		kd, err := decimal.New(k, 0)
		if err != nil {
			return nil, taylorerr.Wrap(taylorerr.TypeInvalidRange, err, "grid index")
		}
		offset, err := step.Mul(kd)
		if err != nil {
			return nil, taylorerr.Wrap(taylorerr.TypeInvalidRange, err, "grid offset")
		}
		x, err := start.Add(offset)
		if err != nil {
			return nil, taylorerr.Wrap(taylorerr.TypeInvalidRange, err, "grid point")
		}
		if x.Cmp(stop) >= 0 {
			return grid, nil
		}
		if k >= MaxPoints {
			return nil, taylorerr.Newf(taylorerr.TypeInvalidRange, "range has more than %d points", MaxPoints)
		}
		f, ok := x.Float64()
		if !ok {
			return nil, taylorerr.Newf(taylorerr.TypeInvalidRange, "grid point %s has no float value", x)
		}
		grid = append(grid, f)
	}
}

// parseBound reads a decimal literal, falling back to a constant
// expression.
func parseBound(name, s string) (decimal.Decimal, error) {
	if d, err := decimal.Parse(s); err == nil {
		return d, nil
	}
	e, err := symbol.Parse(s)
	if err != nil {
		return decimal.Decimal{}, taylorerr.Wrap(taylorerr.TypeInvalidRange, err, name)
	}
	v, err := symbol.Evalf(e, nil)
	if err != nil {
		return decimal.Decimal{}, taylorerr.Wrap(taylorerr.TypeInvalidRange, err, name)
	}
	d, err := decimal.NewFromFloat64(v)
	if err != nil {
		return decimal.Decimal{}, taylorerr.Wrap(taylorerr.TypeInvalidRange, err, name)
	}
	return d, nil
}
