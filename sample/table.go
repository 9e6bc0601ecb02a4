package sample

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/njchilds90/taylorpoly"
	"github.com/njchilds90/taylorpoly/symbol"
	"github.com/njchilds90/taylorpoly/taylorerr"
)

// Column is one sampled series.
type Column struct {
	Label  string
	Values []float64
}

// Table holds sampled values on a shared grid. Columns[0] is the function,
// Columns[k+1] is the partial sum Pk.
type Table struct {
	Var     string
	Grid    []float64
	Columns []Column
}

// Evaluate samples the function and every partial sum of exp on grid.
// Points where an expression is undefined hold NaN. An expansion about a
// symbolic point cannot be sampled and fails with a SubstitutionError.
func Evaluate(exp *taylorpoly.Expansion, grid []float64) (*Table, error) {
	exprs := append([]symbol.Expr{exp.Func}, exp.Polynomials()...)
	tbl := &Table{
		Var:     exp.Var,
		Grid:    append([]float64(nil), grid...),
		Columns: make([]Column, len(exprs)),
	}
	for i, e := range exprs {
		label := "f"
		if i > 0 {
			label = "P" + strconv.Itoa(i-1)
		}
		values, err := sampleExpr(e, exp.Var, grid)
		if err != nil {
			return nil, taylorerr.Wrap(taylorerr.TypeSubstitution, err, "sample "+label)
		}
		tbl.Columns[i] = Column{Label: label, Values: values}
	}
	return tbl, nil
}

func sampleExpr(e symbol.Expr, name string, grid []float64) ([]float64, error) {
	fn, err := symbol.Lambdify(e, name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(grid))
	for i, x := range grid {
		v, err := fn(x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Header is the CSV header: the variable, then the column labels.
func (t *Table) Header() []string {
	h := make([]string, 0, len(t.Columns)+1)
	h = append(h, t.Var)
	for _, c := range t.Columns {
		h = append(h, c.Label)
	}
	return h
}

// WriteCSV writes the header and one row per grid point, values in %.15g.
func (t *Table) WriteCSV(w io.Writer) error {
	for _, c := range t.Columns {
		if len(c.Values) != len(t.Grid) {
			return taylorerr.Newf(taylorerr.TypeExport, "column %s has %d values for %d grid points",
				c.Label, len(c.Values), len(t.Grid))
		}
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return taylorerr.Wrap(taylorerr.TypeExport, err, "write header")
	}
	row := make([]string, len(t.Columns)+1)
	for r, x := range t.Grid {
		row[0] = fmt.Sprintf("%.15g", x)
		for c, col := range t.Columns {
			row[c+1] = fmt.Sprintf("%.15g", col.Values[r])
		}
		if err := cw.Write(row); err != nil {
			return taylorerr.Wrap(taylorerr.TypeExport, err, "write row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return taylorerr.Wrap(taylorerr.TypeExport, err, "flush csv")
	}
	return nil
}

// SaveCSV writes the table to path, creating parent directories.
func (t *Table) SaveCSV(path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return taylorerr.Wrap(taylorerr.TypeExport, err, "create directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return taylorerr.Wrap(taylorerr.TypeExport, err, "create "+path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = taylorerr.Wrap(taylorerr.TypeExport, cerr, "close "+path)
		}
	}()
	bw := bufio.NewWriter(f)
	if err := t.WriteCSV(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return taylorerr.Wrap(taylorerr.TypeExport, err, "write "+path)
	}
	return nil
}

// MaxAbsError returns max |Columns[col] - Columns[0]| over the grid points
// where both are finite. It is NaN when there are no such points.
func (t *Table) MaxAbsError(col int) (float64, error) {
	if col <= 0 || col >= len(t.Columns) {
		return 0, taylorerr.Newf(taylorerr.TypeInvalidRange, "column %d out of range 1..%d", col, len(t.Columns)-1)
	}
	ref, got := t.Columns[0].Values, t.Columns[col].Values
	worst, seen := 0.0, false
	for i := range ref {
		d := math.Abs(got[i] - ref[i])
		if math.IsNaN(d) || math.IsInf(d, 0) {
			continue
		}
		seen = true
		worst = math.Max(worst, d)
	}
	if !seen {
		return math.NaN(), nil
	}
	return worst, nil
}
