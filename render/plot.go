// Package render draws sampled Taylor tables with gonum/plot.
package render

import (
	"bufio"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/njchilds90/taylorpoly/sample"
	"github.com/njchilds90/taylorpoly/taylorerr"
)

// Options controls the look of a plot. A nil YMin or YMax leaves that end
// of the axis to autoscaling.
type Options struct {
	Title  string
	XLabel string
	YLabel string
	YMin   *float64
	YMax   *float64
}

// DefaultDPI is used by SavePNG when dpi is not positive.
const DefaultDPI = 150

// Plot draws one line per table column. Column 0 is drawn thicker. Points
// with no finite value break the line into separate segments.
func Plot(tbl *sample.Table, opts Options) (*plot.Plot, error) {
	if tbl == nil || len(tbl.Columns) == 0 || len(tbl.Grid) == 0 {
		return nil, taylorerr.New(taylorerr.TypeExport, "nothing to plot")
	}
	if opts.YMin != nil && opts.YMax != nil && *opts.YMin >= *opts.YMax {
		return nil, taylorerr.Newf(taylorerr.TypeInvalidRange, "y range [%g, %g] is empty", *opts.YMin, *opts.YMax)
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	if p.X.Label.Text == "" {
		p.X.Label.Text = tbl.Var
	}
	p.Y.Label.Text = opts.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, col := range tbl.Columns {
		if len(col.Values) != len(tbl.Grid) {
			return nil, taylorerr.Newf(taylorerr.TypeExport, "column %s has %d values for %d grid points",
				col.Label, len(col.Values), len(tbl.Grid))
		}
		style := draw.LineStyle{Color: plotutil.Color(i), Width: vg.Points(1.5)}
		if i == 0 {
			style.Width = vg.Points(3)
		} else {
			style.Dashes = plotutil.Dashes(i)
		}
		var legend plot.Thumbnailer
		for _, seg := range segments(tbl.Grid, col.Values) {
			line, err := plotter.NewLine(seg)
			if err != nil {
				return nil, taylorerr.Wrap(taylorerr.TypeExport, err, "line "+col.Label)
			}
			line.LineStyle = style
			p.Add(line)
			if legend == nil {
				legend = line
			}
		}
		if legend != nil {
			p.Legend.Add(col.Label, legend)
		}
	}

	if opts.YMin != nil {
		p.Y.Min = *opts.YMin
	}
	if opts.YMax != nil {
		p.Y.Max = *opts.YMax
	}
	return p, nil
}

// segments splits the series at every non-finite value.
func segments(xs, ys []float64) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for i, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: xs[i], Y: y})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// SavePNG renders p to a PNG of widthIn by heightIn inches, creating parent
// directories.
func SavePNG(p *plot.Plot, path string, widthIn, heightIn float64, dpi int) (err error) {
	if widthIn <= 0 || heightIn <= 0 {
		return taylorerr.Newf(taylorerr.TypeExport, "image size %gx%g in is not positive", widthIn, heightIn)
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return taylorerr.Wrap(taylorerr.TypeExport, err, "create directory")
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(c))

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
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		return taylorerr.Wrap(taylorerr.TypeExport, err, "encode png")
	}
	if err := bw.Flush(); err != nil {
		return taylorerr.Wrap(taylorerr.TypeExport, err, "write "+path)
	}
	return nil
}
