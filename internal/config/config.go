// Package config loads taylor job files.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/njchilds90/taylorpoly/symbol"
	"github.com/njchilds90/taylorpoly/taylorerr"
)

// OutDirEnv, when set, is the directory relative output paths resolve
// against.
const OutDirEnv = "TAYLOR_OUT_DIR"

// Job describes one expansion together with how to sample and draw it.
type Job struct {
	Func        string `yaml:"func"`
	Var         string `yaml:"var"`
	Order       int    `yaml:"order"`
	Point       string `yaml:"point"`
	Placeholder string `yaml:"placeholder,omitempty"`
	Range       Range  `yaml:"range"`
	Output      Output `yaml:"output"`
	Plot        Plot   `yaml:"plot"`
}

// Range is the sampling grid. Bounds are decimal literals or constant
// expressions such as "2*pi".
type Range struct {
	Start string `yaml:"start"`
	Stop  string `yaml:"stop"`
	Step  string `yaml:"step"`
}

// Output holds the file paths to write. An empty path skips that output.
type Output struct {
	CSV string `yaml:"csv"`
	PNG string `yaml:"png"`
}

// Plot holds the image settings.
type Plot struct {
	Title  string   `yaml:"title"`
	YMin   *float64 `yaml:"y_min,omitempty"`
	YMax   *float64 `yaml:"y_max,omitempty"`
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
	DPI    int      `yaml:"dpi"`
}

// Default returns the ln(t) about pi job.
func Default() *Job {
	lo, hi := -3.0, 3.0
	return &Job{
		Func:  "ln(t)",
		Var:   "t",
		Order: 4,
		Point: "pi",
		Range: Range{Start: "0.01", Stop: "2*pi", Step: "0.1"},
		Output: Output{
			CSV: "taylor_ln.csv",
			PNG: "taylor_ln.png",
		},
		Plot: Plot{
			Title:  "Taylor polynomials of ln(t) about pi",
			YMin:   &lo,
			YMax:   &hi,
			Width:  8,
			Height: 6,
			DPI:    150,
		},
	}
}

// Load reads a job file. Fields the file leaves out keep their Default
// values; unknown fields are an error.
func Load(path string) (*Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, taylorerr.Wrap(taylorerr.TypeInvalidConfig, err, "open "+path)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a job from r, as Load does.
func Decode(r io.Reader) (*Job, error) {
	job := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(job); err != nil && !errors.Is(err, io.EOF) {
		return nil, taylorerr.Wrap(taylorerr.TypeInvalidConfig, err, "decode job")
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}

// Encode writes the job as YAML.
func (j *Job) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(j); err != nil {
		return nil, taylorerr.Wrap(taylorerr.TypeInvalidConfig, err, "encode job")
	}
	if err := enc.Close(); err != nil {
		return nil, taylorerr.Wrap(taylorerr.TypeInvalidConfig, err, "encode job")
	}
	return buf.Bytes(), nil
}

// Validate checks that the job can be run.
func (j *Job) Validate() error {
	if j.Var == "" {
		return taylorerr.New(taylorerr.TypeInvalidConfig, "var is required")
	}
	if j.Order < 0 {
		return taylorerr.Newf(taylorerr.TypeInvalidConfig, "order must be non-negative, got %d", j.Order)
	}
	if _, _, err := j.Exprs(); err != nil {
		return err
	}
	if j.Range.Start == "" || j.Range.Stop == "" || j.Range.Step == "" {
		return taylorerr.New(taylorerr.TypeInvalidConfig, "range needs start, stop and step")
	}
	if j.Output.PNG != "" && (j.Plot.Width <= 0 || j.Plot.Height <= 0) {
		return taylorerr.Newf(taylorerr.TypeInvalidConfig, "plot size %gx%g is not positive", j.Plot.Width, j.Plot.Height)
	}
	if j.Plot.YMin != nil && j.Plot.YMax != nil && *j.Plot.YMin >= *j.Plot.YMax {
		return taylorerr.Newf(taylorerr.TypeInvalidConfig, "y_min %g must be below y_max %g", *j.Plot.YMin, *j.Plot.YMax)
	}
	return nil
}

// Exprs parses the function and the expansion point.
func (j *Job) Exprs() (f, point symbol.Expr, err error) {
	if f, err = symbol.Parse(j.Func); err != nil {
		return nil, nil, taylorerr.Wrap(taylorerr.TypeInvalidConfig, err, "func")
	}
	if point, err = symbol.Parse(j.Point); err != nil {
		return nil, nil, taylorerr.Wrap(taylorerr.TypeInvalidConfig, err, "point")
	}
	return f, point, nil
}

// OutputPath resolves p against OutDirEnv when p is relative.
func OutputPath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if dir := os.Getenv(OutDirEnv); dir != "" {
		return filepath.Join(dir, p)
	}
	return p
}
