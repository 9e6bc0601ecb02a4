package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njchilds90/taylorpoly"
	"github.com/njchilds90/taylorpoly/internal/config"
	"github.com/njchilds90/taylorpoly/render"
	"github.com/njchilds90/taylorpoly/sample"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		cfgPath string
		flags   exprFlags
		rng     config.Range
		out     config.Output
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Expand, sample and write the CSV table and PNG plot",
		Long: `Run executes a job: it expands the function, samples the function and
every partial sum over the range, and writes the table and the plot.

Flags override the job file; without --config the built-in ln(t) job runs.

Examples:
  taylor run
  taylor run --config job.yaml --png ""
  taylor run -f "sin(t)" -p 0 -n 7 --start "-pi" --stop pi --step 0.05`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			job := config.Default()
			if cfgPath != "" {
				var err error
				if job, err = config.Load(cfgPath); err != nil {
					return err
				}
			}
			fs := cmd.Flags()
			overlay := func(name string, dst *string, src string) {
				if fs.Changed(name) {
					*dst = src
				}
			}
			overlay("func", &job.Func, flags.fn)
			overlay("var", &job.Var, flags.varName)
			overlay("point", &job.Point, flags.point)
			overlay("placeholder", &job.Placeholder, flags.placeholder)
			overlay("start", &job.Range.Start, rng.Start)
			overlay("stop", &job.Range.Stop, rng.Stop)
			overlay("step", &job.Range.Step, rng.Step)
			overlay("csv", &job.Output.CSV, out.CSV)
			overlay("png", &job.Output.PNG, out.PNG)
			if fs.Changed("order") {
				job.Order = flags.order
			}
			if err := job.Validate(); err != nil {
				return err
			}
			return runJob(cmd, a, job)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Job file (YAML)")
	flags.register(cmd)
	cmd.Flags().StringVar(&rng.Start, "start", "", "First grid point")
	cmd.Flags().StringVar(&rng.Stop, "stop", "", "Grid end, excluded")
	cmd.Flags().StringVar(&rng.Step, "step", "", "Grid step")
	cmd.Flags().StringVar(&out.CSV, "csv", "", "CSV output path, empty to skip")
	cmd.Flags().StringVar(&out.PNG, "png", "", "PNG output path, empty to skip")
	return cmd
}

func runJob(cmd *cobra.Command, a *app, job *config.Job) error {
	f, point, err := job.Exprs()
	if err != nil {
		return err
	}
	x := taylorpoly.NewExpander(taylorpoly.WithLogger(a.log), taylorpoly.WithPlaceholder(job.Placeholder))
	exp, err := x.Expand(f, job.Var, job.Order, point)
	if err != nil {
		return err
	}

	grid, err := sample.Range(job.Range.Start, job.Range.Stop, job.Range.Step)
	if err != nil {
		return err
	}
	tbl, err := sample.Evaluate(exp, grid)
	if err != nil {
		return err
	}
	a.log.Info().Int("points", len(grid)).Int("columns", len(tbl.Columns)).Msg("sampled")

	w := cmd.OutOrStdout()
	for k, p := range exp.Polynomials() {
		e, err := tbl.MaxAbsError(k + 1)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "P%d = %s\n     max |P%d - f| = %.6g\n", k, p, k, e)
	}

	if path := config.OutputPath(job.Output.CSV); path != "" {
		if err := tbl.SaveCSV(path); err != nil {
			return err
		}
		a.log.Info().Str("path", path).Msg("wrote table")
		fmt.Fprintf(w, "wrote %s (%d rows)\n", path, len(grid))
	}
	if path := config.OutputPath(job.Output.PNG); path != "" {
		p, err := render.Plot(tbl, render.Options{
			Title:  job.Plot.Title,
			XLabel: job.Var,
			YLabel: "y",
			YMin:   job.Plot.YMin,
			YMax:   job.Plot.YMax,
		})
		if err != nil {
			return err
		}
		if err := render.SavePNG(p, path, job.Plot.Width, job.Plot.Height, job.Plot.DPI); err != nil {
			return err
		}
		a.log.Info().Str("path", path).Msg("wrote plot")
		fmt.Fprintf(w, "wrote %s\n", path)
	}
	return nil
}
