package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/njchilds90/taylorpoly/verify"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		flags exprFlags
		at    float64
		tol   float64
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compare symbolic derivatives with numeric ones",
		Long: `Check evaluates the first and second symbolic derivatives at a point
and compares them with central finite differences and, where the function
allows it, hyperdual numbers.

Examples:
  taylor check
  taylor check -f "sin(t)^2" -p 1 --tol 1e-8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := flags.expand(a)
			if err != nil {
				return err
			}
			opts := verify.Options{Tol: tol}
			if cmd.Flags().Changed("at") {
				opts.At = &at
			}
			checks, err := verify.Derivatives(exp, opts)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ORDER\tMETHOD\tAT\tSYMBOLIC\tNUMERIC\tREL ERR\tPASS")
			for _, c := range checks {
				fmt.Fprintf(tw, "%d\t%s\t%.6g\t%.12g\t%.12g\t%.2e\t%t\n",
					c.Order, c.Method, c.At, c.Symbolic, c.Numeric, c.RelErr, c.Pass)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if !verify.Passed(checks) {
				return fmt.Errorf("derivative check failed for %s", exp.Func)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().Float64Var(&at, "at", 0, "Evaluation point (default: the expansion point)")
	cmd.Flags().Float64Var(&tol, "tol", verify.DefaultTol, "Relative tolerance")
	return cmd
}
