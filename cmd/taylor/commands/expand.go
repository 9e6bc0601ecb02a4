package commands

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/njchilds90/taylorpoly"
	"github.com/njchilds90/taylorpoly/symbol"
	"github.com/njchilds90/taylorpoly/taylorerr"
)

// exprFlags are the flags shared by commands that build one expansion.
type exprFlags struct {
	fn          string
	varName     string
	order       int
	point       string
	placeholder string
}

func (f *exprFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.fn, "func", "f", "ln(t)", "Function to expand")
	cmd.Flags().StringVarP(&f.varName, "var", "v", "t", "Expansion variable")
	cmd.Flags().IntVarP(&f.order, "order", "n", 4, "Highest order")
	cmd.Flags().StringVarP(&f.point, "point", "p", "pi", "Expansion point")
	cmd.Flags().StringVar(&f.placeholder, "placeholder", "", "Preferred placeholder for the point (default \"a\")")
}

func (f *exprFlags) expand(a *app) (*taylorpoly.Expansion, error) {
	fn, err := symbol.Parse(f.fn)
	if err != nil {
		return nil, fmt.Errorf("--func: %w", err)
	}
	point, err := symbol.Parse(f.point)
	if err != nil {
		return nil, fmt.Errorf("--point: %w", err)
	}
	x := taylorpoly.NewExpander(taylorpoly.WithLogger(a.log), taylorpoly.WithPlaceholder(f.placeholder))
	return x.Expand(fn, f.varName, f.order, point)
}

func newExpandCmd(a *app) *cobra.Command {
	var (
		flags  exprFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Print derivatives, terms and partial sums",
		Long: `Expand differentiates the function order times and prints each
derivative with the point held as a placeholder, each Taylor term and each
partial sum.

Examples:
  taylor expand
  taylor expand -f "exp(t)" -p 0 -n 6 --format latex`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := flags.expand(a)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch format {
			case "text":
				writeText(out, exp)
			case "latex":
				writeLaTeX(out, exp)
			case "json":
				b, err := json.MarshalIndent(exp, "", "  ")
				if err != nil {
					return taylorerr.Wrap(taylorerr.TypeExport, err, "encode expansion")
				}
				fmt.Fprintln(out, string(b))
			default:
				return taylorerr.Newf(taylorerr.TypeInvalidConfig, "unknown format %q (want text, json or latex)", format)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json or latex")
	return cmd
}

func writeText(w io.Writer, exp *taylorpoly.Expansion) {
	fmt.Fprintf(w, "f(%s) = %s about %s = %s, order %d\n", exp.Var, exp.Func, exp.Var, exp.Point, exp.Order)
	fmt.Fprintf(w, "\nderivatives (point as %s):\n", exp.Placeholder)
	for i, d := range exp.Derivatives() {
		fmt.Fprintf(w, "  f^(%d)(%s) = %s\n", i, exp.Placeholder, d)
	}
	fmt.Fprintln(w, "\nterms:")
	for i, t := range exp.Terms() {
		fmt.Fprintf(w, "  T%d = %s\n", i, t)
	}
	fmt.Fprintln(w, "\npartial sums:")
	for i, p := range exp.Polynomials() {
		fmt.Fprintf(w, "  P%d = %s\n", i, p)
		if c := symbol.Collect(p, exp.Var); c.String() != p.String() {
			fmt.Fprintf(w, "     = %s\n", c)
		}
		fmt.Fprintf(w, "     ~ %s\n", symbol.Approx(p, 6))
	}
}

func writeLaTeX(w io.Writer, exp *taylorpoly.Expansion) {
	for i, p := range exp.Polynomials() {
		fmt.Fprintf(w, "P_{%d}(%s) = %s\n", i, exp.Var, p.LaTeX())
	}
}
