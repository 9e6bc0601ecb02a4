// Package commands provides the CLI commands for the taylor tool.
package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/njchilds90/taylorpoly/internal/logger"
)

type app struct {
	log        zerolog.Logger
	logLevel   string
	logConsole bool
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}
	root := &cobra.Command{
		Use:   "taylor",
		Short: "Taylor polynomials of symbolic functions",
		Long: `taylor differentiates a function of one variable, builds the Taylor
terms about a point and the partial sums P0..Pn.

Usage:
  taylor expand --func "ln(t)" --point pi --order 4
  taylor run --config job.yaml
  taylor check --func "exp(t)" --point 0
  taylor version`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logger.New("taylor", a.logLevel, cmd.ErrOrStderr(), a.logConsole)
			if err != nil {
				return err
			}
			a.log = l
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.logConsole, "log-console", false, "Human-readable log lines instead of JSON")

	root.AddCommand(newExpandCmd(a))
	root.AddCommand(newRunCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
