// Command mcp-server exposes the Taylor tools over HTTP for agent frameworks.
//
//	POST /tool     execute a tool call
//	GET  /schema   tool schema for agent registration
//	GET  /health   liveness check
//	GET  /metrics  prometheus metrics
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/njchilds90/taylorpoly/internal/logger"
	"github.com/njchilds90/taylorpoly/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var (
		port       int
		logLevel   string
		logConsole bool
		maxBody    int64
	)
	cmd := &cobra.Command{
		Use:           "mcp-server",
		Short:         "HTTP tool endpoint for Taylor expansions",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New("taylor-mcp", logLevel, os.Stderr, logConsole)
			if err != nil {
				return err
			}
			s, err := server.New(server.WithLogger(log), server.WithMaxBodyBytes(maxBody))
			if err != nil {
				return err
			}
			srv := s.HTTPServer(fmt.Sprintf(":%d", port))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				log.Info().Str("addr", srv.Addr).Msg("listening")
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level")
	cmd.Flags().BoolVar(&logConsole, "log-console", false, "Human-readable log lines instead of JSON")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodyBytes, "Request body limit in bytes")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
