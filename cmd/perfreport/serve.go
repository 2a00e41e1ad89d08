package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/wellsgz/perfreport/internal/api"
	"github.com/wellsgz/perfreport/internal/logging"
	"github.com/wellsgz/perfreport/internal/nettest"
	"github.com/wellsgz/perfreport/internal/tui"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve analyses and Prometheus metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("address") {
				a.cfg.Server.Address = address
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			server := api.NewServer(a.collector())
			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start(a.cfg.Server.Address)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			return server.Shutdown(shutdownTimeout)
		},
	}
	cmd.Flags().StringVar(&address, "address", ":8080", "listen address")
	return cmd
}

func newViewCommand(a *app) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the newest analyses in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var logOutput io.Writer
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				logOutput = f
			}
			return tui.Run(a.collector(), logOutput)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file while the viewer runs (discarded otherwise)")
	return cmd
}

func newNetTestCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "nettest",
		Short: "Probe the configured targets and write a network test log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := nettest.NewRunner(a.cfg.NetTest)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			path, results, err := runner.RunToFile(ctx, a.cfg.Layout())
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if !r.Success {
					failed++
				}
			}
			if failed > 0 {
				logging.Warn("CLI", fmt.Sprintf("%d of %d targets did not respond", failed, len(results)), nil)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
