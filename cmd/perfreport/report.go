package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/wellsgz/perfreport/internal/collector"
	"github.com/wellsgz/perfreport/internal/logging"
	"github.com/wellsgz/perfreport/internal/report"
)

type reportOptions struct {
	output      string
	metricsFile string
}

func addReportFlags(cmd *cobra.Command, opts *reportOptions) {
	cmd.Flags().StringVar(&opts.output, "output", "", "also write the report to this file")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "print the stability analysis of this metrics file as JSON instead of the report")
}

func newReportCommand(a *app) *cobra.Command {
	opts := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the performance report for the newest test logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReport(cmd, opts)
		},
	}
	addReportFlags(cmd, opts)
	return cmd
}

func newAnalyzeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze FILE",
		Short: "Print the stability analysis of one metrics file as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := collector.LoadStability(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), analysis)
		},
	}
}

func (a *app) runReport(cmd *cobra.Command, opts *reportOptions) error {
	out := cmd.OutOrStdout()

	if opts.metricsFile != "" {
		analysis, err := collector.LoadStability(opts.metricsFile)
		if err != nil {
			logging.Warn("CLI", "no stability analysis for "+opts.metricsFile, map[string]string{"error": err.Error()})
			return nil
		}
		return writeJSON(out, analysis)
	}

	output := opts.output
	if output == "" {
		output = a.cfg.Report.Output
	}

	text := a.collector().Report()
	fmt.Fprintln(out, text)

	if output != "" {
		if err := report.WriteFile(output, text); err != nil {
			return err
		}
		logging.Info("CLI", "report saved to "+output, nil)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
