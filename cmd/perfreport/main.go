package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wellsgz/perfreport/internal/collector"
	"github.com/wellsgz/perfreport/internal/config"
	"github.com/wellsgz/perfreport/internal/logging"
)

var version = "dev"

// app carries global flags and the resolved configuration to subcommands
type app struct {
	configPath string
	logsDir    string
	logFormat  string
	logLevel   string

	cfg *config.Config
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}
	opts := &reportOptions{}

	root := &cobra.Command{
		Use:   "perfreport",
		Short: "Performance reports for streaming test runs",
		Long: `perfreport analyzes the newest stability metrics file and network test log
of a streaming test run and prints a performance report with recommendations.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReport(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (YAML)")
	flags.StringVar(&a.logsDir, "logs-dir", "./logs", "directory holding the test logs")
	flags.StringVar(&a.logFormat, "log-format", "text", "log format: text or json")
	flags.StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn or error")

	addReportFlags(root, opts)

	root.AddCommand(
		newReportCommand(a),
		newAnalyzeCommand(a),
		newServeCommand(a),
		newViewCommand(a),
		newNetTestCommand(a),
	)
	return root
}

// setup loads configuration, applies flag overrides and configures logging
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("logs-dir") {
		cfg.Logs.Dir = a.logsDir
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = a.logFormat
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if err := logging.Configure(cfg.Logging.Level, logging.Format(cfg.Logging.Format)); err != nil {
		return err
	}

	a.cfg = cfg
	logging.Debug("CLI", "configuration loaded", map[string]string{
		"config": a.configPath,
		"layout": cfg.Layout().String(),
	})
	return nil
}

func (a *app) collector() *collector.Collector {
	return collector.NewCollector(a.cfg.Layout())
}
