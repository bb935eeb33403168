package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vyrodovalexey/httpmsg/internal/config"
	"github.com/vyrodovalexey/httpmsg/internal/observability"
	"github.com/vyrodovalexey/httpmsg/internal/router"
)

// cliFlags holds the persistent flags shared by every subcommand.
type cliFlags struct {
	configPath  string
	logLevel    string
	logFormat   string
	dumpMetrics bool
}

// app is the state built once per invocation from flags and configuration.
type app struct {
	flags  *cliFlags
	cfg    *config.Config
	logger observability.Logger
	tracer *observability.Tracer
	routes *router.Table
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}
	a := &app{flags: flags}

	root := &cobra.Command{
		Use:   "httpmsg",
		Short: "Parse, build and route HTTP/1.x messages",
		Long: `httpmsg works with raw HTTP/0.9, 1.0 and 1.1 messages.

It parses requests and responses incrementally, serializes messages in
canonical wire form and matches requests against a configurable route
table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.close(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Path to configuration file")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format (json, console)")
	pf.BoolVar(&flags.dumpMetrics, "metrics", false, "Print Prometheus metrics to stderr on exit")

	root.AddCommand(
		parseCmd(a),
		buildCmd(a),
		routesCmd(a),
		urlForCmd(a),
		versionCmd(),
	)
	return root
}

// init loads configuration, then builds the logger, tracer and route table.
func (a *app) init(ctx context.Context) error {
	cfg := config.DefaultConfig()
	if a.flags.configPath != "" {
		loaded, err := config.LoadConfig(a.flags.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.flags.logLevel != "" {
		cfg.Logging.Level = a.flags.logLevel
	}
	if a.flags.logFormat != "" {
		cfg.Logging.Format = a.flags.logFormat
	}
	a.cfg = cfg

	logger, err := observability.NewLogger(cfg.LogConfig())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger = logger

	if ctx == nil {
		ctx = context.Background()
	}
	tracer, err := observability.NewTracer(ctx, cfg.TracerConfig())
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	a.tracer = tracer

	a.routes = router.New(router.WithLogger(logger))
	if err := a.routes.LoadRoutes(cfg.Routes, builtinHandlers()); err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		observability.String("path", a.flags.configPath),
		observability.Int("routes", len(cfg.Routes)),
		observability.Bool("tracing", tracer.Enabled()),
	)
	return nil
}

func (a *app) close(cmd *cobra.Command) error {
	if a.flags.dumpMetrics {
		if err := observability.WriteMetrics(cmd.ErrOrStderr(), prometheus.DefaultGatherer); err != nil {
			return err
		}
	}
	if a.tracer != nil {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := a.tracer.Shutdown(ctx); err != nil {
			a.logger.Warn("tracer shutdown failed", observability.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Skip configuration loading.
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "httpmsg %s\n", version)
			fmt.Fprintf(out, "  Commit:     %s\n", gitCommit)
			fmt.Fprintf(out, "  Built:      %s\n", buildTime)
			fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
		},
	}
}
