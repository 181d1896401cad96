package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Guliveer/hwinfo/internal/collector"
	"github.com/Guliveer/hwinfo/internal/config"
	"github.com/Guliveer/hwinfo/internal/models"
	"github.com/Guliveer/hwinfo/internal/output"
	"github.com/Guliveer/hwinfo/internal/render"
	"github.com/Guliveer/hwinfo/internal/report"
)

// Exit codes.
const (
	exitOK     = 0
	exitFatal  = 1
	exitConfig = 2
)

// app holds the process dependencies of one invocation.
type app struct {
	stdout     io.Writer
	stderr     io.Writer
	embedded   []byte
	collectors func(logger *zap.Logger, fast bool) []collector.Collector
	// now overrides the report clock when set.
	now func() time.Time
}

// run executes the command and maps its outcome to an exit code.
func run(ctx context.Context, a *app, args []string) int {
	cmd := newRootCommand(a)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	fmt.Fprintf(a.stderr, "hwinfo: %v\n", err)
	if errors.Is(err, config.ErrInvalid) {
		return exitConfig
	}
	return exitFatal
}

func newRootCommand(a *app) *cobra.Command {
	var (
		cli         config.CLIOverrides
		all         bool
		configPath  string
		writeConfig string
	)
	selected := make(map[models.Component]*bool)

	cmd := &cobra.Command{
		Use:   "hwinfo",
		Short: "Collect hardware inventory and render it as text, JSON, YAML or CSV",
		Long: `hwinfo collects system, CPU, memory, storage, GPU and motherboard
information and renders it as text, JSON, YAML or CSV.

Without a component flag every component is collected. Collection errors
are embedded in the report and do not change the exit status.`,
		Version: version,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: unexpected argument %q", config.ErrInvalid, args[0])
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !all {
				for _, c := range models.AllComponents() {
					if *selected[c] {
						cli.Components = append(cli.Components, string(c))
					}
				}
			}

			var cfg *config.Config
			var err error
			if cmd.Flags().Changed("config") {
				cfg, err = config.LoadLayered(cli, a.embedded, configPath)
			} else {
				cfg, err = config.LoadLayered(cli, a.embedded)
			}
			if err != nil {
				return err
			}
			if all {
				cfg.Collection.Components = nil
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if writeConfig != "" {
				if err := config.WriteConfig(cfg, writeConfig); err != nil {
					return err
				}
				fmt.Fprintf(a.stderr, "Configuration written to %s\n", writeConfig)
				return nil
			}

			return a.execute(cmd.Context(), cfg)
		},
	}
	cmd.SetVersionTemplate("hwinfo {{.Version}}\n")
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", config.ErrInvalid, err)
	})

	flags := cmd.Flags()
	flags.SortFlags = false

	// Component selection
	flags.BoolVar(&all, "all", false, "Show all hardware information (default when no component is selected)")
	for _, c := range models.AllComponents() {
		selected[c] = flags.Bool(string(c), false, fmt.Sprintf("Show %s information", c))
	}

	// Format options
	flags.StringVar(&cli.Format, "format", "", "Output format: text, json, yaml or csv (default text)")
	flags.BoolVar(&cli.Pretty, "pretty", false, "Pretty print JSON output")

	// Detail level
	flags.BoolVar(&cli.Minimal, "minimal", false, "Show only essential information")
	flags.BoolVar(&cli.Detailed, "detailed", false, "Show detailed information (default)")

	// Output options
	flags.StringVarP(&cli.Output, "output", "o", "", "Write the report to this file instead of standard output")
	flags.BoolVar(&cli.NoTimestamps, "no-timestamps", false, "Exclude the timestamp from the report")
	flags.BoolVar(&cli.ExcludeSerials, "exclude-serials", false, "Replace serial numbers and unique identifiers with REDACTED")
	flags.BoolVar(&cli.UTF8, "utf8", false, "Force UTF-8 encoded output")
	flags.StringVar(&cli.Encoding, "encoding", "", "Transcode the output to this WHATWG encoding, e.g. shift_jis")
	flags.BoolVarP(&cli.Quiet, "quiet", "q", false, "Suppress the notice printed after writing a file")

	// Performance options
	flags.BoolVar(&cli.Fast, "fast", false, "Skip slow queries (memory module table, partition usage, vendor tools)")
	flags.IntVar(&cli.Threads, "threads", 0, "Number of collectors to run at once (default all)")
	flags.StringVar(&cli.Timeout, "timeout", "", "Per-collector timeout, e.g. 10s or 10 (seconds) (default 30s)")

	// Configuration
	flags.StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	flags.StringVar(&writeConfig, "write-config", "", "Write the effective configuration to this file and exit")
	flags.StringVar(&cli.LogLevel, "log-level", "", "Log level: debug, info, warn or error (default warn)")

	return cmd
}

// execute runs the collect, render and write pipeline for a validated config.
func (a *app) execute(ctx context.Context, cfg *config.Config) error {
	selection, err := cfg.Selection()
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}
	renderer, err := render.New(cfg.RenderConfig())
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}

	logger := initLogger(cfg, a.stderr)
	defer logger.Sync() //nolint:errcheck

	registry := collector.NewRegistry(logger,
		collector.WithTimeout(cfg.Collection.Timeout.Duration),
		collector.WithConcurrency(cfg.Collection.Threads))
	for _, c := range a.collectors(logger, cfg.Collection.Fast) {
		registry.Register(c)
	}

	builder := report.NewBuilder(registry, logger)
	if a.now != nil {
		builder.WithClock(a.now)
	}

	logger.Debug("Collecting",
		zap.String("version", version),
		zap.Int("components", len(selection)),
		zap.String("format", string(renderer.Config().Format)))

	rep := builder.Build(ctx, report.Options{
		Components:       selection,
		Verbosity:        cfg.Verbosity(),
		ExcludeSerials:   cfg.Collection.ExcludeSerials,
		IncludeTimestamp: cfg.Output.Timestamps,
	})

	payload, err := renderer.Render(rep)
	if err != nil {
		return err
	}

	sink := output.New(output.Options{
		Path:        cfg.Output.Path,
		Stdout:      a.stdout,
		Stderr:      a.stderr,
		Quiet:       cfg.Output.Quiet,
		UTF8Console: config.IsUTF8(cfg.Output.Encoding),
	}, logger)
	return sink.Write(payload)
}
