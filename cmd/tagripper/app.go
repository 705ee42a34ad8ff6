package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/viant/tagripper/config"
	"github.com/viant/tagripper/index"
)

// options holds flags shared by scan and find
type options struct {
	configPath string
	logLevel   string
	onlyTags   []string
	format     string
	strict     bool
	taggedOnly bool
	tags       []string
	name       string
}

func rootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Extract @key: value tags from source comments",
		Long: `tagripper scans Ruby sources for tag comments such as

  # @domain: Billing

and attaches every tag to the nearest enclosing module, class or method.

Examples:
  tagripper scan .                        # Index the current project as YAML
  tagripper scan lib --format json        # JSON report for lib/
  tagripper find . --tag domain=Billing   # Constructs tagged domain: Billing
`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML), replaces the project .tagripper.yaml")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringSliceVar(&opts.onlyTags, "only-tags", nil, "Accept only these tag names")
	flags.StringVarP(&opts.format, "format", "f", "", "Output format (yaml, json)")
	flags.BoolVar(&opts.strict, "strict", false, "Fail a file on its first illegal transition")
	flags.BoolVar(&opts.taggedOnly, "tagged-only", false, "Report only tagged constructs")

	cmd.AddCommand(scanCmd(opts), findCmd(opts), &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})
	return cmd
}

func scanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [path]",
		Short: "Index tagged constructs of a file or directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, location(args), index.Query{})
		},
	}
}

func findCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find [path]",
		Short: "Find constructs by tag or name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := index.ParseTagQuery(opts.tags...)
			if err != nil {
				return err
			}
			return run(cmd, opts, location(args), index.Query{Name: opts.name, Tags: tags})
		},
	}
	cmd.Flags().StringArrayVarP(&opts.tags, "tag", "t", nil, "Tag filter name=value, repeatable; a bare name matches any value")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Construct name or fully qualified name")
	return cmd
}

func location(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func run(cmd *cobra.Command, opts *options, location string, query index.Query) error {
	logger := newLogger(opts.logLevel)
	slog.SetDefault(logger)

	cfg, err := config.NewLoader(logger).Load(location, opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(cmd, opts, cfg)
	if err = cfg.Validate(); err != nil {
		return err
	}
	emitter, err := index.NewEmitter(cfg.Format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	indexer := index.New(
		index.WithInclude(cfg.Include...),
		index.WithExclude(cfg.Exclude...),
		index.WithAllowedTags(cfg.OnlyTags...),
		index.WithStrict(cfg.IsStrict()),
		index.WithConcurrency(cfg.Concurrency),
		index.WithCacheSize(cfg.CacheSize),
		index.WithLogger(logger),
	)
	report, err := indexer.Index(ctx, location)
	if err != nil {
		return err
	}
	report = report.Filter(query)
	if opts.taggedOnly {
		report = report.TaggedOnly()
	}
	logger.Info("indexed", slog.String("project", report.Project), slog.Int("files", report.Stats.Files),
		slog.Int("documents", len(report.Documents)), slog.Int("errors", len(report.Errors)))

	data, err := emitter.Emit(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// applyFlags merges explicitly set command line flags over the loaded config
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("only-tags") {
		cfg.OnlyTags = opts.onlyTags
	}
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("strict") {
		cfg.Strict = &opts.strict
	}
}

func newLogger(logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
