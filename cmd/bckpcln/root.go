package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raoulx24/bckpcln/internal/cleaner"
	"github.com/raoulx24/bckpcln/internal/config"
	"github.com/raoulx24/bckpcln/internal/logging"
	"github.com/raoulx24/bckpcln/internal/metrics"
	"github.com/raoulx24/bckpcln/internal/output"
)

var (
	cfgFile     string
	directory   string
	maxSize     string
	force       bool
	list        bool
	verbose     bool
	deleteFlag  bool
	moveTarget  string
	schedule    string
	watch       bool
	watchMode   string
	logLevel    string
	logFormat   string
	metricsFile string
)

var rootCmd = &cobra.Command{
	Use:   "bckpcln",
	Short: "Keep a folder of backup snapshots under a maximum size",
	Long: `bckpcln is a simple tool to periodically and automatically clean up a
folder filled with backups.

Each sub-directory named YYYY-MM-DD_HHMM_SS is a snapshot. When the folder
exceeds --max-size, snapshots are evicted so that the remaining ones stay
spread across the whole time range. Without --delete or --move, bckpcln only
explains what it would do.`,
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&directory, "directory", "d", "", "the directory to process (default: current working directory)")
	f.StringVarP(&maxSize, "max-size", "m", "", "maximum accepted size of the backup folder, e.g. 5k, 10M, 6G")
	f.BoolVarP(&force, "force", "f", false, "delete or move without prompting")
	f.BoolVarP(&list, "list", "l", false, "list all the backups and their properties")
	f.BoolVarP(&verbose, "verbose", "v", false, "print the remaining backups after every eviction")
	f.BoolVar(&deleteFlag, "delete", false, "perform the actual deletion")
	f.StringVar(&moveTarget, "move", "", "move evicted backups to `TARGET_FOLDER` instead of deleting them")

	f.StringVarP(&cfgFile, "config", "c", "", "YAML config file; flags take precedence")
	f.StringVar(&schedule, "schedule", "", "keep running and clean up on this cron schedule, e.g. \"0 3 * * *\"")
	f.BoolVar(&watch, "watch", false, "keep running and clean up whenever the folder changes")
	f.StringVar(&watchMode, "watch-mode", "auto", "how to watch the folder: auto, fsnotify or poll")
	f.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	f.StringVar(&logFormat, "log-format", "text", "log format: text or json")
	f.StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file after every pass")
}

// buildConfig layers the explicitly set flags over the config file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("delete") && changed("move") {
		return nil, &config.ConfigError{Field: "action", Message: "only one argument is allowed: move or delete"}
	}

	if changed("directory") {
		cfg.Directory = directory
	}
	if changed("max-size") {
		cfg.MaxSize = maxSize
	}
	if changed("force") {
		cfg.Force = force
	}
	if changed("list") {
		cfg.List = list
	}
	if changed("verbose") {
		cfg.Verbose = verbose
	}
	if changed("delete") && deleteFlag {
		cfg.Action = cleaner.Delete.String()
	}
	if changed("move") {
		cfg.Action = cleaner.Move.String()
		cfg.MoveTarget = moveTarget
	}
	if changed("schedule") {
		cfg.Schedule = schedule
	}
	if changed("watch") {
		cfg.Watch.Enabled = watch
	}
	if changed("watch-mode") {
		cfg.Watch.Mode = watchMode
	}
	if changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if changed("log-format") {
		cfg.Logging.Format = logFormat
	}
	if changed("metrics-file") {
		cfg.MetricsFile = metricsFile
	}

	if cfg.Directory == "" || cfg.Directory == "." {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		cfg.Directory = wd
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runRoot(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	if abs, err := filepath.Abs(opts.Directory); err == nil {
		opts.Directory = abs
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec := metrics.New(cfg.MetricsFile)
	printer := output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
	c := cleaner.New(nil, log, printer, nil)

	if cfg.Daemon() {
		return runDaemon(ctx, cmd, cfg, opts, c, rec, log)
	}

	return runOnce(ctx, c, opts, rec, log)
}

func runOnce(ctx context.Context, c *cleaner.Cleaner, opts cleaner.Options, rec *metrics.Metrics, log logging.Logger) error {
	res, err := c.Run(ctx, opts)
	if rerr := rec.Observe(res, err); rerr != nil {
		log.Error("recording metrics failed", "error", rerr)
	}
	return err
}
