package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tommurray222/candid-hospitality/internal/cleaning"
	"github.com/tommurray222/candid-hospitality/internal/config"
	"github.com/tommurray222/candid-hospitality/internal/dataprocessing"
	"github.com/tommurray222/candid-hospitality/internal/files"
	"github.com/tommurray222/candid-hospitality/internal/infrastructure"
	"github.com/tommurray222/candid-hospitality/internal/preparation"
	"github.com/tommurray222/candid-hospitality/internal/validation"
	"github.com/tommurray222/candid-hospitality/pkg/contracts"
)

// rootOptions holds the flags shared by every subcommand. Flags that were
// set explicitly override the configuration file and environment.
type rootOptions struct {
	configFile    string
	dataDir       string
	outputDir     string
	usersFile     string
	matchesFile   string
	chatsFile     string
	logLevel      string
	logFormat     string
	referenceDate string
	testAccounts  []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "candid",
		Short:         "Candid hospitality data cleaning and analysis",
		Long:          "candid cleans the users, matches and chats exports, joins them into candidate records, describes them and prepares features for clustering.",
		Version:       contracts.BuildString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Path to candid.yaml (defaults to candid.yaml or configs/candid.yaml)")
	flags.StringVar(&opts.dataDir, "data-dir", "", "Directory searched for users, matches and chats files")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "Directory for exported files")
	flags.StringVar(&opts.usersFile, "users", "", "Users table (csv, tsv or xlsx)")
	flags.StringVar(&opts.matchesFile, "matches", "", "Matches table (csv, tsv or xlsx)")
	flags.StringVar(&opts.chatsFile, "chats", "", "Chats table (csv, tsv or xlsx)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "", "Console log format: json or text")
	flags.StringVar(&opts.referenceDate, "reference-date", "", "Date ages are computed on (YYYY-MM-DD, defaults to today)")
	flags.StringSliceVar(&opts.testAccounts, "test-accounts", nil, "User ids whose activity is removed")

	cmd.AddCommand(
		newRunCmd(opts),
		newCleanCmd(opts),
		newDescribeCmd(opts),
		newClusterCmd(opts),
	)
	return cmd
}

// app carries the resources a subcommand needs for one invocation
type app struct {
	cfg       *config.Config
	paths     *config.Paths
	logger    *slog.Logger
	telemetry *infrastructure.OTelProviders
	runID     string
	out       io.Writer

	traceFile *os.File
}

// setup loads configuration, applies flag overrides and starts logging and
// telemetry. The caller must call close.
func setup(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	if err := opts.apply(cmd, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		return nil, err
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, err
	}
	if err := validation.NewFileValidator(slog.Default()).ValidateOutputDirectory(paths.OutputDir); err != nil {
		return nil, err
	}
	cfg.Logging.FilePath = paths.GetLogPath(cfg.Logging.FilePath)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil || logger == nil {
		logger = infrastructure.GetLogger()
	}

	a := &app{
		cfg:    cfg,
		paths:  paths,
		logger: logger,
		runID:  infrastructure.GenerateTraceID(),
		out:    cmd.OutOrStdout(),
	}

	var traceWriter io.Writer
	if cfg.Telemetry.TracingEnabled {
		tracePath := cfg.Telemetry.TraceFile
		if tracePath == "" {
			tracePath = config.TraceFile
		}
		f, err := os.Create(paths.GetOutputPath(tracePath))
		if err != nil {
			return nil, fmt.Errorf("failed to create trace file: %w", err)
		}
		a.traceFile = f
		traceWriter = f
	}

	a.telemetry, err = infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry, paths, traceWriter), logger)
	if err != nil {
		a.closeTraceFile()
		return nil, err
	}

	return a, nil
}

// apply copies explicitly set flags onto cfg
func (o *rootOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	if changed("data-dir") {
		cfg.Paths.DataDir = o.dataDir
	}
	if changed("output-dir") {
		cfg.Paths.OutputDir = o.outputDir
	}
	if changed("users") {
		cfg.Paths.UsersFile = o.usersFile
	}
	if changed("matches") {
		cfg.Paths.MatchesFile = o.matchesFile
	}
	if changed("chats") {
		cfg.Paths.ChatsFile = o.chatsFile
	}
	if changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if changed("log-format") {
		cfg.Logging.Format = o.logFormat
	}
	if changed("reference-date") {
		cfg.Preparation.ReferenceDate = o.referenceDate
	}
	if changed("test-accounts") {
		ids := make([]int64, 0, len(o.testAccounts))
		for _, s := range o.testAccounts {
			id, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid test account id %q: %w", s, err)
			}
			ids = append(ids, id)
		}
		cfg.Cleaning.TestAccounts = ids
	}
	return nil
}

// context returns a context carrying the run id
func (a *app) context(ctx context.Context) context.Context {
	return infrastructure.WithTraceID(ctx, a.runID)
}

// inputs resolves the three input tables from explicit paths and the data directory
func (a *app) inputs() (dataprocessing.Inputs, error) {
	explicit := dataprocessing.Inputs{
		Users:   a.paths.UsersFile,
		Matches: a.paths.MatchesFile,
		Chats:   a.paths.ChatsFile,
	}
	if a.paths.HasInputs() {
		return explicit, nil
	}
	if err := validation.NewFileValidator(a.logger).ValidateInputDirectory(a.paths.DataDir); err != nil {
		return dataprocessing.Inputs{}, err
	}
	return files.NewDiscovery(a.paths.DataDir).ResolveInputs(explicit, "")
}

func (a *app) cleaner() *cleaning.Cleaner {
	return cleaning.NewCleaner(cleaning.Options{
		TestAccounts: a.cfg.Cleaning.TestAccounts,
		Logger:       a.logger,
	})
}

func (a *app) preparer() (*preparation.Preparer, error) {
	ref, err := a.cfg.Preparation.Reference(timeNow())
	if err != nil {
		return nil, err
	}
	return preparation.NewPreparer(preparation.Options{
		Reference:      ref,
		Unit:           a.cfg.Preparation.ResponseTimeUnit,
		DropIncomplete: a.cfg.Preparation.DropIncomplete,
		Logger:         a.logger,
	})
}

// close flushes telemetry and writes the metrics textfile
func (a *app) close(ctx context.Context) {
	if err := a.telemetry.Shutdown(ctx); err != nil {
		a.logger.WarnContext(ctx, "Telemetry shutdown failed", slog.String("error", err.Error()))
	}
	a.closeTraceFile()
}

func (a *app) closeTraceFile() {
	if a.traceFile != nil {
		_ = a.traceFile.Close()
		a.traceFile = nil
	}
}

// relPath renders path relative to the output directory when possible
func (a *app) relPath(path string) string {
	if rel, err := filepath.Rel(a.paths.OutputDir, path); err == nil {
		return rel
	}
	return path
}
