package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/scrubsnap/internal/anonymize"
	"github.com/nao1215/scrubsnap/internal/config"
	"github.com/nao1215/scrubsnap/internal/database"
	"github.com/nao1215/scrubsnap/internal/log"
	"github.com/nao1215/scrubsnap/internal/model"
	"github.com/nao1215/scrubsnap/internal/pipeline"
	"github.com/nao1215/scrubsnap/internal/report"
	"github.com/nao1215/scrubsnap/internal/snapshot"
	"github.com/spf13/cobra"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Anonymize a saved snapshot",
		Long: `Run copies the snapshot HTML file and its asset directory to the output
directory, then rewrites the copy:

- member names become fake names from a seeded identity pool
- member IDs become sequential synthetic IDs starting at 1001
- the team name becomes the replacement team name, in text, URLs,
  and the output file and directory names
- the organization path segment becomes the replacement segment

After writing, the output is audited for original values that survived
and the copied assets for identifying EXIF metadata. Findings are
reported but never fail the run.

Examples:
  # Anonymize revsport-sample/ into revsport-sample-anonymized/
  scrubsnap run

  # Use other directories
  scrubsnap run -s ./saved -d ./shared

  # Show the mappings without writing anything
  scrubsnap run --dry-run

  # Write a Markdown summary to a file
  scrubsnap run -m -o reports/run.md`,
		Args: cobra.NoArgs,
		RunE: runRunCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Profile file path (default: .scrubsnap in current, XDG config, or home directory)")

	// Snapshot flags
	cmd.Flags().StringP("source", "s", config.DefaultSourceDir,
		"Directory holding the original snapshot")
	cmd.Flags().StringP("output-dir", "d", config.DefaultOutputDir,
		"Directory receiving the anonymized snapshot")
	cmd.Flags().StringP("title", "t", config.DefaultSnapshotTitle,
		"Snapshot title: the HTML file is <title>.html and assets are in <title>_files")
	cmd.Flags().Int64("seed", config.DefaultSeed,
		"Seed of the identity generator")

	// Behavior flags
	cmd.Flags().BoolP("dry-run", "n", false,
		"Build the mappings and report them without writing any file")
	cmd.Flags().Bool("skip-audit", false,
		"Skip the residual-data and EXIF audits")
	cmd.Flags().Int64("max-image-size", config.DefaultMaxImageSize,
		"Largest asset in bytes the EXIF audit reads")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")
	cmd.Flags().String("history-dir", config.XDGDataDir(),
		"Directory of the history database")

	return cmd
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, cfg.JSONReport)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runAnonymize(ctx, cfg, logger, cmd.OutOrStdout())
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, the profile file, and the
// flags, in increasing priority. Snapshot flags override the profile only
// when given explicitly.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a profile path, error if not found.
	// Otherwise silently keep the defaults when no profile exists.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		profile, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		profile.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	flags := cmd.Flags()
	for name, dst := range map[string]*string{
		"source":     &cfg.SourceDir,
		"output-dir": &cfg.OutputDir,
		"title":      &cfg.SnapshotTitle,
	} {
		if flags.Changed(name) {
			if *dst, err = flags.GetString(name); err != nil {
				return nil, err
			}
		}
	}
	if flags.Changed("seed") {
		if cfg.Seed, err = flags.GetInt64("seed"); err != nil {
			return nil, err
		}
	}

	if cfg.DryRun, err = flags.GetBool("dry-run"); err != nil {
		return nil, err
	}
	if cfg.SkipAudit, err = flags.GetBool("skip-audit"); err != nil {
		return nil, err
	}
	if cfg.MaxImageSize, err = flags.GetInt64("max-image-size"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}

	noHistory, err := flags.GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noHistory
	if cfg.DBDir, err = flags.GetString("history-dir"); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// setupLogger creates the redacting logger. A JSON report gets JSON logs.
func setupLogger(w io.Writer, verbose, jsonLogs bool) *slog.Logger {
	if jsonLogs {
		return log.NewSecureJSONLogger(w, verbose)
	}
	return log.NewSecureLogger(w, verbose)
}

// runAnonymize executes the pipeline for cfg and reports the result to stdout.
func runAnonymize(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	layout := snapshot.NewLayout(cfg)

	logger.Info("starting run",
		"source", layout.SourceHTML,
		"output", layout.OutputHTML,
		"dryRun", cfg.DryRun,
		"saveToDB", cfg.SaveToDB,
	)

	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		logger.Info("history database opened", "dir", cfg.DBDir)
	}

	a := anonymize.New(anonymize.SettingsFromConfig(cfg), anonymize.WithLogger(logger))
	p := pipeline.DefaultPipeline(a, layout,
		[]pipeline.Option{pipeline.WithLogger(logger)},
		pipeline.WithPipelineDryRun(cfg.DryRun),
		pipeline.WithPipelineSkipAudit(cfg.SkipAudit),
		pipeline.WithPipelineMaxImageSize(cfg.MaxImageSize),
	)

	logger.Debug("pipeline ready", "count", p.StepCount(), "steps", p.StepNames())

	runReport := model.NewRunReport(layout.SourceHTML, layout.OutputHTML)
	runReport.DryRun = cfg.DryRun

	if err := p.Execute(ctx, runReport); err != nil {
		return fmt.Errorf("anonymization failed: %w", err)
	}

	warnIfSeen(ctx, db, runReport, logger)

	if err := outputReport(cfg, runReport, stdout); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := saveRun(ctx, db, runReport, logger); err != nil {
		logger.Error("failed to save run", "error", err)
	}

	return nil
}

// warnIfSeen logs earlier runs over the same input document.
func warnIfSeen(ctx context.Context, db *database.HistoryDB, runReport *model.RunReport, logger *slog.Logger) {
	if db == nil || runReport.InputDigest == "" {
		return
	}
	earlier, err := db.FindByInputDigest(ctx, runReport.InputDigest)
	if err != nil {
		logger.Warn("history lookup failed", "error", err)
		return
	}
	if len(earlier) > 0 {
		logger.Info("snapshot anonymized before",
			"runs", len(earlier),
			"last", earlier[0].Timestamp,
		)
	}
}

// outputReport writes the run report in the requested format. With a
// report file, the formatted report goes to the file and the plain summary
// is still printed to stdout.
func outputReport(cfg *config.Config, runReport *model.RunReport, stdout io.Writer) error {
	summaryOpts := []report.SimpleWriterOption{
		report.WithVerbose(cfg.Verbose),
		report.WithShowEmpty(!cfg.SkipAudit),
	}

	if cfg.ReportFile == "" {
		_, err := newReportWriter(cfg, stdout, summaryOpts).Write(runReport)
		return err
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports list real names, so only the owner may read them.
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	writer := report.NewMultiWriter(
		report.NewSimpleWriter(stdout, summaryOpts...),
		newReportWriter(cfg, f, summaryOpts),
	)
	_, err = writer.Write(runReport)
	return err
}

// newReportWriter returns the writer for the selected report format.
func newReportWriter(cfg *config.Config, output io.Writer, summaryOpts []report.SimpleWriterOption) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, summaryOpts...)
	}
}

// saveRun records the run in the history database.
// If db is nil, this function is a no-op.
func saveRun(ctx context.Context, db *database.HistoryDB, runReport *model.RunReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	id, err := db.SaveRun(ctx, runReport)
	if err != nil {
		return err
	}

	logger.Info("run saved to history", "id", id)
	return nil
}
