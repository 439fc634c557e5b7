package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/uiforge/designlint/internal/config"
	"github.com/uiforge/designlint/internal/database"
	"github.com/uiforge/designlint/internal/pipeline"
	"github.com/uiforge/designlint/internal/report"
	"github.com/uiforge/designlint/internal/rules"
	"github.com/uiforge/designlint/internal/scanner"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate UI sources against the design contract",
		Long: `Validate scans one file or recursively a directory of UI sources
(.tsx, .jsx, .html, .css) against the design contract:

- Glass morphism surfaces (glass shadows, backdrop blur on cards)
- The brand color palette (no raw hex colors outside the token set)
- Token typography, spacing, and animation
- The inline coding policy (no unapproved style attributes)
- Page structure (<nav> and <footer> on marketing pages)

The run passes with zero blocking errors and a compliance score at or
above the threshold (default 80%).

Examples:
  # Validate one component
  designlint validate src/components/HeroCard.tsx

  # Validate the whole app, strict mode
  designlint validate src --strict

  # Export a JSON report for CI
  designlint validate src --export report.json

  # Show remediation guidance per finding
  designlint validate src --consultation

  # Record inline coding approvals for the current content
  designlint validate src/emails --inline-coding-approval`,
		Args: cobra.ExactArgs(1),
		RunE: runValidateCmd,
	}

	addValidateFlags(cmd)
	return cmd
}

// addValidateFlags registers the validation flag set.
// The watch command shares these flags.
func addValidateFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("strict", "s", false,
		"Promote warnings to blocking errors")
	cmd.Flags().IntP("threshold", "t", config.DefaultThreshold,
		"Minimum passing compliance score (0-100)")
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of files validated in parallel")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .designlint.yaml in current or home directory)")
	cmd.Flags().StringSliceP("ignore", "i", nil,
		"Glob patterns to exclude from the scan (repeatable)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("export", "e", "",
		"Write a JSON report to the specified file")
	cmd.Flags().Bool("consultation", false,
		"Include impact and remediation guidance per finding")
	cmd.Flags().Bool("no-color", false,
		"Disable ANSI colors in human output")
	cmd.Flags().Bool("no-history", false,
		"Skip recording this run in the history database")

	// Inline coding policy flags
	cmd.Flags().Bool("inline-coding-enforcement", false,
		"Treat inline style findings as blocking even when approved")
	cmd.Flags().Bool("inline-coding-approval", false,
		"Record inline coding approvals for the scanned files' current content")
}

// runValidateCmd executes the validate command.
func runValidateCmd(cmd *cobra.Command, args []string) error {
	cfg, projectFile, err := buildValidateConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	cfg.Verbose = getVerboseFlag(cmd)
	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return err
	}

	return runValidation(ctx, cfg, projectFile, logger, !noHistory)
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()
	return ctx, cancel
}

// buildValidateConfig creates a Config from flags, the project file, and
// the environment. Returns the loaded project file for per-directory
// policy lookups (nil when none was found).
func buildValidateConfig(cmd *cobra.Command, args []string) (*config.Config, *config.File, error) {
	cfg := config.NewConfig()
	cfg.Target = args[0]

	// Project file first so flags can override it.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, err
	}
	var projectFile *config.File
	if found := config.FindConfigFile(configPath); found != "" {
		projectFile, err = config.LoadConfigFile(found)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config %s: %w", found, err)
		}
		projectFile.Apply(cfg)
	} else if configPath != "" {
		return nil, nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPath)
	}

	config.LoadEnv(cfg)

	if cfg.Strict, err = cmd.Flags().GetBool("strict"); err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("threshold") {
		if cfg.Threshold, err = cmd.Flags().GetInt("threshold"); err != nil {
			return nil, nil, err
		}
	}
	if cfg.Concurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
		return nil, nil, err
	}
	ignore, err := cmd.Flags().GetStringSlice("ignore")
	if err != nil {
		return nil, nil, err
	}
	cfg.IgnorePatterns = append(cfg.IgnorePatterns, ignore...)

	if cfg.JSON, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, nil, err
	}
	if cfg.Markdown, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, nil, err
	}
	if cfg.ExportPath, err = cmd.Flags().GetString("export"); err != nil {
		return nil, nil, err
	}
	if cfg.Consultation, err = cmd.Flags().GetBool("consultation"); err != nil {
		return nil, nil, err
	}
	noColor, err := cmd.Flags().GetBool("no-color")
	if err != nil {
		return nil, nil, err
	}
	cfg.NoColor = cfg.NoColor || noColor

	if cfg.InlineEnforcement, err = cmd.Flags().GetBool("inline-coding-enforcement"); err != nil {
		return nil, nil, err
	}
	if cfg.InlineApproval, err = cmd.Flags().GetBool("inline-coding-approval"); err != nil {
		return nil, nil, err
	}

	return cfg, projectFile, nil
}

// runValidation executes the validation pipeline and writes reports.
// Returns ErrContractViolated when the run fails the contract.
func runValidation(ctx context.Context, cfg *config.Config, projectFile *config.File, logger *slog.Logger, useHistory bool) error {
	var db *database.HistoryDB
	if useHistory {
		var err error
		db, err = database.Open(config.XDGDataDir(), database.DefaultOptions())
		if err != nil {
			// History is best-effort: validation still works without it,
			// but approvals cannot be resolved.
			logger.Warn("history database unavailable", "error", err)
			db = nil
		} else {
			defer db.Close()
		}
	}

	state := pipeline.NewState(filepath.ToSlash(cfg.Target))

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		&pipeline.ScanStep{
			Scanner: scanner.New(cfg.Target,
				scanner.WithIgnorePatterns(cfg.IgnorePatterns),
				scanner.WithMaxFileSize(cfg.MaxFileSize),
				scanner.WithLogger(logger),
			),
		},
		&pipeline.ApprovalStep{DB: db, Record: cfg.InlineApproval},
		&pipeline.RulesStep{
			Engine:         rules.NewEngine(rules.WithDisabledRules(cfg.DisabledRules)),
			Tokens:         cfg.Tokens,
			Concurrency:    cfg.Concurrency,
			InlineEnforced: cfg.InlineEnforcement,
			Policy:         dirPolicy(projectFile),
		},
		&pipeline.ScoreStep{},
		&pipeline.PersistStep{DB: db},
	)

	state.Report.Strict = cfg.Strict
	state.Report.Threshold = cfg.Threshold

	if err := p.Execute(ctx, state); err != nil {
		return err
	}

	if err := writeReports(cfg, state); err != nil {
		return err
	}
	if !state.Report.Pass {
		return ErrContractViolated
	}
	return nil
}

// dirPolicy adapts the project file's per-directory overrides into a
// pipeline DirPolicy. Returns nil when no project file is loaded.
func dirPolicy(projectFile *config.File) pipeline.DirPolicy {
	if projectFile == nil || len(projectFile.Dirs) == 0 {
		return nil
	}
	return func(path string) ([]string, bool) {
		dc := projectFile.DirConfigFor(path)
		return dc.DisabledRules, dc.AllowInline
	}
}

// writeReports renders the report to stdout and the optional export file.
func writeReports(cfg *config.Config, state *pipeline.State) error {
	var writers []report.Writer
	switch {
	case cfg.JSON:
		writers = append(writers, report.NewJSONWriter(os.Stdout, report.WithPrettyPrint()))
	case cfg.Markdown:
		writers = append(writers, report.NewMarkdownWriter(os.Stdout))
	default:
		writers = append(writers, report.NewHumanWriter(os.Stdout,
			report.WithConsultation(cfg.Consultation),
			report.WithNoColor(cfg.NoColor),
			report.WithVerbose(cfg.Verbose),
		))
	}

	if cfg.ExportPath != "" {
		f, err := os.Create(cfg.ExportPath) //nolint:gosec // export path comes from the user
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		writers = append(writers, report.NewJSONWriter(f, report.WithPrettyPrint()))
	}

	if _, err := report.NewMultiWriter(writers...).Write(state.Report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
