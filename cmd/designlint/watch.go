package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/uiforge/designlint/internal/config"
	"github.com/uiforge/designlint/internal/model"
	"github.com/uiforge/designlint/internal/scanner"
	"github.com/uiforge/designlint/internal/watcher"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <path>",
		Short: "Re-validate on every source change",
		Long: `Watch runs an initial validation of the target and then re-runs it
every time a UI source file changes. Rapid bursts of changes are
debounced into a single run. Watch keeps running until interrupted;
the process itself never exits with the violation exit code.

Examples:
  # Watch the app sources during a design pass
  designlint watch src

  # Watch with strict mode and consultation output
  designlint watch src --strict --consultation`,
		Args: cobra.ExactArgs(1),
		RunE: runWatchCmd,
	}

	addValidateFlags(cmd)
	cmd.Flags().Duration("debounce", config.DefaultWatchDebounce,
		"Delay before re-running after a change")

	return cmd
}

// runWatchCmd executes the watch command.
func runWatchCmd(cmd *cobra.Command, args []string) error {
	cfg, projectFile, err := buildValidateConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}
	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	runOnce := func(ctx context.Context) {
		err := runValidation(ctx, cfg, projectFile, logger, !noHistory)
		switch {
		case err == nil:
		case errors.Is(err, ErrContractViolated):
			// Reported by the writer already; keep watching.
		case errors.Is(err, context.Canceled):
		default:
			logger.Error("validation run failed", "error", err)
		}
	}

	runOnce(ctx)
	if ctx.Err() != nil {
		return nil
	}

	logger.Info("watching for changes", "target", cfg.Target, "debounce", debounce)
	w := watcher.New(cfg.Target,
		watcher.WithDebounce(debounce),
		watcher.WithFilter(func(path string) bool {
			return scanner.KindOf(path) != model.KindUnknown
		}),
		watcher.WithLogger(logger),
	)
	if err := w.Run(ctx, runOnce); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
