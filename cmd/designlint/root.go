package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/uiforge/designlint/internal/log"
)

// ErrContractViolated is returned when validation finds blocking errors or
// a sub-threshold score. It maps to exit code 1; all other failures exit 2.
var ErrContractViolated = errors.New("design contract violated")

// NewRootCmd creates the root command for designlint.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "designlint",
		Short: "Design contract enforcement for the marketing site",
		Long: `designlint enforces the marketing site's design contract.

It validates UI sources (TSX/JSX/HTML/CSS) against the design token set:
glass morphism surfaces, the brand palette, token typography and spacing,
and the inline coding policy. It can also audit the running dev server's
rendered pages and capture screenshots for sign-off.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewWatchCmd())
	cmd.AddCommand(NewPageCmd())
	cmd.AddCommand(NewSnapshotCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewTokensCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
// Exit codes: 0 on pass, 1 on contract violations, 2 on usage or IO errors.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if errors.Is(err, ErrContractViolated) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
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

// setupLogger builds the sanitized stderr logger.
// Verbose mode lowers the level to Debug.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(log.NewSanitizeHandler(handler))
}
