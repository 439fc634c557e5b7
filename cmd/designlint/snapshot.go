package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/uiforge/designlint/internal/browser"
	"github.com/uiforge/designlint/internal/config"
)

// NewSnapshotCmd creates the snapshot command.
func NewSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot [route...]",
		Short: "Capture full-page screenshots of a running dev server",
		Long: `Snapshot drives a headless browser against a running development
server and captures full-page PNG screenshots of the given routes for
visual review. Routes default to "/" when none are given.

Examples:
  # Screenshot the homepage into ./screenshots
  designlint snapshot

  # Screenshot several routes into a custom directory
  designlint snapshot --out design-review / /pricing /about`,
		RunE: runSnapshotCmd,
	}

	cmd.Flags().StringP("server", "u", "",
		"Base URL of the running dev server (default: http://127.0.0.1:3000)")
	cmd.Flags().StringP("out", "o", "screenshots",
		"Directory to write screenshots to")
	cmd.Flags().Int("width", 1440, "Viewport width in pixels")
	cmd.Flags().Int("height", 900, "Viewport height in pixels")
	cmd.Flags().Duration("timeout", config.DefaultSnapshotTimeout,
		"Total capture timeout")

	return cmd
}

// runSnapshotCmd executes the snapshot command.
func runSnapshotCmd(cmd *cobra.Command, args []string) error {
	cfg := config.NewConfig()
	config.LoadEnv(cfg)

	server, err := cmd.Flags().GetString("server")
	if err != nil {
		return err
	}
	if server != "" {
		cfg.ServerURL = server
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return err
	}
	height, err := cmd.Flags().GetInt("height")
	if err != nil {
		return err
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}

	routes := args
	if len(routes) == 0 {
		routes = []string{"/"}
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()
	if timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, timeout)
		defer cancelTimeout()
	}

	capturer := browser.NewCapturer(outDir,
		browser.WithViewport(width, height),
		browser.WithLogger(logger),
	)
	shots, err := capturer.Capture(ctx, cfg.ServerURL, routes)
	if err != nil {
		return fmt.Errorf("screenshot capture failed: %w", err)
	}

	for _, shot := range shots {
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%d bytes)\n",
			shot.Route, shot.File, shot.Size)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "captured %d screenshot(s) in %s\n",
		len(shots), outDir)
	return nil
}
