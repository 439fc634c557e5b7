package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/uiforge/designlint/internal/config"
	"github.com/uiforge/designlint/internal/page"
	"github.com/uiforge/designlint/internal/report"
)

// NewPageCmd creates the page command.
func NewPageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page [route...]",
		Short: "Audit rendered pages on a running dev server",
		Long: `Page fetches routes from a running development server and audits the
rendered HTML: navigation and footer presence, required marketing copy
on the homepage, and inline style attributes that leaked into the
output.

Routes default to "/" when none are given. The server URL comes from
--server, the DESIGNLINT_SERVER_URL environment variable, or the
project config, in that order of precedence.

Examples:
  # Audit the homepage of the local dev server
  designlint page

  # Audit specific routes
  designlint page / /pricing /about

  # Audit a server on a different port
  designlint page --server http://127.0.0.1:4000 /`,
		RunE: runPageCmd,
	}

	cmd.Flags().StringP("server", "u", "",
		"Base URL of the running dev server (default: http://127.0.0.1:3000)")
	cmd.Flags().DurationP("timeout", "T", config.DefaultPageTimeout,
		"Per-route fetch timeout")
	cmd.Flags().StringSlice("require-copy", nil,
		"Text that must appear on the homepage (repeatable)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .designlint.yaml in current or home directory)")
	cmd.Flags().BoolP("json", "j", false, "Output JSON report")
	cmd.Flags().Bool("consultation", false,
		"Include impact and remediation guidance per finding")
	cmd.Flags().Bool("no-color", false, "Disable ANSI colors in human output")

	return cmd
}

// runPageCmd executes the page command.
func runPageCmd(cmd *cobra.Command, args []string) error {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if found := config.FindConfigFile(configPath); found != "" {
		projectFile, err := config.LoadConfigFile(found)
		if err != nil {
			return fmt.Errorf("failed to load config %s: %w", found, err)
		}
		projectFile.Apply(cfg)
	} else if configPath != "" {
		return fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPath)
	}
	config.LoadEnv(cfg)

	if server, err := cmd.Flags().GetString("server"); err != nil {
		return err
	} else if server != "" {
		cfg.ServerURL = server
	}
	if cmd.Flags().Changed("timeout") {
		if cfg.PageTimeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return err
		}
	}
	requireCopy, err := cmd.Flags().GetStringSlice("require-copy")
	if err != nil {
		return err
	}
	if len(requireCopy) > 0 {
		cfg.RequiredCopy = requireCopy
	}
	if cfg.JSON, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.Consultation, err = cmd.Flags().GetBool("consultation"); err != nil {
		return err
	}
	noColor, err := cmd.Flags().GetBool("no-color")
	if err != nil {
		return err
	}
	cfg.NoColor = cfg.NoColor || noColor

	routes := args
	if len(routes) == 0 {
		routes = cfg.Routes
	}
	if len(routes) == 0 {
		routes = []string{"/"}
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	auditor := page.NewAuditor(cfg.ServerURL,
		page.WithRequiredCopy(cfg.RequiredCopy),
		page.WithTimeout(cfg.PageTimeout),
		page.WithLogger(logger),
	)
	rep, results, err := auditor.Audit(ctx, routes)
	if err != nil {
		return fmt.Errorf("page audit failed: %w", err)
	}
	for _, r := range results {
		logger.Debug("route audited",
			"route", r.Route,
			"status", r.StatusCode,
			"nav", r.HasNav,
			"footer", r.HasFooter,
		)
	}

	var w report.Writer
	if cfg.JSON {
		w = report.NewJSONWriter(os.Stdout, report.WithPrettyPrint())
	} else {
		w = report.NewHumanWriter(os.Stdout,
			report.WithConsultation(cfg.Consultation),
			report.WithNoColor(cfg.NoColor),
		)
	}
	if _, err := w.Write(rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if !rep.Pass {
		return ErrContractViolated
	}
	return nil
}
