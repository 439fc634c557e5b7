package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/uiforge/designlint/internal/config"
)

//go:embed templates/designlint.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new designlint configuration file",
		Long: `Initialize creates a new .designlint.yaml configuration file in the
current directory.

The generated file includes:
- The default compliance threshold and ignore patterns
- Commented examples for token overrides
- Per-directory policy examples
- Dev server settings for the page and snapshot commands

Examples:
  # Create .designlint.yaml in the current directory
  designlint init

  # Create the config file at a specific path
  designlint init -o configs/designlint.yaml

  # Force overwrite of an existing file
  designlint init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/designlint.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Printf("Created configuration file: %s\n", outputPath)
	fmt.Println("\nEdit this file to configure project-specific settings such as:")
	fmt.Println("  - Token overrides for brand colors, shadows, and animations")
	fmt.Println("  - Per-directory rule exemptions and inline style allowances")
	fmt.Println("  - Dev server URL and required page copy")

	return nil
}
