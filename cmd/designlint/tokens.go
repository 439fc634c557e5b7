package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/uiforge/designlint/internal/config"
	"github.com/uiforge/designlint/internal/model"
)

// NewTokensCmd creates the tokens command.
func NewTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Print the active design token set",
		Long: `Tokens prints the design token set that validation runs against:
colors, glass shadows, blur steps, animations, the spacing scale, and
typography tokens. Project token overrides from .designlint.yaml are
merged before printing, so the output is exactly what the rules see.

Examples:
  # Print the active token set as YAML
  designlint tokens

  # Print as JSON for tooling
  designlint tokens --json

  # List all rule IDs instead
  designlint tokens --rules`,
		Args: cobra.NoArgs,
		RunE: runTokensCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Output tokens as JSON")
	cmd.Flags().Bool("rules", false, "List rule IDs instead of tokens")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .designlint.yaml in current or home directory)")

	return cmd
}

// runTokensCmd executes the tokens command.
func runTokensCmd(cmd *cobra.Command, _ []string) error {
	listRules, err := cmd.Flags().GetBool("rules")
	if err != nil {
		return err
	}
	if listRules {
		ids := model.RuleIDs()
		sort.Strings(ids)
		for _, id := range ids {
			info := model.GetRuleInfo(id)
			fmt.Fprintf(cmd.OutOrStdout(), "%-28s  %-7s  %s\n",
				id, info.Severity.String(), info.Impact)
		}
		return nil
	}

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

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(cfg.Tokens)
	}

	out, err := yaml.Marshal(cfg.Tokens)
	if err != nil {
		return fmt.Errorf("failed to render tokens: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
