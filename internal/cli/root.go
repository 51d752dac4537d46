// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/t59688/novel-kit/internal/config"
	"github.com/t59688/novel-kit/internal/ui"
)

var (
	// Global flags
	sourceFlag string
	distFlag   string
	configPath string

	// Resolved values
	resolvedSourceRoot string
	resolvedDistDir    string
	cfg                *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "novelkit",
	Short: "NovelKit - AI-assisted novel writing toolkit",
	Long: `NovelKit packages AI command documents into per-environment distribution
trees and initializes writing projects from them.

A source tree declares commands, templates, memory and scripts once;
novelkit renders them for each AI environment (Cursor, Claude Code,
Gemini CLI, ...) and platform (linux, win).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip source resolution for commands that don't need it
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		// Load config
		var err error
		cfg, err = loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg == nil {
			cfg = &config.Config{}
		}
		ui.ConfigureTheme(cfg.UI.Accent)

		// Resolve source root: flag > config > working directory
		if sourceFlag != "" {
			resolvedSourceRoot = sourceFlag
		} else if cfg.SourceRoot != "" {
			resolvedSourceRoot = cfg.SourceRoot
		} else {
			resolvedSourceRoot, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to resolve working directory: %w", err)
			}
		}

		// Resolve dist override: flag > config. Empty means <source>/dist.
		if distFlag != "" {
			resolvedDistDir = distFlag
		} else {
			resolvedDistDir = cfg.DistDir
		}

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "Path to the NovelKit source tree")
	rootCmd.PersistentFlags().StringVar(&distFlag, "dist", "", "Output directory for built packages (default <source>/dist)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// getSourceRoot returns the resolved source tree root.
func getSourceRoot() string {
	return resolvedSourceRoot
}

// getDistDir returns the dist override, empty when the default applies.
func getDistDir() string {
	return resolvedDistDir
}

// getConfig returns the loaded config, never nil.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

func loadGlobalConfig() (*config.Config, error) {
	if strings.TrimSpace(configPath) != "" {
		// A missing explicit path behaves like a missing default path:
		// zero config, so 'config init --config <path>' can create it.
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return &config.Config{}, nil
		}
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

// argOr returns args[i], or fallback when the argument is absent or blank.
func argOr(args []string, i int, fallback string) string {
	if i < len(args) && strings.TrimSpace(args[i]) != "" {
		return args[i]
	}
	return fallback
}

// defaultAI returns the configured default AI environment.
func defaultAI() string {
	if cfg != nil && cfg.DefaultAI != "" {
		return cfg.DefaultAI
	}
	return "cursor"
}
