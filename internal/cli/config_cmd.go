package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/t59688/novel-kit/internal/config"
	"github.com/t59688/novel-kit/internal/profiles"
)

var (
	configSetSourceRoot  string
	configSetDistDir     string
	configSetDefaultAI   string
	configSetGitHubOwner string
	configSetGitHubRepo  string
	configSetUIAccent    string

	configUnsetSourceRoot  bool
	configUnsetDistDir     bool
	configUnsetDefaultAI   bool
	configUnsetGitHubOwner bool
	configUnsetGitHubRepo  bool
	configUnsetUIAccent    bool
)

func resolveConfigPath() string {
	if strings.TrimSpace(configPath) != "" {
		return configPath
	}
	return config.DefaultPath()
}

func configData(cfg *config.Config, path string, exists bool) map[string]interface{} {
	return map[string]interface{}{
		"config_path": path,
		"exists":      exists,
		"source_root": strings.TrimSpace(cfg.SourceRoot),
		"dist_dir":    strings.TrimSpace(cfg.DistDir),
		"default_ai":  strings.TrimSpace(cfg.DefaultAI),
		"github": map[string]interface{}{
			"owner": strings.TrimSpace(cfg.GitHub.Owner),
			"repo":  strings.TrimSpace(cfg.GitHub.Repo),
		},
		"ui": map[string]interface{}{
			"accent": strings.TrimSpace(cfg.UI.Accent),
		},
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := getConfig()
	path := resolveConfigPath()
	_, statErr := os.Stat(path)
	exists := statErr == nil

	if isJSONOutput() {
		outputSuccess(configData(cfg, path, exists), nil)
		return nil
	}

	if !exists {
		fmt.Printf("Config file does not exist: %s\n", path)
		fmt.Println("Run 'novelkit config init' to create it.")
		return nil
	}

	fmt.Printf("config: %s\n", path)
	if v := strings.TrimSpace(cfg.SourceRoot); v != "" {
		fmt.Printf("source_root: %s\n", v)
	}
	if v := strings.TrimSpace(cfg.DistDir); v != "" {
		fmt.Printf("dist_dir: %s\n", v)
	}
	if v := strings.TrimSpace(cfg.DefaultAI); v != "" {
		fmt.Printf("default_ai: %s\n", v)
	}
	if v := strings.TrimSpace(cfg.GitHub.Owner); v != "" {
		fmt.Printf("github.owner: %s\n", v)
	}
	if v := strings.TrimSpace(cfg.GitHub.Repo); v != "" {
		fmt.Printf("github.repo: %s\n", v)
	}
	if v := strings.TrimSpace(cfg.UI.Accent); v != "" {
		fmt.Printf("ui.accent: %s\n", v)
	}
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global NovelKit config.toml settings",
	Long: `Manage global NovelKit config.toml settings.

Use this to initialize, inspect, and edit machine-level configuration.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default global config.toml if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		targetPath := resolveConfigPath()
		_, statErr := os.Stat(targetPath)
		existed := statErr == nil
		if statErr != nil && !os.IsNotExist(statErr) {
			return handleError(ErrFileReadError, statErr, "")
		}

		createdPath, err := config.CreateDefaultAt(targetPath)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_path": createdPath,
				"created":     !existed,
			}, nil)
			return nil
		}

		if existed {
			fmt.Printf("Config already exists: %s\n", createdPath)
		} else {
			fmt.Printf("Created config: %s\n", createdPath)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set one or more global config.toml fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		path := resolveConfigPath()

		changed := make([]string, 0, 6)

		if cmd.Flags().Changed("source-root") {
			value := strings.TrimSpace(configSetSourceRoot)
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, "source-root cannot be empty; use 'novelkit config unset --source-root' to clear it", "")
			}
			cfg.SourceRoot = value
			changed = append(changed, "source_root")
		}

		if cmd.Flags().Changed("dist-dir") {
			value := strings.TrimSpace(configSetDistDir)
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, "dist-dir cannot be empty; use 'novelkit config unset --dist-dir' to clear it", "")
			}
			cfg.DistDir = value
			changed = append(changed, "dist_dir")
		}

		if cmd.Flags().Changed("default-ai") {
			value := strings.ToLower(strings.TrimSpace(configSetDefaultAI))
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, "default-ai cannot be empty; use 'novelkit config unset --default-ai' to clear it", "")
			}
			reg, err := profiles.Default()
			if err != nil {
				return handleError(ErrInternal, err, "")
			}
			if !reg.Has(value) {
				return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("default-ai %q is not a registered AI environment", value), "Run 'novelkit envs' to list AI environments")
			}
			cfg.DefaultAI = value
			changed = append(changed, "default_ai")
		}

		if cmd.Flags().Changed("github-owner") {
			value := strings.TrimSpace(configSetGitHubOwner)
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, "github-owner cannot be empty; use 'novelkit config unset --github-owner' to clear it", "")
			}
			cfg.GitHub.Owner = value
			changed = append(changed, "github.owner")
		}

		if cmd.Flags().Changed("github-repo") {
			value := strings.TrimSpace(configSetGitHubRepo)
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, "github-repo cannot be empty; use 'novelkit config unset --github-repo' to clear it", "")
			}
			cfg.GitHub.Repo = value
			changed = append(changed, "github.repo")
		}

		if cmd.Flags().Changed("ui-accent") {
			value := strings.TrimSpace(configSetUIAccent)
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, "ui-accent cannot be empty; use 'novelkit config unset --ui-accent' to clear it", "")
			}
			cfg.UI.Accent = value
			changed = append(changed, "ui.accent")
		}

		if len(changed) == 0 {
			return handleErrorMsg(ErrMissingArgument, "no fields provided; set at least one --source-root/--dist-dir/--default-ai/--github-owner/--github-repo/--ui-accent", "")
		}

		if err := config.SaveTo(path, cfg); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			data := configData(cfg, path, true)
			data["changed"] = changed
			outputSuccess(data, nil)
			return nil
		}

		fmt.Printf("Updated config: %s\n", path)
		fmt.Printf("changed: %s\n", strings.Join(changed, ", "))
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset",
	Short: "Clear one or more global config.toml fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		path := resolveConfigPath()
		if _, err := os.Stat(path); err != nil {
			return handleErrorMsg(ErrFileNotFound, fmt.Sprintf("config file not found: %s", path), "Run 'novelkit config init' first")
		}

		changed := make([]string, 0, 6)
		if configUnsetSourceRoot {
			cfg.SourceRoot = ""
			changed = append(changed, "source_root")
		}
		if configUnsetDistDir {
			cfg.DistDir = ""
			changed = append(changed, "dist_dir")
		}
		if configUnsetDefaultAI {
			cfg.DefaultAI = ""
			changed = append(changed, "default_ai")
		}
		if configUnsetGitHubOwner {
			cfg.GitHub.Owner = ""
			changed = append(changed, "github.owner")
		}
		if configUnsetGitHubRepo {
			cfg.GitHub.Repo = ""
			changed = append(changed, "github.repo")
		}
		if configUnsetUIAccent {
			cfg.UI.Accent = ""
			changed = append(changed, "ui.accent")
		}

		if len(changed) == 0 {
			return handleErrorMsg(ErrMissingArgument, "no fields selected; pass one or more unset flags", "")
		}

		if err := config.SaveTo(path, cfg); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			data := configData(cfg, path, true)
			data["changed"] = changed
			outputSuccess(data, nil)
			return nil
		}

		fmt.Printf("Updated config: %s\n", path)
		fmt.Printf("cleared: %s\n", strings.Join(changed, ", "))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current global config.toml values",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	})

	configSetCmd.Flags().StringVar(&configSetSourceRoot, "source-root", "", "Set the source tree builds read from")
	configSetCmd.Flags().StringVar(&configSetDistDir, "dist-dir", "", "Set where built packages are staged")
	configSetCmd.Flags().StringVar(&configSetDefaultAI, "default-ai", "", "Set the AI environment init and build preselect")
	configSetCmd.Flags().StringVar(&configSetGitHubOwner, "github-owner", "", "Set the release download repository owner")
	configSetCmd.Flags().StringVar(&configSetGitHubRepo, "github-repo", "", "Set the release download repository name")
	configSetCmd.Flags().StringVar(&configSetUIAccent, "ui-accent", "", "Set UI accent color (ANSI 0-255 or #RRGGBB)")

	configUnsetCmd.Flags().BoolVar(&configUnsetSourceRoot, "source-root", false, "Clear source_root")
	configUnsetCmd.Flags().BoolVar(&configUnsetDistDir, "dist-dir", false, "Clear dist_dir")
	configUnsetCmd.Flags().BoolVar(&configUnsetDefaultAI, "default-ai", false, "Clear default_ai")
	configUnsetCmd.Flags().BoolVar(&configUnsetGitHubOwner, "github-owner", false, "Clear github.owner")
	configUnsetCmd.Flags().BoolVar(&configUnsetGitHubRepo, "github-repo", false, "Clear github.repo")
	configUnsetCmd.Flags().BoolVar(&configUnsetUIAccent, "ui-accent", false, "Clear ui.accent")

	rootCmd.AddCommand(configCmd)
}
