package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/t59688/novel-kit/internal/profiles"
	"github.com/t59688/novel-kit/internal/project"
	"github.com/t59688/novel-kit/internal/release"
	"github.com/t59688/novel-kit/internal/ui"
)

var (
	initAI      string
	initHere    bool
	initForce   bool
	initVerbose bool
)

var initCmd = &cobra.Command{
	Use:   "init [project]",
	Short: "Set up a writing project from a built package",
	Long: `Copies a built NovelKit package into a project directory.

The package is located locally first (dist/<ai>-<platform> under the
source root, the working directory, or $NOVELKIT_DIST_DIR) and downloaded
from the latest GitHub release when no local copy exists.

Examples:
  novelkit init my-novel
  novelkit init my-novel --ai claude
  novelkit init . --force
  novelkit init --here --verbose`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initAI, "ai", "", "AI environment to set up (see 'novelkit envs')")
	initCmd.Flags().BoolVar(&initHere, "here", false, "Initialize into the current directory")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Skip the non-empty directory confirmation")
	initCmd.Flags().BoolVarP(&initVerbose, "verbose", "v", false, "Show download and copy progress")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = strings.TrimSpace(args[0])
	}
	if name == "." {
		name = ""
		initHere = true
	}
	if name != "" && initHere {
		return handleErrorMsg(ErrInvalidInput, "cannot combine a project name with --here", "")
	}
	if name == "" && !initHere {
		return handleErrorMsg(ErrMissingArgument, "project name required",
			"Run 'novelkit init <project>', or 'novelkit init --here' for the current directory")
	}

	if !isJSONOutput() && fzfStdoutIsTerminal() {
		ui.PrintBanner(os.Stdout)
	}

	reg, err := profiles.Default()
	if err != nil {
		return handleError(ErrInternal, err, "")
	}

	// Pick the AI environment: --ai flag, then the configured default,
	// then an interactive picker.
	ai := strings.ToLower(strings.TrimSpace(initAI))
	switch {
	case ai != "":
		if !reg.Has(ai) {
			return handleErrorMsg(ErrProfileNotFound,
				fmt.Sprintf("unknown AI environment %q (known: %s)", initAI, strings.Join(reg.IDs(), ", ")),
				"Run 'novelkit envs' to list AI environments")
		}
	case getConfig().DefaultAI != "" && reg.Has(getConfig().DefaultAI):
		ai = getConfig().DefaultAI
	default:
		picked, selected, err := pickProfile(reg, defaultAI())
		if err != nil {
			return handleError(ErrInvalidInput, err, "Run 'novelkit envs' to list AI environments")
		}
		if !selected {
			return handleErrorMsg(ErrMissingArgument, "no AI environment selected",
				interactivePickerMissingArgSuggestion("init", "novelkit init <project> --ai <id>"))
		}
		ai = picked
	}

	profile, err := reg.Get(ai)
	if err != nil {
		return handleError(ErrProfileNotFound, err, "Run 'novelkit envs' to list AI environments")
	}

	platform := profiles.HostPlatform()
	distName := ai + "-" + platform

	distDir, found := release.FindLocalDist(getSourceRoot(), distName)
	if !found {
		distDir, err = downloadDist(cmd, ai, platform, distName)
		if err != nil {
			return handleError(ErrDownloadFailed, err,
				fmt.Sprintf("Build the package locally first: novelkit build %s %s", ai, platform))
		}
	}

	// Resolve the target directory. A named project must not exist yet;
	// --here merges into the working directory after a confirmation when
	// it is not empty.
	var projectPath string
	if initHere {
		cwd, err := os.Getwd()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		entries, err := os.ReadDir(cwd)
		if err != nil {
			return handleError(ErrInitFailed, err, "")
		}
		if len(entries) > 0 && !initForce {
			msg := fmt.Sprintf("Current directory has %s. Merge NovelKit files into it?",
				ui.Count(len(entries), "entry", "entries"))
			if !promptForConfirm(msg) {
				return handleErrorMsg(ErrProjectExists, "directory is not empty",
					"Re-run with --force to merge without confirmation")
			}
		}
		projectPath = cwd
	} else {
		projectPath, err = filepath.Abs(name)
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		if _, err := os.Stat(projectPath); err == nil {
			return handleErrorMsg(ErrProjectExists, fmt.Sprintf("directory %q already exists", name),
				"Pick another name, or run 'novelkit init --here' inside it")
		}
		if err := os.MkdirAll(projectPath, 0o755); err != nil {
			return handleError(ErrInitFailed, err, "")
		}
	}

	summary, err := project.Init(distDir, projectPath)
	if err != nil {
		return handleError(ErrInitFailed, err, "")
	}

	if isJSONOutput() {
		outputSuccess(struct {
			Project     string   `json:"project"`
			AI          string   `json:"ai"`
			Platform    string   `json:"platform"`
			Package     string   `json:"package"`
			FilesCopied int      `json:"files_copied"`
			Dirs        []string `json:"dirs"`
		}{
			Project:     projectPath,
			AI:          ai,
			Platform:    platform,
			Package:     distDir,
			FilesCopied: summary.FilesCopied,
			Dirs:        summary.Dirs,
		}, nil)
		return nil
	}

	fmt.Println()
	fmt.Println(ui.Successf("Project initialized for %s (%s) at: %s", profile.Name, platform, ui.FilePath(projectPath)))
	fmt.Printf("  copied %s across %s\n",
		ui.Count(summary.FilesCopied, "file", "files"),
		ui.Count(len(summary.Dirs), "directory", "directories"))

	fmt.Println()
	fmt.Println(ui.Header("Next steps"))
	step := 1
	if !initHere {
		fmt.Printf("  %d. cd %s\n", step, name)
		step++
	}
	fmt.Printf("  %d. Open the project with %s\n", step, profile.Name)
	step++
	fmt.Printf("  %d. Start writing:\n", step)
	for _, row := range [][2]string{
		{"/novel.writer.new", "create a writer"},
		{"/novel.writer.list", "list writers"},
		{"/novel.writer.switch", "switch the active writer"},
		{"/novel.setup", "project setup"},
	} {
		fmt.Printf("     %s  %s\n", ui.Accent.Render(fmt.Sprintf("%-20s", row[0])), ui.Hint(row[1]))
	}
	return nil
}

// downloadDist fetches the release package for one ai/platform cell,
// showing a spinner on interactive terminals.
func downloadDist(cmd *cobra.Command, ai, platform, distName string) (string, error) {
	opts := release.Options{
		Owner: getConfig().GitHub.Owner,
		Repo:  getConfig().GitHub.Repo,
	}
	if initVerbose {
		opts.Progress = func(message string) {
			fmt.Fprintln(os.Stderr, ui.Hint(message))
		}
	}

	var spin *ui.Spinner
	if !isJSONOutput() && fzfStdoutIsTerminal() {
		fmt.Println(ui.Warningf("no local package %s, downloading the latest release", distName))
		if !initVerbose {
			spin = ui.NewSpinner(fmt.Sprintf("Downloading %s package...", distName))
			spin.Start()
		}
	}

	dir, err := release.Download(cmd.Context(), ai, platform, opts)
	if spin != nil {
		spin.Stop()
	}
	return dir, err
}
