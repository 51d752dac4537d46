package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/t59688/novel-kit/internal/parser"
	"github.com/t59688/novel-kit/internal/profiles"
	"github.com/t59688/novel-kit/internal/render"
	"github.com/t59688/novel-kit/internal/ui"
)

var (
	previewAI       string
	previewPlatform string
	previewRaw      bool
)

var previewCmd = &cobra.Command{
	Use:   "preview <command>",
	Short: "Render one command document as an AI environment receives it",
	Long: `Runs the build pipeline on a single source document and prints the result
without staging a package.

Examples:
  novelkit preview writer-new
  novelkit preview writer-new --ai gemini --platform win
  novelkit preview writer-new --raw`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := profiles.Default()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		ai := strings.ToLower(previewAI)
		if ai == "" {
			ai = defaultAI()
		}
		profile, err := reg.Get(ai)
		if err != nil {
			return handleError(ErrProfileNotFound, err, "Run 'novelkit envs' to list AI environments")
		}

		platform := strings.ToLower(previewPlatform)
		if platform == "" {
			platform = profiles.HostPlatform()
		}

		name := strings.TrimSuffix(args[0], ".md")
		srcPath := filepath.Join(getSourceRoot(), "commands", name+".md")
		data, err := os.ReadFile(srcPath)
		if err != nil {
			return handleError(ErrFileNotFound, err, "Run 'novelkit new' to scaffold a command document")
		}

		fm, body := parser.ParseFrontmatter(string(data))
		scripts := fm.Scripts
		if len(scripts) == 0 {
			scripts = parser.ExtractScripts(string(data))
		}
		scriptKey := reg.ScriptKey(platform)
		script, found := parser.SelectScript(scripts, scriptKey)
		if !found && !isJSONOutput() {
			fmt.Fprintln(os.Stderr, ui.Warningf("no %s script found in %s", scriptKey, name+".md"))
		}
		body = render.Substitute(body, script, profile.ArgToken)

		outName := parser.CommandName(name+".md") + profile.Format.Extension()
		rendered := render.Render(profile.Format, fm.Fields["description"], body)

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"ai":       ai,
				"platform": platform,
				"file":     outName,
				"content":  rendered,
			}, nil)
			return nil
		}

		fmt.Println(ui.Hint(fmt.Sprintf("%s (%s, %s)", outName, ai, platform)))
		fmt.Println()

		if previewRaw || profile.Format == profiles.FormatTOML || !isatty.IsTerminal(os.Stdout.Fd()) {
			fmt.Println(rendered)
			return nil
		}

		pretty, err := ui.RenderMarkdown(rendered, ui.TermWidth())
		if err != nil {
			fmt.Println(rendered)
			return nil
		}
		fmt.Print(pretty)
		return nil
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewAI, "ai", "", "AI environment to render for (defaults to the configured default)")
	previewCmd.Flags().StringVar(&previewPlatform, "platform", "", "Platform whose script variant to bake in (defaults to the host)")
	previewCmd.Flags().BoolVar(&previewRaw, "raw", false, "Print the exact file content without terminal rendering")
	rootCmd.AddCommand(previewCmd)
}
