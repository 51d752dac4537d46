package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"

	"github.com/t59688/novel-kit/internal/atomicfile"
	"github.com/t59688/novel-kit/internal/parser"
	"github.com/t59688/novel-kit/internal/ui"
)

var (
	newDescription string
	newShScript    string
	newPsScript    string
)

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Scaffold a new command document",
	Long: `Creates a source command document under commands/ with the front matter
the build pipeline expects.

Examples:
  novelkit new "Writer Switch"
  novelkit new "Chapter Outline" --description "Draft a chapter outline"
  novelkit new "Setup" --sh scripts/bash/setup.sh --ps scripts/powershell/setup.ps1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.TrimSpace(args[0])
		if title == "" {
			return handleErrorMsg(ErrMissingArgument, "title cannot be empty", "")
		}

		name := slug.Make(title)
		if name == "" {
			return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("cannot derive a file name from %q", title), "")
		}

		commandsDir := filepath.Join(getSourceRoot(), "commands")
		if err := os.MkdirAll(commandsDir, 0o755); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		path := filepath.Join(commandsDir, name+".md")
		if _, err := os.Stat(path); err == nil {
			return handleErrorMsg(ErrFileExists,
				fmt.Sprintf("%s already exists", path),
				"Pick another title or edit the existing document")
		}

		doc := commandSkeleton(title, name)
		if err := atomicfile.WriteFile(path, []byte(doc), 0o644); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		canonical := parser.CommandName(name + ".md")
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"file":    path,
				"slug":    name,
				"command": canonical,
			}, nil)
			return nil
		}

		fmt.Println(ui.Successf("Created %s", ui.FilePath(path)))
		fmt.Printf("  packaged as: %s\n", canonical)
		return nil
	},
}

// commandSkeleton renders the front matter and body template for a new
// command document. The result parses clean through the build pipeline.
func commandSkeleton(title, name string) string {
	description := newDescription
	if description == "" {
		description = title
	}
	sh := newShScript
	if sh == "" {
		sh = fmt.Sprintf("scripts/bash/%s.sh", name)
	}
	ps := newPsScript
	if ps == "" {
		ps = fmt.Sprintf("scripts/powershell/%s.ps1", name)
	}

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "description: %q\n", description)
	b.WriteString("scripts:\n")
	fmt.Fprintf(&b, "  sh: %q\n", sh)
	fmt.Fprintf(&b, "  ps: %q\n", ps)
	b.WriteString("---\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "# %s\n", title)
	b.WriteString("\n")
	b.WriteString("Run {SCRIPT} with $ARGUMENTS from the project root.\n")
	b.WriteString("\n")
	b.WriteString("1. Describe what the command should do here.\n")
	b.WriteString("2. Reference the JSON the script prints.\n")
	return b.String()
}

func init() {
	newCmd.Flags().StringVar(&newDescription, "description", "", "Description stored in the front matter (defaults to the title)")
	newCmd.Flags().StringVar(&newShScript, "sh", "", "Bash script path for the sh variant")
	newCmd.Flags().StringVar(&newPsScript, "ps", "", "PowerShell script path for the ps variant")
	rootCmd.AddCommand(newCmd)
}
