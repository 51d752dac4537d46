package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/t59688/novel-kit/internal/check"
	"github.com/t59688/novel-kit/internal/ui"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Lint the source command documents",
	Long: `Checks every document under commands/ for problems that would produce
broken packages: missing descriptions, script placeholders without declared
scripts, missing platform variants, bodies without a heading.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		commandsDir := filepath.Join(getSourceRoot(), "commands")

		issues, err := check.Dir(commandsDir)
		if err != nil {
			return handleError(ErrSourceNotFound, err, "Point --source at a NovelKit source tree")
		}
		errorCount, warningCount := check.Counts(issues)

		fileCount := 0
		if entries, err := os.ReadDir(commandsDir); err == nil {
			for _, entry := range entries {
				if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
					fileCount++
				}
			}
		}

		if isJSONOutput() {
			type issueReport struct {
				Level   string `json:"level"`
				File    string `json:"file"`
				Message string `json:"message"`
			}
			out := make([]issueReport, 0, len(issues))
			for _, issue := range issues {
				out = append(out, issueReport{Level: issue.Level.String(), File: issue.File, Message: issue.Message})
			}
			if errorCount > 0 {
				outputError(ErrCheckFailed,
					fmt.Sprintf("found %d error(s), %d warning(s) in %d files", errorCount, warningCount, fileCount),
					out, "")
				return nil
			}
			outputSuccess(out, &Meta{Count: len(out)})
			return nil
		}

		fmt.Printf("Checking commands: %s\n", commandsDir)

		lastFile := ""
		for _, issue := range issues {
			if issue.File != lastFile {
				fmt.Println()
				fmt.Println(ui.Header(issue.File))
				lastFile = issue.File
			}
			symbol := ui.SymbolError
			if issue.Level == check.LevelWarning {
				symbol = ui.SymbolWarning
			}
			fmt.Printf("  %s %s\n", symbol, issue.Message)
		}

		fmt.Println()
		if errorCount == 0 && warningCount == 0 {
			fmt.Println(ui.Successf("No issues found in %d files.", fileCount))
		} else {
			fmt.Printf("Checked %d files %s\n", fileCount, ui.ErrorWarningCounts(errorCount, warningCount))
		}

		if errorCount > 0 || (checkStrict && warningCount > 0) {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Treat warnings as errors")
	rootCmd.AddCommand(checkCmd)
}
