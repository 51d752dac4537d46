package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/t59688/novel-kit/internal/builder"
	"github.com/t59688/novel-kit/internal/profiles"
	"github.com/t59688/novel-kit/internal/ui"
	"github.com/t59688/novel-kit/internal/watcher"
)

var (
	buildWatch bool
	buildDebug bool
)

var buildCmd = &cobra.Command{
	Use:   "build [ai] [platform]",
	Short: "Build distribution packages from the source tree",
	Long: `Renders the source command documents for an AI environment and platform
and stages the full package under dist/{ai}-{platform}.

Pass 'all' as the AI to build every combination listed in build-config.json
(default: cursor on linux and win).

Examples:
  # Build the default package (cursor, linux)
  novelkit build

  # Build for Claude Code on Windows
  novelkit build claude win

  # Build the whole supported matrix
  novelkit build all

  # Rebuild whenever the source tree changes
  novelkit build cursor linux --watch`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ai := strings.ToLower(argOr(args, 0, defaultAI()))
		platform := strings.ToLower(argOr(args, 1, "linux"))

		sourceRoot := getSourceRoot()
		if _, err := os.Stat(filepath.Join(sourceRoot, "commands")); err != nil {
			return handleErrorMsg(ErrSourceNotFound,
				fmt.Sprintf("no commands directory in %s", sourceRoot),
				"Point --source at a NovelKit source tree")
		}

		if buildWatch {
			if isJSONOutput() {
				return handleErrorMsg(ErrInvalidInput, "--watch cannot be combined with --json", "")
			}
			return watchAndRebuild(ai, platform)
		}

		return runBuildOnce(ai, platform)
	},
}

func init() {
	buildCmd.Flags().BoolVar(&buildWatch, "watch", false, "Rebuild whenever the source tree changes")
	buildCmd.Flags().BoolVar(&buildDebug, "debug", false, "Enable watcher debug logging")
	rootCmd.AddCommand(buildCmd)
}

func runBuildOnce(ai, platform string) error {
	start := time.Now()
	if ai == "all" {
		return runBuildAll(start)
	}
	return runBuildSingle(ai, platform, start)
}

func runBuildSingle(ai, platform string, start time.Time) error {
	reg, err := profiles.Default()
	if err != nil {
		return handleError(ErrInternal, err, "")
	}
	profile, err := reg.Get(ai)
	if err != nil {
		return handleError(ErrProfileNotFound, err, "Run 'novelkit envs' to list AI environments")
	}

	b := &builder.Builder{
		Source:   getSourceRoot(),
		Dist:     getDistDir(),
		Registry: reg,
		Stderr:   os.Stderr,
	}
	var warnBuf bytes.Buffer
	if isJSONOutput() {
		b.Stderr = &warnBuf
	}

	outDir, err := b.BuildOne(ai, platform)
	if err != nil {
		return handleError(ErrBuildFailed, err, "")
	}

	if isJSONOutput() {
		outputSuccessWithWarnings(map[string]interface{}{
			"ai":           ai,
			"platform":     platform,
			"output_dir":   outDir,
			"meta_space":   filepath.Join(outDir, builder.MetaDirName),
			"commands_dir": filepath.Join(outDir, profile.Folder),
		}, warningsFromBuffer(&warnBuf), &Meta{Count: 1, ElapsedMs: time.Since(start).Milliseconds()})
		return nil
	}

	fmt.Println(ui.Successf("Built NovelKit package for ai=%q, platform=%q at: %s", ai, platform, outDir))
	fmt.Printf("  meta-space   : %s\n", ui.FilePath(filepath.Join(outDir, builder.MetaDirName)))
	fmt.Printf("  commands     : %s\n", ui.FilePath(filepath.Join(outDir, profile.Folder)))
	return nil
}

func runBuildAll(start time.Time) error {
	reg, err := profiles.Default()
	if err != nil {
		return handleError(ErrInternal, err, "")
	}
	bc, err := builder.LoadBuildConfig(getSourceRoot())
	if err != nil {
		return handleError(ErrConfigInvalid, err, "Fix build-config.json or delete it to use the defaults")
	}

	b := &builder.Builder{
		Source:   getSourceRoot(),
		Dist:     getDistDir(),
		Registry: reg,
		Stderr:   os.Stderr,
	}
	var warnBuf bytes.Buffer
	if isJSONOutput() {
		b.Stderr = &warnBuf
	}

	type cellReport struct {
		AI       string `json:"ai"`
		Platform string `json:"platform"`
		Dir      string `json:"output_dir,omitempty"`
		OK       bool   `json:"ok"`
		Error    string `json:"error,omitempty"`
	}

	built := 0
	var cells []cellReport
	for _, res := range b.BuildAll(bc.AIs, bc.Platforms) {
		cell := cellReport{AI: res.Profile, Platform: res.Platform, Dir: res.Dir, OK: res.Err == nil}
		if res.Err != nil {
			cell.Error = res.Err.Error()
			if !isJSONOutput() {
				fmt.Fprintln(os.Stderr, ui.Errorf("Failed to build ai=%q, platform=%q: %v", res.Profile, res.Platform, res.Err))
			}
		} else {
			built++
			if !isJSONOutput() {
				fmt.Println(ui.Successf("Built NovelKit package for ai=%q, platform=%q at: %s", res.Profile, res.Platform, res.Dir))
			}
		}
		cells = append(cells, cell)
	}

	if built == 0 {
		return handleErrorMsg(ErrBuildFailed, "no packages were built", "Check build-config.json and the warnings above")
	}

	if isJSONOutput() {
		outputSuccessWithWarnings(cells, warningsFromBuffer(&warnBuf), &Meta{Count: built, ElapsedMs: time.Since(start).Milliseconds()})
	}
	return nil
}

func watchAndRebuild(ai, platform string) error {
	rebuild := func() {
		if err := runBuildOnce(ai, platform); err != nil {
			fmt.Fprintln(os.Stderr, ui.Errorf("build failed: %v", err))
		}
	}

	// Initial build so the loop starts from the current sources.
	rebuild()

	w, err := watcher.New(watcher.Config{
		Root:     getSourceRoot(),
		Debug:    buildDebug,
		OnChange: rebuild,
	})
	if err != nil {
		return handleError(ErrWatchFailed, err, "")
	}

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nShutting down watcher...")
		cancel()
	}()

	fmt.Printf("Watching source tree: %s\n", getSourceRoot())
	fmt.Println("Press Ctrl+C to stop")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return handleError(ErrWatchFailed, err, "")
	}
	return nil
}

// warningsFromBuffer converts captured builder diagnostics into structured
// warnings for the JSON envelope.
func warningsFromBuffer(buf *bytes.Buffer) []Warning {
	var warnings []Warning
	for _, line := range strings.Split(buf.String(), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "warning: "))
		if line == "" {
			continue
		}
		warnings = append(warnings, Warning{Code: warningCode(line), Message: line})
	}
	return warnings
}

func warningCode(message string) string {
	switch {
	case strings.Contains(message, "unknown platform"):
		return WarnUnknownPlatform
	case strings.Contains(message, "script found"):
		return WarnMissingScript
	case strings.Contains(message, "not in the profile registry"):
		return WarnSkippedProfile
	default:
		return WarnMissingAsset
	}
}
