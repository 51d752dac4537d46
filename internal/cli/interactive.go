package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/t59688/novel-kit/internal/profiles"
	"github.com/t59688/novel-kit/internal/ui"
)

var (
	fzfLookPath         = exec.LookPath
	fzfStdinIsTerminal  = func() bool { return isatty.IsTerminal(os.Stdin.Fd()) }
	fzfStdoutIsTerminal = func() bool { return isatty.IsTerminal(os.Stdout.Fd()) }
)

func shouldPromptForConfirm() bool {
	if isJSONOutput() {
		return false
	}
	return fzfStdoutIsTerminal() && fzfStdinIsTerminal()
}

func promptForConfirm(message string) bool {
	if !shouldPromptForConfirm() {
		return false
	}
	if message == "" {
		message = "Continue?"
	}
	fmt.Printf("%s %s ", message, ui.Hint("[y/N]"))
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

type fzfPickerOptions struct {
	Prompt    string
	Header    string
	Delimiter string
	WithNth   string
}

func hasFZFInstalled() bool {
	_, err := fzfLookPath("fzf")
	return err == nil
}

func canUseFZFInteractive() bool {
	if isJSONOutput() {
		return false
	}
	if !fzfStdinIsTerminal() || !fzfStdoutIsTerminal() {
		return false
	}
	return hasFZFInstalled()
}

func runFZFPicker(lines []string, opts fzfPickerOptions) (string, bool, error) {
	if len(lines) == 0 {
		return "", false, nil
	}

	args := []string{
		"--layout=reverse",
		"--height=80%",
		"--border",
		"--select-1",
		"--exit-0",
	}
	if strings.TrimSpace(opts.Prompt) != "" {
		args = append(args, "--prompt", opts.Prompt)
	}
	if strings.TrimSpace(opts.Header) != "" {
		args = append(args, "--header", opts.Header)
	}
	if strings.TrimSpace(opts.Delimiter) != "" {
		args = append(args, "--delimiter", opts.Delimiter)
	}
	if strings.TrimSpace(opts.WithNth) != "" {
		args = append(args, "--with-nth", opts.WithNth)
	}

	cmd := exec.Command("fzf", args...)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n") + "\n")

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if code := exitErr.ExitCode(); code == 1 || code == 130 {
				return "", false, nil
			}
		}
		return "", false, fmt.Errorf("run fzf selector: %w", err)
	}

	selection := strings.TrimSpace(stdout.String())
	if selection == "" {
		return "", false, nil
	}
	return selection, true, nil
}

// pickProfile asks the user which AI environment to set up. Uses fzf when
// available, a numbered prompt otherwise. Returns false when the user
// cancels or no interactive channel is available.
func pickProfile(reg *profiles.Registry, fallback string) (string, bool, error) {
	list := reg.Profiles()
	if len(list) == 0 {
		return "", false, fmt.Errorf("no AI environments registered")
	}

	if canUseFZFInteractive() {
		lines := make([]string, 0, len(list))
		for _, p := range list {
			lines = append(lines, fmt.Sprintf("%s\t%s (%s)", p.ID, p.Name, p.Description))
		}
		selection, selected, err := runFZFPicker(lines, fzfPickerOptions{
			Prompt:    "AI environment> ",
			Header:    "Pick the AI environment this project targets",
			Delimiter: "\t",
		})
		if err != nil || !selected {
			return "", selected, err
		}
		id, _, _ := strings.Cut(selection, "\t")
		return strings.TrimSpace(id), true, nil
	}

	if !shouldPromptForConfirm() {
		return "", false, nil
	}

	fmt.Println(ui.Header("Pick an AI environment:"))
	defaultIndex := 1
	for i, p := range list {
		if p.ID == fallback {
			defaultIndex = i + 1
		}
		fmt.Printf("  %2d. %s %s\n", i+1, ui.Accent.Render(fmt.Sprintf("%-14s", p.ID)), ui.Hint(p.Name))
	}
	fmt.Printf("Selection %s: ", ui.Hint(fmt.Sprintf("[%d]", defaultIndex)))

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return list[defaultIndex-1].ID, true, nil
	}
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(list) {
			return "", false, fmt.Errorf("selection %d is out of range", n)
		}
		return list[n-1].ID, true, nil
	}
	id := strings.ToLower(input)
	if reg.Has(id) {
		return id, true, nil
	}
	return "", false, fmt.Errorf("unknown AI environment %q", input)
}

func interactivePickerMissingArgSuggestion(commandName, usage string) string {
	if hasFZFInstalled() {
		return fmt.Sprintf("Run '%s'", usage)
	}
	return fmt.Sprintf("Install fzf to enable interactive selection for bare 'novelkit %s', or run '%s'", commandName, usage)
}
