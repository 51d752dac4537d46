package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func findCommand(t *testing.T, path string) *cobra.Command {
	t.Helper()
	cmd := rootCmd
	for _, name := range strings.Fields(path) {
		var next *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				next = c
				break
			}
		}
		if next == nil {
			t.Fatalf("command %q missing from CLI tree", path)
		}
		cmd = next
	}
	return cmd
}

func commandFlagNames(cmd *cobra.Command) []string {
	var names []string
	cmd.LocalFlags().VisitAll(func(flag *pflag.Flag) {
		if flag.Name == "help" {
			return
		}
		names = append(names, flag.Name)
	})
	slices.Sort(names)
	return names
}

// Scripts and agent integrations depend on the flag surface; renames must
// be deliberate.
func TestCommandFlagSurface(t *testing.T) {
	configFields := []string{"default-ai", "dist-dir", "github-owner", "github-repo", "source-root", "ui-accent"}

	tests := []struct {
		command string
		flags   []string
	}{
		{"build", []string{"debug", "watch"}},
		{"check", []string{"strict"}},
		{"config", nil},
		{"config init", nil},
		{"config set", configFields},
		{"config show", nil},
		{"config unset", configFields},
		{"envs", nil},
		{"init", []string{"ai", "force", "here", "verbose"}},
		{"new", []string{"description", "ps", "sh"}},
		{"preview", []string{"ai", "platform", "raw"}},
		{"version", nil},
	}

	for _, tt := range tests {
		t.Run(strings.ReplaceAll(tt.command, " ", "_"), func(t *testing.T) {
			cmd := findCommand(t, tt.command)
			got := commandFlagNames(cmd)
			if !slices.Equal(got, tt.flags) {
				t.Errorf("%s flags = %v, want %v", tt.command, got, tt.flags)
			}
		})
	}
}

func TestGlobalFlagsRegistered(t *testing.T) {
	for _, name := range []string{"source", "dist", "config", "json"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag %q missing from root command", name)
		}
	}
}
