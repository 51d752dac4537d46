package check

import (
	"strings"
	"testing"

	"github.com/t59688/novel-kit/internal/testutil"
)

func TestFileCleanDocument(t *testing.T) {
	issues := File("writer-new.md", testutil.WriterNewDoc())
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %d: %v", len(issues), issues)
	}
}

func TestFileRules(t *testing.T) {
	tests := []struct {
		name    string
		content string
		level   IssueLevel
		message string
	}{
		{
			name:    "unterminated front matter",
			content: "---\ndescription: \"Test\"\n\n# Heading\n",
			level:   LevelError,
			message: "unterminated front matter block",
		},
		{
			name:    "missing description",
			content: "---\nauthor: someone\n---\n\n# Heading\n",
			level:   LevelError,
			message: "missing description",
		},
		{
			name:    "blank description",
			content: "---\ndescription: \"\"\n---\n\n# Heading\n",
			level:   LevelError,
			message: "missing description",
		},
		{
			name:    "placeholder without scripts",
			content: "---\ndescription: \"Test\"\n---\n\n# Heading\n\nRun {SCRIPT} now.\n",
			level:   LevelError,
			message: "no scripts are declared",
		},
		{
			name:    "scripts without placeholder",
			content: "---\ndescription: \"Test\"\nscripts:\n  sh: \"a.sh\"\n  ps: \"a.ps1\"\n---\n\n# Heading\n\nNothing to run.\n",
			level:   LevelWarning,
			message: "never references",
		},
		{
			name:    "missing ps variant",
			content: "---\ndescription: \"Test\"\nscripts:\n  sh: \"a.sh\"\n---\n\n# Heading\n\nRun {SCRIPT} now.\n",
			level:   LevelWarning,
			message: "no ps script variant",
		},
		{
			name:    "missing sh variant",
			content: "---\ndescription: \"Test\"\nscripts:\n  ps: \"a.ps1\"\n---\n\n# Heading\n\nRun {SCRIPT} now.\n",
			level:   LevelWarning,
			message: "no sh script variant",
		},
		{
			name:    "no heading",
			content: "---\ndescription: \"Test\"\n---\n\nJust prose.\n",
			level:   LevelWarning,
			message: "no heading",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := File("doc.md", tt.content)
			found := false
			for _, issue := range issues {
				if issue.Level == tt.level && strings.Contains(issue.Message, tt.message) {
					found = true
					if issue.File != "doc.md" {
						t.Errorf("issue file = %q, want %q", issue.File, "doc.md")
					}
				}
			}
			if !found {
				t.Errorf("no %s issue containing %q in %v", tt.level, tt.message, issues)
			}
		})
	}
}

func TestFileScriptsBelowBrokenFrontMatter(t *testing.T) {
	// The fallback scan should still find the scripts block, so the
	// placeholder reference must not be flagged.
	content := "---\ndescription: \"Test\"\nscripts:\n  sh: \"a.sh\"\n  ps: \"a.ps1\"\n\n# Heading\n\nRun {SCRIPT} now.\n"
	issues := File("doc.md", content)
	for _, issue := range issues {
		if strings.Contains(issue.Message, "no scripts are declared") {
			t.Errorf("scripts from fallback scan not honored: %v", issues)
		}
	}
	found := false
	for _, issue := range issues {
		if strings.Contains(issue.Message, "unterminated front matter") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unterminated front matter error, got %v", issues)
	}
}

func TestDir(t *testing.T) {
	tree := testutil.NewSourceTree(t).
		WithCommand("writer-new.md", testutil.WriterNewDoc()).
		WithCommand("broken.md", "---\ndescription: \"\"\n---\n\nNo heading here.\n").
		WithCommand("notes.txt", "not a command document").
		Build()

	issues, err := Dir(tree.Path + "/commands")
	if err != nil {
		t.Fatalf("Dir() error = %v", err)
	}

	for _, issue := range issues {
		if issue.File != "broken.md" {
			t.Errorf("unexpected issue for %q: %s", issue.File, issue.Message)
		}
	}

	errors, warnings := Counts(issues)
	if errors != 1 {
		t.Errorf("errors = %d, want 1", errors)
	}
	if warnings != 1 {
		t.Errorf("warnings = %d, want 1", warnings)
	}
}

func TestDirMissing(t *testing.T) {
	if _, err := Dir(t.TempDir() + "/does-not-exist"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestIssueLevelString(t *testing.T) {
	if got := LevelError.String(); got != "error" {
		t.Errorf("LevelError.String() = %q", got)
	}
	if got := LevelWarning.String(); got != "warning" {
		t.Errorf("LevelWarning.String() = %q", got)
	}
}
