package render

import (
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/t59688/novel-kit/internal/profiles"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		script   string
		argToken string
		want     string
	}{
		{
			name:     "all placeholders",
			body:     "Run {SCRIPT} with $ARGUMENTS and also {ARGS}.",
			script:   "run.sh",
			argToken: "{{args}}",
			want:     "Run run.sh with {{args}} and also {{args}}.",
		},
		{
			name:     "repeated placeholders",
			body:     "{SCRIPT} then {SCRIPT}",
			script:   "a.sh",
			argToken: "$ARGUMENTS",
			want:     "a.sh then a.sh",
		},
		{
			name:     "script may carry the argument placeholder",
			body:     "Call {SCRIPT}",
			script:   "run.sh $ARGUMENTS",
			argToken: "{{args}}",
			want:     "Call run.sh {{args}}",
		},
		{
			name:     "no placeholders",
			body:     "Plain body.",
			script:   "run.sh",
			argToken: "{{args}}",
			want:     "Plain body.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Substitute(tt.body, tt.script, tt.argToken); got != tt.want {
				t.Errorf("Substitute() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderMarkdownVerbatim(t *testing.T) {
	body := "\n\n# Title\n\nBody with trailing newline.\n"
	for _, format := range []profiles.Format{profiles.FormatMarkdown, profiles.FormatAgentMarkdown} {
		if got := Render(format, "ignored", body); got != body {
			t.Errorf("Render(%q) = %q, want body verbatim", format, got)
		}
	}
}

func TestRenderTOMLExact(t *testing.T) {
	got := Render(profiles.FormatTOML, "Create a writer", "\nBody text")
	want := "description = \"Create a writer\"\n\nprompt = \"\"\"\n\nBody text\n\"\"\""
	if got != want {
		t.Errorf("Render(toml) = %q, want %q", got, want)
	}
}

func TestRenderTOMLDecodes(t *testing.T) {
	body := "\n# Writer New\n\nRun run.sh with {{args}}.\n"
	out := Render(profiles.FormatTOML, "Create a writer", body)

	var doc struct {
		Description string `toml:"description"`
		Prompt      string `toml:"prompt"`
	}
	if _, err := toml.Decode(out, &doc); err != nil {
		t.Fatalf("decode rendered TOML: %v", err)
	}

	if doc.Description != "Create a writer" {
		t.Errorf("description = %q", doc.Description)
	}
	// The opening """ swallows the newline right after it, and the closing
	// delimiter sits on its own line, so the decoded prompt is the body
	// plus one trailing newline.
	if doc.Prompt != body+"\n" {
		t.Errorf("prompt = %q, want %q", doc.Prompt, body+"\n")
	}
}

func TestRenderTOMLTripleQuoteBodyIsInvalid(t *testing.T) {
	// Bodies containing the triple-quote sequence break the prompt block.
	// This pins the known sharp edge so a change in behavior is loud.
	out := Render(profiles.FormatTOML, "desc", "before \"\"\" after")

	var doc map[string]interface{}
	if _, err := toml.Decode(out, &doc); err == nil {
		t.Errorf("expected invalid TOML for a body containing %q, decoded: %v", `"""`, doc)
	}
}

func TestRenderTOMLQuoteInDescriptionIsInvalid(t *testing.T) {
	out := Render(profiles.FormatTOML, `say "hi"`, "body")
	if !strings.Contains(out, `description = "say "hi""`) {
		t.Fatalf("unexpected rendering: %q", out)
	}

	var doc map[string]interface{}
	if _, err := toml.Decode(out, &doc); err == nil {
		t.Errorf("expected invalid TOML for a quoted description, decoded: %v", doc)
	}
}
