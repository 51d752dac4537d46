package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Title\n\nSome *styled* text.\n", 80)
	if err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}
	if !strings.Contains(out, "Title") {
		t.Errorf("rendered output missing heading text: %q", out)
	}
	if !strings.Contains(out, "styled") {
		t.Errorf("rendered output missing body text: %q", out)
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if _, err := RenderMarkdown("", 80); err != nil {
		t.Fatalf("RenderMarkdown(empty) error: %v", err)
	}
}
