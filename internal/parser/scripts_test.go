package parser

import (
	"reflect"
	"testing"
)

func TestExtractScripts(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    map[string]string
	}{
		{
			name:    "block below unterminated header",
			content: "---\ndescription: x\nscripts:\n  sh: \"run.sh\"\n  ps: 'run.ps1'\nMore text\n",
			want:    map[string]string{"sh": "run.sh", "ps": "run.ps1"},
		},
		{
			name:    "block in body",
			content: "# Doc\n\nscripts:\n  sh: a.sh\n\nAfter.\n",
			want:    map[string]string{"sh": "a.sh"},
		},
		{
			name:    "stops at first unindented line",
			content: "scripts:\n  sh: a.sh\ndone\n  ps: b.ps1\n",
			want:    map[string]string{"sh": "a.sh"},
		},
		{
			name:    "no block",
			content: "Just text mentioning scripts: inline.\n",
			want:    map[string]string{},
		},
		{
			name:    "scripts line must start the line",
			content: "  scripts:\n  sh: a.sh\n",
			want:    map[string]string{},
		},
		{
			name:    "empty content",
			content: "",
			want:    map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractScripts(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractScripts() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSelectScript(t *testing.T) {
	scripts := map[string]string{"sh": "run.sh", "ps": ""}

	script, ok := SelectScript(scripts, "sh")
	if !ok || script != "run.sh" {
		t.Errorf("SelectScript(sh) = %q, %v", script, ok)
	}

	script, ok = SelectScript(scripts, "ps")
	if ok {
		t.Errorf("expected empty ps value to report missing")
	}
	if script != "(Missing ps script)" {
		t.Errorf("stub = %q, want %q", script, "(Missing ps script)")
	}

	script, ok = SelectScript(nil, "sh")
	if ok || script != "(Missing sh script)" {
		t.Errorf("SelectScript(nil) = %q, %v", script, ok)
	}
}
