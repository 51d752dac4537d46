package parser

import "testing"

func TestCommandName(t *testing.T) {
	tests := []struct {
		stem string
		want string
	}{
		{"writer-new", "novel.writer.new"},
		{"novel-setup", "novel.setup"},
		{"constitution-create", "novel.constitution.create"},
		{"writer-new.md", "novel.writer.new"},
		{"Writer-New.MD", "novel.Writer.New"},
		{"NOVEL-setup", "novel.setup"},
		{"plan", "novel.plan"},
		{"a--b", "novel.a.b"},
		{"-leading", "novel.leading"},
		{"trailing-", "novel.trailing"},
		{"", ""},
		{"novel-", "novel-"},
		{"---", "---"},
		{".md", ".md"},
	}

	for _, tt := range tests {
		t.Run(tt.stem, func(t *testing.T) {
			if got := CommandName(tt.stem); got != tt.want {
				t.Errorf("CommandName(%q) = %q, want %q", tt.stem, got, tt.want)
			}
		})
	}
}
