package cli

import (
	"encoding/json"
	"testing"
)

func TestEnvsCommandJSONOutput(t *testing.T) {
	prevJSON := jsonOutput
	jsonOutput = true
	t.Cleanup(func() { jsonOutput = prevJSON })

	out := captureStdout(t, func() {
		if err := envsCmd.RunE(envsCmd, nil); err != nil {
			t.Errorf("envs failed: %v", err)
		}
	})

	type envRow struct {
		ID      string `json:"id"`
		Folder  string `json:"folder"`
		Format  string `json:"format"`
		AliasOf string `json:"alias_of"`
	}
	var resp struct {
		OK   bool     `json:"ok"`
		Data []envRow `json:"data"`
		Meta struct {
			Count int `json:"count"`
		} `json:"meta"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if !resp.OK {
		t.Fatal("expected ok=true")
	}
	if len(resp.Data) == 0 || resp.Meta.Count != len(resp.Data) {
		t.Fatalf("count = %d, environments = %d", resp.Meta.Count, len(resp.Data))
	}

	byID := make(map[string]envRow, len(resp.Data))
	for _, row := range resp.Data {
		byID[row.ID] = row
	}

	cursor, ok := byID["cursor"]
	if !ok {
		t.Fatal("cursor environment missing")
	}
	if cursor.AliasOf != "cursor-agent" {
		t.Errorf("cursor alias_of = %q, want %q", cursor.AliasOf, "cursor-agent")
	}
	if cursor.Folder != ".cursor/commands" {
		t.Errorf("cursor folder = %q, want %q", cursor.Folder, ".cursor/commands")
	}
	if got := byID["gemini"].Format; got != "toml" {
		t.Errorf("gemini format = %q, want %q", got, "toml")
	}
	if got := byID["claude"].Format; got != "markdown" {
		t.Errorf("claude format = %q, want %q", got, "markdown")
	}
}
