package builder

import (
	"reflect"
	"testing"

	"github.com/t59688/novel-kit/internal/testutil"
)

func TestLoadBuildConfigMissing(t *testing.T) {
	tree := testutil.NewSourceTree(t).Build()

	cfg, err := LoadBuildConfig(tree.Path)
	if err != nil {
		t.Fatalf("LoadBuildConfig() error: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultBuildConfig()) {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadBuildConfig(t *testing.T) {
	tests := []struct {
		name string
		json string
		want BuildConfig
	}{
		{
			name: "both keys",
			json: `{"supported_ais": ["claude", "gemini"], "supported_platforms": ["linux"]}`,
			want: BuildConfig{AIs: []string{"claude", "gemini"}, Platforms: []string{"linux"}},
		},
		{
			name: "missing platforms keeps default",
			json: `{"supported_ais": ["claude"]}`,
			want: BuildConfig{AIs: []string{"claude"}, Platforms: []string{"linux", "win"}},
		},
		{
			name: "empty list honored",
			json: `{"supported_ais": []}`,
			want: BuildConfig{AIs: []string{}, Platforms: []string{"linux", "win"}},
		},
		{
			name: "duplicates removed",
			json: `{"supported_ais": ["claude", "claude", "gemini"]}`,
			want: BuildConfig{AIs: []string{"claude", "gemini"}, Platforms: []string{"linux", "win"}},
		},
		{
			name: "empty object keeps defaults",
			json: `{}`,
			want: DefaultBuildConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := testutil.NewSourceTree(t).
				WithFile("build-config.json", tt.json).
				Build()

			cfg, err := LoadBuildConfig(tree.Path)
			if err != nil {
				t.Fatalf("LoadBuildConfig() error: %v", err)
			}
			if !reflect.DeepEqual(cfg, tt.want) {
				t.Errorf("cfg = %+v, want %+v", cfg, tt.want)
			}
		})
	}
}

func TestLoadBuildConfigMalformed(t *testing.T) {
	tree := testutil.NewSourceTree(t).
		WithFile("build-config.json", `{"supported_ais": [`).
		Build()

	if _, err := LoadBuildConfig(tree.Path); err == nil {
		t.Error("expected parse error for malformed JSON")
	}
}
