package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	path, err := GlobalConfigPath()
	if err != nil {
		t.Fatalf("GlobalConfigPath() error = %v", err)
	}
	want := "/custom/config/bookmarker/config.yml"
	if path != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", path, want)
	}
}

func TestLoadGlobalConfig_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := LoadGlobalConfig(path)
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadGlobalConfig() returned nil")
	}

	// Should return defaults
	if cfg.StorePath != "" {
		t.Errorf("StorePath = %q, want empty", cfg.StorePath)
	}
	if cfg.TopCount != DefaultTopCount {
		t.Errorf("TopCount = %d, want %d", cfg.TopCount, DefaultTopCount)
	}
}

func TestLoadGlobalConfig_WithValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `store_path: /data/marks.json
top_count: 8
wrap_width: 100
copy_on_quick: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGlobalConfig(path)
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.StorePath != "/data/marks.json" {
		t.Errorf("StorePath = %q, want %q", cfg.StorePath, "/data/marks.json")
	}
	if cfg.TopCount != 8 {
		t.Errorf("TopCount = %d, want 8", cfg.TopCount)
	}
	if cfg.WrapWidth != 100 {
		t.Errorf("WrapWidth = %d, want 100", cfg.WrapWidth)
	}
	if !cfg.CopyOnQuick {
		t.Error("CopyOnQuick = false, want true")
	}
}

func TestLoadGlobalConfig_TildeExpansion(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("store_path: ~/marks.json\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGlobalConfig(path)
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if want := filepath.Join(home, "marks.json"); cfg.StorePath != want {
		t.Errorf("StorePath = %q, want %q", cfg.StorePath, want)
	}
}

func TestLoadGlobalConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("top_count: [not, a, number"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadGlobalConfig(path); err == nil {
		t.Error("LoadGlobalConfig() expected error for malformed YAML")
	}
}

func TestGlobalConfig_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")

	orig := &GlobalConfig{TopCount: 3, WrapWidth: 60}
	if err := orig.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := LoadGlobalConfig(path)
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if got.TopCount != 3 || got.WrapWidth != 60 {
		t.Errorf("round trip = %+v, want TopCount=3 WrapWidth=60", got)
	}
}

func TestGlobalConfig_GetSet(t *testing.T) {
	cfg := &GlobalConfig{TopCount: DefaultTopCount}

	tests := []struct {
		key     string
		value   string
		want    string
		wantErr bool
	}{
		{key: "top-count", value: "7", want: "7"},
		{key: "TOP_COUNT", value: "3", want: "3"},
		{key: "top-count", value: "0", wantErr: true},
		{key: "top-count", value: "many", wantErr: true},
		{key: "wrap-width", value: "0", want: "0"},
		{key: "wrap-width", value: "120", want: "120"},
		{key: "wrap-width", value: "-1", wantErr: true},
		{key: "copy-on-quick", value: "true", want: "true"},
		{key: "copy-on-quick", value: "maybe", wantErr: true},
		{key: "store-path", value: "/data/marks.json", want: "/data/marks.json"},
		{key: "color", value: "red", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			err := cfg.Set(tt.key, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Set(%q, %q) expected error", tt.key, tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set(%q, %q) error = %v", tt.key, tt.value, err)
			}
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestGlobalConfig_GetUnknown(t *testing.T) {
	cfg := &GlobalConfig{}
	if _, err := cfg.Get("nope"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Get(nope) error = %v, want ErrUnknownKey", err)
	}
}
