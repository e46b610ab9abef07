package store

import (
	"os"
	"path/filepath"
	"testing"

	"trail-cli/internal/model"
)

func TestConfigRoundTrip(t *testing.T) {
	root := t.TempDir()

	cfg := model.DefaultConfig("demo")
	cfg.Tracks = []model.TrackConfig{
		{ID: "effects", Name: "Effects", State: model.TrackStateActive, File: "tracks/effects.md"},
		{ID: "infra", Name: "Infra", State: model.TrackStateShelved, File: "tracks/infra.md"},
	}
	cfg.IDs.Prefixes["effects"] = "EFF"
	cfg.IDs.Prefixes["infra"] = "INF"
	cfg.Clean.DoneThreshold = 50

	if err := SaveConfig(root, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if got.Project.Name != "demo" {
		t.Errorf("expected project name demo; got %q", got.Project.Name)
	}
	if len(got.Tracks) != 2 || got.Tracks[0].ID != "effects" || got.Tracks[1].State != model.TrackStateShelved {
		t.Errorf("expected tracks preserved; got %+v", got.Tracks)
	}
	if got.IDs.Prefixes["infra"] != "INF" {
		t.Errorf("expected prefixes preserved; got %v", got.IDs.Prefixes)
	}
	if got.Clean.DoneThreshold != 50 {
		t.Errorf("expected done_threshold 50; got %d", got.Clean.DoneThreshold)
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(TrailDir(root), 0o755); err != nil {
		t.Fatal(err)
	}
	raw := "[project]\nname = \"bare\"\n"
	if err := os.WriteFile(ConfigPath(root), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Project.Name != "bare" {
		t.Errorf("expected name bare; got %q", cfg.Project.Name)
	}
	want := model.DefaultCleanConfig()
	if cfg.Clean != want {
		t.Errorf("expected clean defaults %+v; got %+v", want, cfg.Clean)
	}
	if cfg.IDs.Prefixes == nil {
		t.Error("expected prefixes map initialized")
	}
}

func TestLoadConfigPartialCleanSection(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(TrailDir(root), 0o755); err != nil {
		t.Fatal(err)
	}
	raw := "[project]\nname = \"p\"\n\n[clean]\ndone_threshold = 5\n"
	if err := os.WriteFile(ConfigPath(root), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Clean.DoneThreshold != 5 {
		t.Errorf("expected threshold 5; got %d", cfg.Clean.DoneThreshold)
	}
	if !cfg.Clean.AutoClean || cfg.Clean.DoneRetain != 10 {
		t.Errorf("expected untouched keys to keep defaults; got %+v", cfg.Clean)
	}
}

func TestLoadConfigRejectsBadTOML(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(TrailDir(root), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(root), []byte("[project\nname"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(root); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestGlobalConfigRoundTrip(t *testing.T) {
	t.Setenv("TRAIL_CONFIG_DIR", t.TempDir())

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig: %v", err)
	}
	if cfg.Defaults.Format != "" {
		t.Fatalf("expected zero config for missing file; got %+v", cfg)
	}

	cfg.Defaults.Format = "json"
	cfg.Defaults.Pretty = true
	cfg.TUI.Theme = "dark"
	if err := SaveGlobalConfig(cfg); err != nil {
		t.Fatalf("SaveGlobalConfig: %v", err)
	}

	got, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig: %v", err)
	}
	if got.Defaults.Format != "json" || !got.Defaults.Pretty || got.TUI.Theme != "dark" {
		t.Errorf("expected saved values back; got %+v", got)
	}

	dir, _ := ConfigDir()
	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Errorf("expected config.toml written: %v", err)
	}
}
