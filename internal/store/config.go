package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"trail-cli/internal/model"
)

// LoadConfig reads and parses trail/project.toml. Keys absent from the
// file keep their defaults, so a minimal config stays minimal on disk.
func LoadConfig(root string) (model.ProjectConfig, error) {
	b, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return model.ProjectConfig{}, err
	}
	cfg := model.DefaultConfig("")
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return model.ProjectConfig{}, fmt.Errorf("parse %s: %w", configName, err)
	}
	if cfg.IDs.Prefixes == nil {
		cfg.IDs.Prefixes = map[string]string{}
	}
	return cfg, nil
}

// SaveConfig writes trail/project.toml in the canonical layout.
func SaveConfig(root string, cfg model.ProjectConfig) error {
	b, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	dir := TrailDir(root)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return atomicWriteFile(dir, configName+".*.tmp", ConfigPath(root), b, 0o644)
}

// GlobalConfig holds per-user tool preferences from ~/.trail/config.toml.
type GlobalConfig struct {
	Defaults DefaultsConfig  `toml:"defaults"`
	TUI      GlobalTUIConfig `toml:"tui"`
}

// DefaultsConfig sets fallbacks for flags every command accepts.
type DefaultsConfig struct {
	// Format is the output format used when --format is not given
	// ("text" or "json").
	Format string `toml:"format,omitempty"`
	Pretty bool   `toml:"pretty,omitempty"`
}

type GlobalTUIConfig struct {
	// Theme selects the color scheme ("auto", "dark", "light").
	Theme string `toml:"theme,omitempty"`
}

func globalConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadGlobalConfig reads the per-user config; a missing file yields the
// zero config.
func LoadGlobalConfig() (*GlobalConfig, error) {
	path, err := globalConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config.toml: %w", err)
	}
	return &cfg, nil
}

// SaveGlobalConfig writes the per-user config.
func SaveGlobalConfig(cfg *GlobalConfig) error {
	path, err := globalConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "config.toml.*.tmp", path, b, 0o600)
}
