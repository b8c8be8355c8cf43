package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the optional machine-level configuration read from
// config.toml. It covers where data lives on this device; user-facing
// preferences (notification time, voice) live in the store's settings
// singleton instead.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Backups  BackupsConfig  `toml:"backups"`
	Export   ExportConfig   `toml:"export"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type BackupsConfig struct {
	Keep int `toml:"keep"`
}

type ExportConfig struct {
	Dir string `toml:"dir"`
}

// DefaultKeep is the backup retention used when the config is absent.
const DefaultKeep = 14

// Dir returns the clara config directory for this user.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(base, "clara"), nil
}

// DefaultPath returns the expected location of config.toml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Default builds the configuration used when no config file exists.
func Default() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Database: DatabaseConfig{Path: filepath.Join(dir, "clara.db")},
		Backups:  BackupsConfig{Keep: DefaultKeep},
		Export:   ExportConfig{Dir: filepath.Join(dir, "exports")},
	}, nil
}

// Load reads the config file at path, falling back to defaults for a
// missing file and for any field left unset.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	var fileCfg Config
	if _, err := toml.DecodeFile(path, &fileCfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if fileCfg.Database.Path != "" {
		cfg.Database.Path = fileCfg.Database.Path
	}
	if fileCfg.Backups.Keep > 0 {
		cfg.Backups.Keep = fileCfg.Backups.Keep
	}
	if fileCfg.Export.Dir != "" {
		cfg.Export.Dir = fileCfg.Export.Dir
	}
	return cfg, nil
}
