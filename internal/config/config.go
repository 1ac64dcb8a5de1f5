// Package config loads installation settings from a TOML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Environment variables that override the config file.
const (
	EnvConfigPath           = "QRIS_CONFIG"
	EnvSharedProtocolFolder = "QRIS_SHARED_PROTOCOL_FOLDER"
	EnvSettingsDB           = "QRIS_SETTINGS_DB"
	EnvLogLevel             = "QRIS_LOG_LEVEL"
)

// DefaultLogLevel is used when neither the file nor the environment sets one.
const DefaultLogLevel = "warn"

// Config represents the effective qris configuration.
type Config struct {
	SharedProtocolFolder string // installation-shared protocol folder
	SettingsDB           string // path of the preference database
	LogLevel             string // debug, info, warn, error or off
}

// config.toml key mapping.
type fileConfig struct {
	SharedProtocolFolder string `toml:"shared_protocol_folder"`
	SettingsDB           string `toml:"settings_db"`
	LogLevel             string `toml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() (*Config, error) {
	dir, err := homeDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		SharedProtocolFolder: filepath.Join(dir, "protocols"),
		SettingsDB:           filepath.Join(dir, "settings.db"),
		LogLevel:             DefaultLogLevel,
	}, nil
}

// DefaultPath returns $QRIS_CONFIG, or ~/.qris/config.toml when unset.
func DefaultPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	dir, err := homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the TOML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	default:
		if meta.IsDefined("shared_protocol_folder") {
			cfg.SharedProtocolFolder = expandHome(strings.TrimSpace(raw.SharedProtocolFolder))
		}
		if meta.IsDefined("settings_db") {
			cfg.SettingsDB = expandHome(strings.TrimSpace(raw.SettingsDB))
		}
		if meta.IsDefined("log_level") {
			cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvSharedProtocolFolder)); v != "" {
		cfg.SharedProtocolFolder = expandHome(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvSettingsDB)); v != "" {
		cfg.SettingsDB = expandHome(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
}

func homeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".qris"), nil
}

// expandHome replaces a leading ~/ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
