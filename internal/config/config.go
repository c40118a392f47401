// Package config loads the optional TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the resolved settings the app runs with.
type Config struct {
	Categories     []string
	DefaultHours   int
	DefaultMinutes int
}

// fileConfig maps the TOML file. Pointer fields distinguish "absent" from
// an explicit zero.
type fileConfig struct {
	Categories     []string `toml:"categories"`
	DefaultHours   *int     `toml:"default_hours"`
	DefaultMinutes *int     `toml:"default_minutes"`
}

// Default returns the built-in settings used when no config file exists.
func Default() Config {
	return Config{
		Categories:     []string{"Studying", "Coding", "Design", "Reading", "Exercise"},
		DefaultHours:   0,
		DefaultMinutes: 25,
	}
}

// Load reads the TOML config at path and applies it over the defaults.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("stat config: %w", err)
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}

	if len(fc.Categories) > 0 {
		cfg.Categories = fc.Categories
	}
	if fc.DefaultHours != nil {
		cfg.DefaultHours = *fc.DefaultHours
	}
	if fc.DefaultMinutes != nil {
		cfg.DefaultMinutes = *fc.DefaultMinutes
	}
	return cfg, nil
}

// DefaultPath returns ~/.config/odak/config.toml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "odak", "config.toml"), nil
}
