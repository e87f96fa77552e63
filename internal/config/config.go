// Package config loads folio's TOML configuration file.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds application configuration.
type Config struct {
	// Source is the gallery document: a local .json/.yaml/.yml path or an http(s) URL.
	Source string `toml:"source"`

	// Title replaces "Work" when the document has no title.
	Title string `toml:"title"`

	// Addr is the listen address for `folio serve`.
	Addr string `toml:"addr"`

	// Compact starts the gallery in compact view.
	Compact bool `toml:"compact"`

	// MarkdownNotes renders item notes as sanitized Markdown in HTML output.
	MarkdownNotes bool `toml:"markdown_notes"`

	// FetchTimeoutSeconds bounds remote document fetches.
	FetchTimeoutSeconds int `toml:"fetch_timeout_seconds"`

	// Suggestions is how many "did you mean" titles to offer on an empty result.
	Suggestions int `toml:"suggestions"`

	Check CheckConfig `toml:"check"`
}

// CheckConfig tunes `folio check`.
type CheckConfig struct {
	Concurrency    int `toml:"concurrency"`
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Source:              "data.json",
		Title:               "Work",
		Addr:                ":8080",
		FetchTimeoutSeconds: 10,
		Suggestions:         3,
		Check: CheckConfig{
			Concurrency:    8,
			TimeoutSeconds: 10,
		},
	}
}

// LoadConfig reads config from the TOML file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: defaults still apply if the file can't be written
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, err
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Fields explicitly zeroed in the file fall back to defaults
	defaults := DefaultConfig()
	if config.Source == "" {
		config.Source = defaults.Source
	}
	if config.Title == "" {
		config.Title = defaults.Title
	}
	if config.Addr == "" {
		config.Addr = defaults.Addr
	}
	if config.FetchTimeoutSeconds <= 0 {
		config.FetchTimeoutSeconds = defaults.FetchTimeoutSeconds
	}
	if config.Suggestions < 0 {
		config.Suggestions = 0
	}
	if config.Check.Concurrency <= 0 {
		config.Check.Concurrency = defaults.Check.Concurrency
	}
	if config.Check.TimeoutSeconds <= 0 {
		config.Check.TimeoutSeconds = defaults.Check.TimeoutSeconds
	}

	return &config, nil
}

// SaveConfig writes config to the TOML file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfigFilePath returns the default config path: ~/.config/folio/config.toml
func DefaultConfigFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "folio", "config.toml"), nil
}
