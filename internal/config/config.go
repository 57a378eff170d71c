// Package config loads tracker configuration from YAML, with defaults that
// match a stock Elite Dangerous install. Command-line flags override file
// values at the call site.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/djglass/ed-colony-construction-tracker/internal/progress"
)

// Config holds all tracker configuration.
type Config struct {
	// JournalDir is where the game writes Journal*.log files.
	JournalDir string `yaml:"journal_dir"`

	// Filter is the startup filter mode: all, incomplete or complete.
	// Anything else is treated as all.
	Filter string `yaml:"filter"`

	OCR   OCRConfig   `yaml:"ocr"`
	Watch WatchConfig `yaml:"watch"`
}

// OCRConfig configures the recognition engine.
type OCRConfig struct {
	// Binary is the tesseract executable; empty means "tesseract" on PATH.
	Binary string `yaml:"binary"`
	// Args are extra engine flags, e.g. ["--psm", "6"].
	Args []string `yaml:"args"`
}

// WatchConfig configures live journal watching.
type WatchConfig struct {
	Enabled bool `yaml:"enabled"`
	// Debounce is how long journal writes must settle before a rescan,
	// as a Go duration string.
	Debounce string `yaml:"debounce"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		JournalDir: DefaultJournalDir(),
		Filter:     string(progress.FilterAll),
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: "500ms",
		},
	}
}

// DefaultJournalDir is the game's journal location relative to the user's
// home directory. The layout is the same under Proton prefixes, which is why
// it is not gated on the OS.
func DefaultJournalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Saved Games", "Frontier Developments", "Elite Dangerous")
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "colonytracker", "config.yaml")
}

// Load reads the configuration at path, or at DefaultPath when path is empty.
// A missing file yields the defaults; a malformed one is an error.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the fields that cannot fail lazily.
func (c Config) Validate() error {
	if c.Watch.Debounce != "" {
		if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
			return fmt.Errorf("watch.debounce: %w", err)
		}
	}
	return nil
}

// DebounceDuration returns the parsed watch debounce, falling back to the
// default when unset.
func (c Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}
