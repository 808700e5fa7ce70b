// Package config defines the slate configuration schema and its validation
// rules. Loading and precedence (file, SLATE_* env vars, flags) are handled
// by viper in the CLI layer; this package only owns the decoded shape.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dedup scopes for the history store.
const (
	DedupHead    = "head"    // suppress only re-captures of the current head entry
	DedupHistory = "history" // an equal entry anywhere in history is moved to the front
)

// Active-window backend kinds.
const (
	WindowAuto     = "auto"
	WindowDisabled = "disabled"
	WindowCommand  = "command"
)

// DefaultMaxEntries is the history capacity used when none is configured.
const DefaultMaxEntries = 50

// Config is the full slate configuration.
type Config struct {
	History      History      `mapstructure:"history"`
	ActiveWindow ActiveWindow `mapstructure:"active_window"`
}

// History configures the persistent clipboard history store.
type History struct {
	// Path of the history JSON file. Empty means the per-user default
	// under the OS cache directory.
	Path       string `mapstructure:"path"`
	MaxEntries int    `mapstructure:"max_entries"`
	Dedup      string `mapstructure:"dedup"`
}

// ActiveWindow configures the focused-window metadata probe and the
// capture blacklist evaluated against its output.
type ActiveWindow struct {
	Backend   string   `mapstructure:"backend"`
	Command   string   `mapstructure:"command"`
	Args      []string `mapstructure:"args"`
	Blacklist []string `mapstructure:"blacklist"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		History: History{
			MaxEntries: DefaultMaxEntries,
			Dedup:      DedupHead,
		},
		ActiveWindow: ActiveWindow{
			Backend: WindowAuto,
		},
	}
}

// Validate checks the configuration and returns a descriptive error for the
// first problem found.
func (c *Config) Validate() error {
	if c.History.MaxEntries <= 0 {
		return fmt.Errorf("history.max_entries must be positive, got %d", c.History.MaxEntries)
	}
	switch c.History.Dedup {
	case DedupHead, DedupHistory:
	default:
		return fmt.Errorf("history.dedup must be %q or %q, got %q", DedupHead, DedupHistory, c.History.Dedup)
	}
	switch c.ActiveWindow.Backend {
	case WindowAuto, WindowDisabled:
	case WindowCommand:
		if strings.TrimSpace(c.ActiveWindow.Command) == "" {
			return fmt.Errorf("active_window.command cannot be empty when backend is %q", WindowCommand)
		}
	default:
		return fmt.Errorf("active_window.backend must be %q, %q or %q, got %q",
			WindowAuto, WindowDisabled, WindowCommand, c.ActiveWindow.Backend)
	}
	for i, entry := range c.ActiveWindow.Blacklist {
		if strings.TrimSpace(entry) == "" {
			return fmt.Errorf("active_window.blacklist[%d] cannot be empty", i)
		}
	}
	return nil
}

// HistoryPath returns the configured history file path, or the per-user
// default under the OS cache directory.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache directory: %w", err)
	}
	return filepath.Join(cache, "slate", "history.json"), nil
}
