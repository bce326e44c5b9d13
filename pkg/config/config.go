// Package config handles loading drillist demo configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/drillist/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/drillist/pkg/listview"
)

// ThemeConfig holds row color overrides as hex strings. Empty fields keep
// the stock color.
type ThemeConfig struct {
	Upward   string `yaml:"upward,omitempty"`
	Root     string `yaml:"root,omitempty"`
	Current  string `yaml:"current,omitempty"`
	Downward string `yaml:"downward,omitempty"`
	Detail   string `yaml:"detail,omitempty"`
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	RowHeight int         `yaml:"row_height,omitempty"` // Lines per row (default 1)
	Theme     ThemeConfig `yaml:"theme,omitempty"`
}

// Config is the top-level configuration for the drillist demo.
type Config struct {
	UI UIConfig `yaml:"ui,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{RowHeight: 1},
	}
}

// ConfigDir returns the XDG config directory for drillist.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "drillist")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "drillist")
}

// DefaultPath returns the default config file path, or "" if no home
// directory is resolvable.
func DefaultPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from the given file. A missing file is not an
// error: defaults are returned. A present but malformed file is an error, so
// typos do not silently fall back to defaults.
func Load(file string) (Config, error) {
	cfg := DefaultConfig()
	if file == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", file, err)
	}
	if cfg.UI.RowHeight < 1 {
		cfg.UI.RowHeight = 1
	}
	return cfg, nil
}

// Theme materializes the configured colors over the stock listview theme.
func (c Config) Theme() listview.Theme {
	t := listview.DefaultTheme()
	if hex := c.UI.Theme.Upward; hex != "" {
		t.Upward = t.Upward.Foreground(lipgloss.Color(hex))
	}
	if hex := c.UI.Theme.Root; hex != "" {
		t.Root = t.Root.Foreground(lipgloss.Color(hex))
	}
	if hex := c.UI.Theme.Current; hex != "" {
		t.Current = t.Current.Foreground(lipgloss.Color(hex))
	}
	if hex := c.UI.Theme.Downward; hex != "" {
		t.Downward = t.Downward.Foreground(lipgloss.Color(hex))
	}
	if hex := c.UI.Theme.Detail; hex != "" {
		t.Detail = t.Detail.Foreground(lipgloss.Color(hex))
	}
	return t
}
