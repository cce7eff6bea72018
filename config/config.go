// Package config provides configuration management for Save State.
// It handles loading, saving, and validating application settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/yllada/save-state/common"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
// All settings are persisted to a YAML file in the user's config directory.
type Config struct {
	// StateFile is the XML state document. Relative paths resolve against
	// the working directory.
	StateFile string `yaml:"state_file"`
	// LayoutFile is the GtkBuilder layout; the embedded layout is used when
	// the file does not exist.
	LayoutFile string `yaml:"layout_file"`
	// WatchStateFile reloads the toggles when another process edits the state file.
	WatchStateFile bool `yaml:"watch_state_file"`
	// RecordHistory journals every state transition.
	RecordHistory bool `yaml:"record_history"`
	// ShowNotifications enables desktop notifications on state changes.
	ShowNotifications bool `yaml:"show_notifications"`
	// ShowTray shows the system tray indicator.
	ShowTray bool `yaml:"show_tray"`
	// Theme sets the color theme: "light", "dark", or "auto".
	Theme string `yaml:"theme"`
	// WindowWidth and WindowHeight are the default window size.
	WindowWidth  int `yaml:"window_width"`
	WindowHeight int `yaml:"window_height"`

	path string
	// fallback marks defaults used in place of an unreadable file.
	fallback bool
	// Command-line overrides; never written back.
	stateOverride  string
	layoutOverride string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		StateFile:         common.StateFileName,
		LayoutFile:        common.LayoutFileName,
		WatchStateFile:    true,
		RecordHistory:     true,
		ShowNotifications: false,
		ShowTray:          false,
		Theme:             common.ThemeAuto,
		WindowWidth:       common.DefaultWindowWidth,
		WindowHeight:      common.DefaultWindowHeight,
	}
}

// Fallback returns the default configuration for use when the config file
// could not be loaded. Save refuses to write it so the unreadable file is
// left for the user to fix.
func Fallback() *Config {
	cfg := DefaultConfig()
	cfg.fallback = true
	return cfg
}

// Load loads the configuration from the default config file.
// If the file doesn't exist, it creates one with default values.
func Load() (*Config, error) {
	configPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(configPath)
}

// LoadFile loads the configuration from configPath, creating it with
// defaults when missing.
func LoadFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.path = configPath
		if err := cfg.Save(); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfigLoad, err)
	}
	defer file.Close()

	// Absent keys keep their defaults.
	config := DefaultConfig()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: parse %s: %w", common.ErrConfigLoad, configPath, err)
	}

	config.validate()
	config.path = configPath
	return config, nil
}

// validate replaces out-of-range values with defaults.
func (c *Config) validate() {
	defaults := DefaultConfig()

	switch c.Theme {
	case common.ThemeAuto, common.ThemeLight, common.ThemeDark:
	default:
		c.Theme = defaults.Theme
	}

	if c.StateFile == "" {
		c.StateFile = defaults.StateFile
	}
	if c.WindowWidth < common.MinWindowWidth {
		c.WindowWidth = defaults.WindowWidth
	}
	if c.WindowHeight < common.MinWindowHeight {
		c.WindowHeight = defaults.WindowHeight
	}
}

// Override sets session-only state and layout paths. Empty values keep the
// configured ones.
func (c *Config) Override(stateFile, layoutFile string) {
	c.stateOverride = stateFile
	c.layoutOverride = layoutFile
}

// EffectiveStateFile returns the state file in use for this session.
func (c *Config) EffectiveStateFile() string {
	if c.stateOverride != "" {
		return c.stateOverride
	}
	return c.StateFile
}

// EffectiveLayoutFile returns the layout file in use for this session.
func (c *Config) EffectiveLayoutFile() string {
	if c.layoutOverride != "" {
		return c.layoutOverride
	}
	return c.LayoutFile
}

// IsFallback reports whether c stands in for a config file that could not
// be loaded.
func (c *Config) IsFallback() bool {
	return c.fallback
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration back to the file it was loaded from, or to
// the default location.
func (c *Config) Save() error {
	if c.fallback {
		return fmt.Errorf("%w: %w", common.ErrConfigSave, common.ErrConfigFallback)
	}

	configPath := c.path
	if configPath == "" {
		var err error
		if configPath, err = DefaultPath(); err != nil {
			return err
		}
		c.path = configPath
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("%w: create config directory: %w", common.ErrConfigSave, err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("%w: serialize: %w", common.ErrConfigSave, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: serialize: %w", common.ErrConfigSave, err)
	}

	if err := renameio.WriteFile(configPath, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("%w: %w", common.ErrConfigSave, err)
	}

	return nil
}

// DefaultPath returns ~/.config/save-state/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", common.ConfigDirName, common.ConfigFileName), nil
}

// HistoryPath returns the journal database path in the data directory.
func HistoryPath() (string, error) {
	dataDir, err := common.GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, common.HistoryFileName), nil
}
