package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scribe/internal/errors"
	"scribe/internal/log"

	"gopkg.in/yaml.v3"
)

// Names of the documents kept in the data directory.
const (
	RecentFilesDocument    = "recent-files.json"
	PreferencesDocument    = "preferences.json"
	FormatMappingsDocument = "format-mappings.json"
	appDirName             = "scribe"
)

// Config represents the application configuration structure.
// It defines window geometry, editor defaults, storage and logging.
type Config struct {
	Window struct {
		Width     int `yaml:"width"`      // Initial window width
		Height    int `yaml:"height"`     // Initial window height
		MinWidth  int `yaml:"min_width"`  // Smallest width the window may shrink to
		MinHeight int `yaml:"min_height"` // Smallest height the window may shrink to
	} `yaml:"window"`
	Editor struct {
		FontSize     int    `yaml:"font_size"`     // Editor font size in points
		TabSize      int    `yaml:"tab_size"`      // Columns per tab stop
		InsertSpaces bool   `yaml:"insert_spaces"` // Insert spaces instead of tabs
		WordWrap     bool   `yaml:"word_wrap"`     // Wrap long lines
		Theme        string `yaml:"theme"`         // dark or light
	} `yaml:"editor"`
	Storage struct {
		Dir string `yaml:"dir"` // Directory holding recent files, preferences and format mappings
	} `yaml:"storage"`
	Watch struct {
		Enabled bool `yaml:"enabled"` // Reload or flag the open file when it changes on disk
	} `yaml:"watch"`
	Logging struct {
		Level string `yaml:"level"` // debug, info, warn or error
		JSON  bool   `yaml:"json"`  // Emit JSON lines
		File  string `yaml:"file"`  // Optional log file
	} `yaml:"logging"`
}

// DefaultDir returns the per-user configuration directory for scribe.
func DefaultDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+appDirName)
	}
	return filepath.Join(home, ".config", appDirName)
}

// DefaultPath returns the default config file location
// (~/.config/scribe/config.yaml on Linux).
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	return LoadConfigFile(DefaultPath())
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// Decoding onto the defaults keeps every field the file leaves out.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Window.Width = 1200
	cfg.Window.Height = 800
	cfg.Window.MinWidth = 600
	cfg.Window.MinHeight = 400

	cfg.Editor.FontSize = 14
	cfg.Editor.TabSize = 4
	cfg.Editor.InsertSpaces = true
	cfg.Editor.WordWrap = false
	cfg.Editor.Theme = "dark"

	cfg.Storage.Dir = "" // resolved by DataDir

	cfg.Watch.Enabled = true

	cfg.Logging.Level = "info"

	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.NewConfigError("window size must be positive", "window", errors.InvalidConfig, nil)
	}
	if c.Window.MinWidth < 0 || c.Window.MinHeight < 0 {
		return errors.NewConfigError("minimum window size must not be negative", "window", errors.InvalidConfig, nil)
	}
	if c.Window.MinWidth > c.Window.Width || c.Window.MinHeight > c.Window.Height {
		return errors.NewConfigError("minimum window size exceeds window size", "window", errors.InvalidConfig, nil)
	}

	if c.Editor.FontSize <= 0 {
		return errors.NewConfigError("font size must be positive", "editor.font_size", errors.InvalidConfig, nil)
	}
	if c.Editor.TabSize <= 0 || c.Editor.TabSize > 16 {
		return errors.NewConfigError("tab size must be between 1 and 16", "editor.tab_size", errors.InvalidConfig, nil)
	}
	switch c.Editor.Theme {
	case "dark", "light":
	default:
		return errors.NewConfigError(fmt.Sprintf("unknown theme %q", c.Editor.Theme), "editor.theme", errors.InvalidConfig, nil)
	}

	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return errors.NewConfigError(fmt.Sprintf("unknown log level %q", c.Logging.Level), "logging.level", errors.InvalidConfig, err)
	}

	return nil
}

// DataDir returns the directory holding the persisted JSON documents.
func (c *Config) DataDir() string {
	if dir := strings.TrimSpace(c.Storage.Dir); dir != "" {
		return expandHome(dir)
	}
	return DefaultDir()
}

// RecentFilesPath returns the path of the recent-files document.
func (c *Config) RecentFilesPath() string {
	return filepath.Join(c.DataDir(), RecentFilesDocument)
}

// PreferencesPath returns the path of the preferences document.
func (c *Config) PreferencesPath() string {
	return filepath.Join(c.DataDir(), PreferencesDocument)
}

// FormatMappingsPath returns the path of the format-mappings document.
func (c *Config) FormatMappingsPath() string {
	return filepath.Join(c.DataDir(), FormatMappingsDocument)
}

// DocumentPaths locates the three persisted JSON documents.
type DocumentPaths struct {
	RecentFiles    string
	Preferences    string
	FormatMappings string
}

// Paths returns the locations of the persisted documents.
func (c *Config) Paths() DocumentPaths {
	return DocumentPaths{
		RecentFiles:    c.RecentFilesPath(),
		Preferences:    c.PreferencesPath(),
		FormatMappings: c.FormatMappingsPath(),
	}
}

// LogOptions turns the logging section into logger options.
func (c *Config) LogOptions() []log.Option {
	opts := []log.Option{log.WithLevel(c.Logging.Level)}
	if c.Logging.JSON {
		opts = append(opts, log.WithJSON())
	}
	if c.Logging.File != "" {
		opts = append(opts, log.WithFile(expandHome(c.Logging.File)))
	}
	return opts
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
