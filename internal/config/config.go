// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/tidepad/internal/encoding"
	"github.com/bethropolis/tidepad/internal/logger"
	"github.com/bethropolis/tidepad/internal/recents"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config `toml:"logger"`
	Editor  EditorConfig  `toml:"editor"`
	Recents RecentsConfig `toml:"recents"`
	Plugins PluginsConfig `toml:"plugins"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int      `toml:"tab_width"`
	SystemClipboard bool     `toml:"system_clipboard"`
	StatusBarHeight int      `toml:"status_bar_height"`
	DefaultEncoding string   `toml:"default_encoding"`
	Encodings       []string `toml:"encodings"`
	// FilesNotAllowed lists extensions the file picker refuses to open.
	FilesNotAllowed []string `toml:"files_not_allowed"`
	// Theme is the path of a TOML theme file layered over the built-in one.
	Theme string `toml:"theme"`
}

// RecentsConfig controls the "open recent" history.
type RecentsConfig struct {
	MaxEntries  int    `toml:"max_entries"`
	LabelBudget int    `toml:"label_budget"`
	Backend     string `toml:"backend"` // toml or sqlite
	Path        string `toml:"path"`    // empty means next to the config file
}

// PluginsConfig holds per-plugin settings.
type PluginsConfig struct {
	Autosave AutosaveConfig `toml:"autosave"`
}

// AutosaveConfig controls the autosave plugin. Interval is a duration
// string such as "30s".
type AutosaveConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
}

// Duration is a time.Duration read from and written as a TOML string.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "", // Empty means default path logic in logger.Init applies
		},
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
			DefaultEncoding: encoding.Default,
			Encodings:       slices.Clone(encoding.Names),
			FilesNotAllowed: []string{"zip", "rar", "7z", "apk", "exe", "jpg", "jpeg", "png", "gif", "pdf", "mp3", "mp4"},
		},
		Recents: RecentsConfig{
			MaxEntries:  recents.DefaultMaxEntries,
			LabelBudget: recents.DefaultLabelBudget,
			Backend:     RecentsBackendTOML,
		},
		Plugins: PluginsConfig{
			Autosave: AutosaveConfig{
				Enabled:  false,
				Interval: Duration(DefaultAutosaveInterval),
			},
		},
	}
}

// DefaultDir returns the directory holding the config file, or "" when the
// user config dir is unknown.
func DefaultDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName)
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) (undecoded []string, err error) {
	_, err = os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}
	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	for _, key := range metadata.Undecoded() {
		undecoded = append(undecoded, key.String())
	}
	return undecoded, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	if !encoding.Supported(c.Editor.DefaultEncoding) {
		c.Editor.DefaultEncoding = defaults.Editor.DefaultEncoding
	}
	// Drop codecs the platform cannot decode so the picker never offers them.
	c.Editor.Encodings = slices.DeleteFunc(c.Editor.Encodings, func(name string) bool {
		return !encoding.Supported(name)
	})
	if len(c.Editor.Encodings) == 0 {
		c.Editor.Encodings = defaults.Editor.Encodings
	}

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}

	if c.Recents.MaxEntries <= 0 {
		c.Recents.MaxEntries = defaults.Recents.MaxEntries
	}
	if c.Recents.LabelBudget <= len("...") {
		c.Recents.LabelBudget = defaults.Recents.LabelBudget
	}
	if time.Duration(c.Plugins.Autosave.Interval) < time.Second {
		c.Plugins.Autosave.Interval = defaults.Plugins.Autosave.Interval
	}

	switch c.Recents.Backend {
	case RecentsBackendTOML, RecentsBackendSQLite:
	default:
		c.Recents.Backend = defaults.Recents.Backend
	}
}

// RecentsPath returns where the recents store lives.
func (c *Config) RecentsPath() string {
	if c.Recents.Path != "" {
		return c.Recents.Path
	}
	name := DefaultRecentsFileName
	if c.Recents.Backend == RecentsBackendSQLite {
		name = DefaultRecentsDBName
	}
	dir := DefaultDir()
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, name)
}

// Load builds the configuration: defaults, then the TOML file, then flag
// overrides, then validation. Keys the file sets but the config does not know
// are returned so the caller can log them once the logger is up.
func Load(configFilePath string, flags *Flags) (*Config, []string, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		if dir := DefaultDir(); dir != "" {
			effectivePath = filepath.Join(dir, DefaultConfigFileName)
		}
	}

	var (
		undecoded []string
		loadErr   error
	)
	if effectivePath != "" {
		undecoded, loadErr = loadFromFile(effectivePath, cfg)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, undecoded, loadErr
}
