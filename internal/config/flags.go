// internal/config/flags.go
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bethropolis/tidepad/internal/logger"
)

// Flags holds values parsed from command-line flags.
type Flags struct {
	set *pflag.FlagSet

	ConfigFilePath  string
	LogLevel        string
	LogFilePath     string
	TabWidth        int
	EnableTags      []string
	DisableTags     []string
	EnablePkgs      []string
	DisablePkgs     []string
	SystemClipboard bool
	Encoding        string
	RecentsBackend  string
	RecentsPath     string
	Autosave        bool
}

// Define registers the flags on fs.
func (f *Flags) Define(fs *pflag.FlagSet) {
	f.set = fs
	fs.StringVarP(&f.ConfigFilePath, "config", "c", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	fs.StringVar(&f.LogLevel, "loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	fs.StringVar(&f.LogFilePath, "logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	fs.IntVar(&f.TabWidth, "tabwidth", 0, "Number of spaces per tab - Overrides config file")
	fs.StringSliceVar(&f.EnableTags, "log-tags", nil, "Comma-separated list of tags to enable")
	fs.StringSliceVar(&f.DisableTags, "log-disable-tags", nil, "Comma-separated list of tags to disable")
	fs.StringSliceVar(&f.EnablePkgs, "log-packages", nil, "Comma-separated list of packages to enable")
	fs.StringSliceVar(&f.DisablePkgs, "log-disable-packages", nil, "Comma-separated list of packages to disable")
	fs.BoolVar(&f.SystemClipboard, "system-clipboard", SystemClipboard, "Use system clipboard instead of internal clipboard")
	fs.StringVar(&f.Encoding, "encoding", "", "Encoding used to read files - Overrides config file")
	fs.StringVar(&f.RecentsBackend, "recents-backend", "", "Recents store backend (toml, sqlite)")
	fs.StringVar(&f.RecentsPath, "recents-path", "", "Path of the recents store")
	fs.BoolVar(&f.Autosave, "autosave", false, "Save modified files periodically")
}

// ApplyOverrides updates cfg with the flags that were actually set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.set == nil {
		return
	}
	// VisitAll with Changed rather than Visit: cobra parses persistent flags
	// through the command's merged set, so only the shared Flag records it.
	f.set.VisitAll(func(fl *pflag.Flag) {
		if !fl.Changed {
			return
		}
		logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != "" {
				cfg.Logger.LogLevel = f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = f.LogFilePath
		case "tabwidth":
			if f.TabWidth > 0 {
				cfg.Editor.TabWidth = f.TabWidth
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = f.SystemClipboard
		case "log-tags":
			cfg.Logger.EnabledTags = cleanList(f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = cleanList(f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = cleanList(f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = cleanList(f.DisablePkgs)
		case "encoding":
			cfg.Editor.DefaultEncoding = f.Encoding
		case "recents-backend":
			cfg.Recents.Backend = strings.ToLower(f.RecentsBackend)
		case "recents-path":
			cfg.Recents.Path = f.RecentsPath
		case "autosave":
			cfg.Plugins.Autosave.Enabled = f.Autosave
		}
	})
}

// cleanList trims items and drops empty ones.
func cleanList(items []string) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
