package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, undecoded, err := Load(filepath.Join(t.TempDir(), "nope.toml"), nil)
	require.NoError(t, err)
	assert.Empty(t, undecoded)
	assert.Equal(t, NewDefaultConfig(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
[logger]
log_level = "debug"
enabled_tags = ["recents"]

[editor]
default_encoding = "windows-1252"
encodings = ["UTF-8", "bogus-codec", "Shift_JIS"]
files_not_allowed = ["bin"]

[recents]
max_entries = 5
backend = "sqlite"
path = "/tmp/r.db"

[mystery]
key = 1
`)
	cfg, undecoded, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, []string{"recents"}, cfg.Logger.EnabledTags)
	assert.Equal(t, "windows-1252", cfg.Editor.DefaultEncoding)
	assert.Equal(t, []string{"UTF-8", "Shift_JIS"}, cfg.Editor.Encodings)
	assert.Equal(t, []string{"bin"}, cfg.Editor.FilesNotAllowed)
	assert.Equal(t, 5, cfg.Recents.MaxEntries)
	assert.Equal(t, RecentsBackendSQLite, cfg.Recents.Backend)
	assert.Equal(t, "/tmp/r.db", cfg.RecentsPath())
	assert.Contains(t, undecoded, "mystery.key")
}

func TestLoadBadFile(t *testing.T) {
	path := writeConfig(t, "this is = = not toml")
	cfg, _, err := Load(path, nil)
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
}

func TestValidateResetsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
[editor]
tab_width = -2
default_encoding = "martian"
encodings = ["nope"]

[recents]
max_entries = 0
label_budget = 2
backend = "redis"
`)
	cfg, _, err := Load(path, nil)
	require.NoError(t, err)
	defaults := NewDefaultConfig()

	assert.Equal(t, defaults.Editor.TabWidth, cfg.Editor.TabWidth)
	assert.Equal(t, defaults.Editor.DefaultEncoding, cfg.Editor.DefaultEncoding)
	assert.Equal(t, defaults.Editor.Encodings, cfg.Editor.Encodings)
	assert.Equal(t, defaults.Recents.MaxEntries, cfg.Recents.MaxEntries)
	assert.Equal(t, defaults.Recents.LabelBudget, cfg.Recents.LabelBudget)
	assert.Equal(t, RecentsBackendTOML, cfg.Recents.Backend)
}

func TestFlagOverrides(t *testing.T) {
	path := writeConfig(t, `
[logger]
log_level = "warn"
[editor]
system_clipboard = true
`)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var flags Flags
	flags.Define(fs)
	require.NoError(t, fs.Parse([]string{
		"--loglevel", "debug",
		"--system-clipboard=false",
		"--log-tags", "recents, session,",
		"--recents-backend", "SQLITE",
	}))

	cfg, _, err := Load(path, &flags)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.False(t, cfg.Editor.SystemClipboard)
	assert.Equal(t, []string{"recents", "session"}, cfg.Logger.EnabledTags)
	assert.Equal(t, RecentsBackendSQLite, cfg.Recents.Backend)
}

func TestUnsetFlagsDoNotOverride(t *testing.T) {
	path := writeConfig(t, `
[editor]
system_clipboard = false
tab_width = 8
`)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var flags Flags
	flags.Define(fs)
	require.NoError(t, fs.Parse(nil))

	cfg, _, err := Load(path, &flags)
	require.NoError(t, err)
	assert.False(t, cfg.Editor.SystemClipboard)
	assert.Equal(t, 8, cfg.Editor.TabWidth)
}

func TestRecentsPathDefaultsByBackend(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, DefaultRecentsFileName, filepath.Base(cfg.RecentsPath()))
	cfg.Recents.Backend = RecentsBackendSQLite
	assert.Equal(t, DefaultRecentsDBName, filepath.Base(cfg.RecentsPath()))
}

func TestAutosaveSection(t *testing.T) {
	path := writeConfig(t, `
[plugins.autosave]
enabled = true
interval = "90s"
`)
	cfg, undecoded, err := Load(path, nil)
	require.NoError(t, err)
	assert.Empty(t, undecoded)
	assert.True(t, cfg.Plugins.Autosave.Enabled)
	assert.Equal(t, 90*time.Second, time.Duration(cfg.Plugins.Autosave.Interval))

	path = writeConfig(t, `
[plugins.autosave]
interval = "10ms"
`)
	cfg, _, err = Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultAutosaveInterval, time.Duration(cfg.Plugins.Autosave.Interval))

	_, _, err = Load(writeConfig(t, "[plugins.autosave]\ninterval = \"soon\"\n"), nil)
	assert.Error(t, err)
}

func TestAutosaveFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var flags Flags
	flags.Define(fs)
	require.NoError(t, fs.Parse([]string{"--autosave"}))

	cfg, _, err := Load(filepath.Join(t.TempDir(), "none.toml"), &flags)
	require.NoError(t, err)
	assert.True(t, cfg.Plugins.Autosave.Enabled)
}
