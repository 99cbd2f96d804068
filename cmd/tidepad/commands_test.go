package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidepad/internal/recents"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func storeArgs(dir string) []string {
	return []string{
		"--config", filepath.Join(dir, "missing.toml"),
		"--logfile", "-",
		"--recents-path", filepath.Join(dir, "recents.toml"),
	}
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	assert.Equal(t, "tidepad "+version+"\n", out)
}

func TestRecentsCommandEmpty(t *testing.T) {
	out := execute(t, append([]string{"recents"}, storeArgs(t.TempDir())...)...)
	assert.Equal(t, "no recent files or folders\n", out)
}

func TestRecentsCommandListsAndClears(t *testing.T) {
	dir := t.TempDir()
	reg, err := recents.New(recents.NewTOMLStore(filepath.Join(dir, "recents.toml")), recents.Options{})
	require.NoError(t, err)
	require.NoError(t, reg.RecordFile("/src/main.go"))
	require.NoError(t, reg.RecordFolder("/src"))

	out := execute(t, append([]string{"recents"}, storeArgs(dir)...)...)
	assert.Equal(t, "dir   /src\nfile  /src/main.go\n", out)

	out = execute(t, append([]string{"recents", "--clear"}, storeArgs(dir)...)...)
	assert.Equal(t, "recents cleared\n", out)

	out = execute(t, append([]string{"recents"}, storeArgs(dir)...)...)
	assert.Equal(t, "no recent files or folders\n", out)
}
