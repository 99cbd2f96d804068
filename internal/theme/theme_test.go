package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStyleFallbacks(t *testing.T) {
	th := DevComfortDark()

	assert.Equal(t, th.Styles["Dialog.Selected"], th.GetStyle("Dialog.Selected"))
	assert.Equal(t, th.Styles["Dialog"], th.GetStyle("Dialog.Unknown"))
	assert.Equal(t, th.Styles["Default"], th.GetStyle("Nope"))

	var nilTheme *Theme
	assert.Equal(t, tcell.StyleDefault, nilTheme.GetStyle("Default"))
}

func TestLoadThemeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "light.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
is_dark = false

[styles.Default]
fg = "#101010"
bg = "white"

[styles.Dialog]
bold = true

[styles.Broken]
fg = "not-a-color"
`), 0o644))

	th, err := LoadThemeFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "light", th.Name)
	fg, bg, _ := th.GetStyle("Default").Decompose()
	assert.Equal(t, tcell.NewHexColor(0x101010), fg)
	assert.Equal(t, tcell.ColorWhite, bg)

	dfg, dbg, attrs := th.GetStyle("Dialog").Decompose()
	assert.Equal(t, fg, dfg)
	assert.Equal(t, bg, dbg)
	assert.NotZero(t, attrs&tcell.AttrBold)

	_, ok := th.Styles["Broken"]
	assert.False(t, ok)
}

func TestMerge(t *testing.T) {
	base := DevComfortDark()
	over := &Theme{Name: "custom", Styles: map[string]tcell.Style{"Dialog": tcell.StyleDefault.Bold(true)}}

	merged := base.Merge(over)

	assert.Equal(t, "custom", merged.Name)
	assert.Equal(t, over.Styles["Dialog"], merged.GetStyle("Dialog"))
	assert.Equal(t, base.Styles["Tabs"], merged.GetStyle("Tabs"))
	assert.NotEqual(t, over.Styles["Dialog"], base.Styles["Dialog"])
}
