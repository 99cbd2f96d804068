package tui

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidepad/internal/buffer"
	"github.com/bethropolis/tidepad/internal/command"
	"github.com/bethropolis/tidepad/internal/platform"
	"github.com/bethropolis/tidepad/internal/session"
	"github.com/bethropolis/tidepad/internal/types"
)

func newTestUI(t *testing.T) (*TUI, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	ui, err := NewWithScreen(s, nil)
	require.NoError(t, err)
	s.SetSize(60, 20)
	t.Cleanup(ui.Close)
	return ui, s
}

func press(ui *TUI, key tcell.Key) {
	ui.events <- tcell.NewEventKey(key, 0, tcell.ModNone)
}

func typeText(ui *TUI, text string) {
	for _, r := range text {
		ui.events <- tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
	}
}

// rowText reads row y of the simulation screen.
func rowText(s tcell.SimulationScreen, y int) string {
	cells, width, _ := s.GetContents()
	var sb strings.Builder
	for x := 0; x < width; x++ {
		c := cells[y*width+x]
		if len(c.Runes) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteString(string(c.Runes))
	}
	return strings.TrimRight(sb.String(), " ")
}

func screenText(s tcell.SimulationScreen) string {
	_, _, height := s.GetContents()
	rows := make([]string, height)
	for y := range rows {
		rows[y] = rowText(s, y)
	}
	return strings.Join(rows, "\n")
}

func TestPromptReturnsInput(t *testing.T) {
	ui, s := newTestUI(t)
	d := NewDialogs(ui)

	typeText(ui, "notes.txt")
	press(ui, tcell.KeyEnter)

	got, err := d.Prompt(context.Background(), "Enter file name", "", command.InputFilename, command.Validation{Required: true})
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", got)
	assert.Contains(t, screenText(s), "Enter file name")
}

func TestPromptKeepsDefaultAndEditing(t *testing.T) {
	ui, _ := newTestUI(t)
	d := NewDialogs(ui)

	press(ui, tcell.KeyBackspace2)
	press(ui, tcell.KeyBackspace2)
	press(ui, tcell.KeyBackspace2)
	typeText(ui, "md")
	press(ui, tcell.KeyEnter)

	got, err := d.Prompt(context.Background(), "Rename", "a.txt", command.InputFilename, command.Validation{})
	require.NoError(t, err)
	assert.Equal(t, "a.md", got)
}

func TestPromptRejectsInvalidInput(t *testing.T) {
	ui, s := newTestUI(t)
	d := NewDialogs(ui)
	v := command.Validation{Match: regexp.MustCompile(`^[^/]*$`), Required: true}

	typeText(ui, "a/b")
	press(ui, tcell.KeyEnter)

	done := make(chan string, 1)
	go func() {
		got, _ := d.Prompt(context.Background(), "Name", "", command.InputFilename, v)
		done <- got
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(screenText(s), invalidInput)
	}, time.Second, 5*time.Millisecond)

	press(ui, tcell.KeyCtrlU)
	typeText(ui, "ab")
	press(ui, tcell.KeyEnter)

	select {
	case got := <-done:
		assert.Equal(t, "ab", got)
	case <-time.After(time.Second):
		t.Fatal("prompt did not return")
	}
}

func TestPromptNumberIgnoresLetters(t *testing.T) {
	ui, _ := newTestUI(t)
	d := NewDialogs(ui)

	typeText(ui, "1x2")
	press(ui, tcell.KeyEnter)

	got, err := d.Prompt(context.Background(), "Line", "", command.InputNumber, command.Validation{})
	require.NoError(t, err)
	assert.Equal(t, "12", got)
}

func TestPromptEscapeCancels(t *testing.T) {
	ui, _ := newTestUI(t)
	d := NewDialogs(ui)

	typeText(ui, "abc")
	press(ui, tcell.KeyEscape)

	_, err := d.Prompt(context.Background(), "Name", "", command.InputText, command.Validation{})
	assert.ErrorIs(t, err, platform.ErrCancelled)
}

func TestDialogContextCancel(t *testing.T) {
	ui, _ := newTestUI(t)
	d := NewDialogs(ui)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Select(ctx, "x", []command.Option{{Label: "a"}}, command.SelectConfig{})
	assert.ErrorIs(t, err, platform.ErrCancelled)
}

func TestSelectDefaultAndNavigation(t *testing.T) {
	ui, s := newTestUI(t)
	d := NewDialogs(ui)
	options := []command.Option{
		{Value: 1, Label: "UTF-8"},
		{Value: 2, Label: "Shift_JIS"},
		{Value: 3, Label: "Big5"},
	}

	press(ui, tcell.KeyDown)
	press(ui, tcell.KeyEnter)

	got, err := d.Select(context.Background(), "Encoding", options, command.SelectConfig{Default: "Shift_JIS"})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Value)
	text := screenText(s)
	assert.Contains(t, text, "Encoding")
	assert.Contains(t, text, "Big5")
}

func TestSelectFilter(t *testing.T) {
	ui, _ := newTestUI(t)
	d := NewDialogs(ui)
	options := []command.Option{
		{Value: "go", Label: "Go"},
		{Value: "py", Label: "Python"},
		{Value: "rs", Label: "Rust"},
	}

	typeText(ui, "ru")
	press(ui, tcell.KeyEnter)

	got, err := d.Select(context.Background(), "Syntax", options, command.SelectConfig{})
	require.NoError(t, err)
	assert.Equal(t, "rs", got.Value)
}

func TestAlertWaitsForKey(t *testing.T) {
	ui, s := newTestUI(t)
	d := NewDialogs(ui)

	ui.events <- tcell.NewEventResize(60, 20)
	press(ui, tcell.KeyEnter)

	d.Alert(context.Background(), "ERROR", "unable to open file. file not found")
	text := screenText(s)
	assert.Contains(t, text, "ERROR")
	assert.Contains(t, text, "file not found")
	assert.Empty(t, ui.events)
}

func TestNotifierToast(t *testing.T) {
	ui, _ := newTestUI(t)
	status := NewStatusBar(time.Minute)
	n := NewNotifier(status, NewDialogs(ui))

	n.Toast("file saved")

	text, toast := status.Text()
	assert.True(t, toast)
	assert.Equal(t, "file saved", text)
}

func TestStatusBarToastExpires(t *testing.T) {
	status := NewStatusBar(time.Second)
	now := time.Unix(1000, 0)
	status.now = func() time.Time { return now }

	f := &session.File{
		Name:     "main.go",
		Mode:     "golang",
		Encoding: "UTF-8",
		Editable: false,
		Buffer:   buffer.NewSliceBufferFromString("x"),
		Cursor:   types.Position{Line: 0, Col: 1},
	}
	status.SetFile(f)
	status.SetTemporaryMessage("hello %d", 1)

	text, toast := status.Text()
	assert.True(t, toast)
	assert.Equal(t, "hello 1", text)

	now = now.Add(2 * time.Second)
	text, toast = status.Text()
	assert.False(t, toast)
	assert.Equal(t, "main.go [RO] -- golang | UTF-8 | Ln 1, Col 2", text)

	status.SetFile(nil)
	text, _ = status.Text()
	assert.Equal(t, "[No File]", text)
}

func TestBrowserPicksFile(t *testing.T) {
	ui, _ := newTestUI(t)
	memFS := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFS, "/home/me/notes/todo.txt", []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(memFS, "/home/me/a.txt", []byte("x"), 0o644))

	b, err := NewBrowser(platform.NewFS(memFS), NewDialogs(ui), nil, "/home/me")
	require.NoError(t, err)

	// listing of /home/me: "..", "notes/", "a.txt"
	press(ui, tcell.KeyDown)
	press(ui, tcell.KeyEnter)
	// listing of /home/me/notes: "..", "todo.txt"
	press(ui, tcell.KeyDown)
	press(ui, tcell.KeyEnter)

	sel, err := b.Browse(context.Background(), command.BrowseFile, nil)
	require.NoError(t, err)
	assert.Equal(t, command.Selection{URI: "/home/me/notes/todo.txt", Name: "todo.txt"}, sel)
	assert.Equal(t, "/home/me/notes", b.Dir())
}

func TestBrowserFolderMode(t *testing.T) {
	ui, _ := newTestUI(t)
	memFS := afero.NewMemMapFs()
	require.NoError(t, memFS.MkdirAll("/work/project", 0o755))
	require.NoError(t, afero.WriteFile(memFS, "/work/readme.md", []byte("x"), 0o644))

	b, err := NewBrowser(platform.NewFS(memFS), NewDialogs(ui), nil, "/work")
	require.NoError(t, err)

	// listing of /work: "[select this folder]", "..", "project/"
	typeText(ui, "project")
	press(ui, tcell.KeyEnter)
	// listing of /work/project: "[select this folder]", ".."
	press(ui, tcell.KeyEnter)

	sel, err := b.Browse(context.Background(), command.BrowseFolder, nil)
	require.NoError(t, err)
	assert.Equal(t, "/work/project", sel.URI)
	assert.Equal(t, "project", sel.Name)
}

func TestBrowserAcceptVeto(t *testing.T) {
	ui, _ := newTestUI(t)
	memFS := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFS, "/d/a.zip", []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(memFS, "/d/b.txt", []byte("x"), 0o644))

	b, err := NewBrowser(platform.NewFS(memFS), NewDialogs(ui), nil, "/d")
	require.NoError(t, err)

	var vetoed []string
	accept := func(uri string) bool {
		if strings.HasSuffix(uri, ".zip") {
			vetoed = append(vetoed, uri)
			return false
		}
		return true
	}

	// "..", "a.zip", "b.txt"
	press(ui, tcell.KeyDown)
	press(ui, tcell.KeyEnter)
	press(ui, tcell.KeyEnd)
	press(ui, tcell.KeyEnter)

	sel, err := b.Browse(context.Background(), command.BrowseFile, accept)
	require.NoError(t, err)
	assert.Equal(t, "/d/b.txt", sel.URI)
	assert.Equal(t, []string{"/d/a.zip"}, vetoed)
}

func TestDrawEditorAndTabs(t *testing.T) {
	ui, s := newTestUI(t)
	a := &session.File{ID: "1", Name: "a.txt", Buffer: buffer.NewSliceBufferFromString("hello\nworld")}
	b := &session.File{ID: "2", Name: "b.txt", Unsaved: true, Buffer: buffer.NewSliceBufferFromString("")}

	DrawTabs(ui, []*session.File{a, b}, a, 0)
	var vp Viewport
	DrawEditor(ui, a, &vp, 1, 5)
	ui.Show()

	assert.Equal(t, " a.txt  b.txt *", rowText(s, 0))
	assert.Equal(t, "1 hello", rowText(s, 1))
	assert.Equal(t, "2 world", rowText(s, 2))
}

func TestViewportFollow(t *testing.T) {
	var vp Viewport
	vp.Follow(types.Position{Line: 30}, 0, 10, 40)
	assert.Equal(t, 21, vp.Top)
	vp.Follow(types.Position{Line: 5}, 50, 10, 40)
	assert.Equal(t, 5, vp.Top)
	assert.Equal(t, 11, vp.Left)
}

func TestCalculateVisualColumn(t *testing.T) {
	assert.Equal(t, 0, calculateVisualColumn([]byte("abc"), 0))
	assert.Equal(t, 2, calculateVisualColumn([]byte("abc"), 2))
	assert.Equal(t, 4, calculateVisualColumn([]byte("\tx"), 1))
	assert.Equal(t, 4, calculateVisualColumn([]byte("日本"), 2))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"one two", "three"}, wrap("one two three", 8))
	assert.Equal(t, []string{""}, wrap("", 8))
}

func TestPageScrollsAndCloses(t *testing.T) {
	ui, s := newTestUI(t)
	d := NewDialogs(ui)

	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "line " + strings.Repeat("x", i%3)
	}
	lines[29] = "the end"

	press(ui, tcell.KeyDown)
	press(ui, tcell.KeyEnd)
	typeText(ui, "q")
	require.NoError(t, d.Page(context.Background(), "Help", lines))

	assert.Equal(t, "Help (13/30)", rowText(s, 0)[1:])
	assert.Equal(t, "the end", strings.TrimSpace(rowText(s, 18)))
	assert.Contains(t, rowText(s, 19), "esc/q: close")
}

func TestPageCancelledContext(t *testing.T) {
	ui, _ := newTestUI(t)
	d := NewDialogs(ui)
	cctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := d.Page(cctx, "Help", []string{"a"})
	assert.ErrorIs(t, err, platform.ErrCancelled)
}

func TestSetTabWidth(t *testing.T) {
	defer SetTabWidth(tabWidth)
	SetTabWidth(8)
	assert.Equal(t, 8, calculateVisualColumn([]byte("\tx"), 1))
	SetTabWidth(0)
	assert.Equal(t, 8, tabWidth)
}
