// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/afero"

	"github.com/bethropolis/tidepad/internal/clipboard"
	"github.com/bethropolis/tidepad/internal/command"
	"github.com/bethropolis/tidepad/internal/config"
	"github.com/bethropolis/tidepad/internal/event"
	"github.com/bethropolis/tidepad/internal/highlighter"
	"github.com/bethropolis/tidepad/internal/highlighter/lang"
	"github.com/bethropolis/tidepad/internal/history"
	"github.com/bethropolis/tidepad/internal/input"
	"github.com/bethropolis/tidepad/internal/logger"
	"github.com/bethropolis/tidepad/internal/platform"
	"github.com/bethropolis/tidepad/internal/plugin"
	"github.com/bethropolis/tidepad/internal/recents"
	"github.com/bethropolis/tidepad/internal/session"
	"github.com/bethropolis/tidepad/internal/theme"
	"github.com/bethropolis/tidepad/internal/tui"
	"github.com/bethropolis/tidepad/plugins/autosave"
)

// Options configures an App. Zero fields fall back to the real terminal,
// the OS filesystem and the stores named by Config.
type Options struct {
	Config    *config.Config
	Screen    tcell.Screen
	FS        afero.Fs
	Store     recents.Store
	Clipboard clipboard.Backend
	// StartDir is where the file browser opens. Empty uses the working directory.
	StartDir string
	// Getenv reads the environment. Nil uses os.Getenv.
	Getenv func(string) string
}

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg *config.Config

	ui         *tui.TUI
	statusBar  *tui.StatusBar
	dialogs    *tui.Dialogs
	browser    *tui.Browser
	input      *input.InputProcessor
	events     *event.Manager
	session    *session.Session
	recents    *recents.Registry
	store      recents.Store
	dispatcher *command.Dispatcher
	plugins    *plugin.Manager

	viewports map[session.FileID]*tui.Viewport
	histories map[session.FileID]*history.History
	quitting  bool
}

// New creates and wires a new application instance.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	ui, err := newUI(opts.Screen, loadTheme(cfg.Editor.Theme))
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	tui.SetTabWidth(cfg.Editor.TabWidth)

	fs := platform.NewOsFS()
	if opts.FS != nil {
		fs = platform.NewFS(opts.FS)
	}

	langs := lang.NewRegistry()
	highlighter.RegisterLanguages(langs)

	events := event.NewManager()
	sess := session.New(session.Options{
		FS:              fs,
		Events:          events,
		Languages:       langs,
		DefaultEncoding: cfg.Editor.DefaultEncoding,
	})

	store := opts.Store
	if store == nil {
		if store, err = OpenStore(cfg); err != nil {
			ui.Close()
			return nil, err
		}
	}
	rec, err := recents.New(store, recents.Options{
		MaxEntries:  cfg.Recents.MaxEntries,
		LabelBudget: cfg.Recents.LabelBudget,
		Icons:       langs.IconFor,
		Canonical:   platform.CanonicalURI,
		Events:      events,
	})
	if err != nil {
		ui.Close()
		return nil, fmt.Errorf("loading recents: %w", err)
	}

	backend := opts.Clipboard
	if backend == nil {
		backend = clipboard.NewBackend(cfg.Editor.SystemClipboard)
	}

	startDir := opts.StartDir
	if startDir == "" {
		if wd, err := os.Getwd(); err == nil {
			startDir = wd
		} else {
			startDir = "/"
		}
	}

	statusBar := tui.NewStatusBar(config.MessageTimeout)
	dialogs := tui.NewDialogs(ui)
	notifier := tui.NewNotifier(statusBar, dialogs)
	browser, err := tui.NewBrowser(fs, dialogs, langs.IconFor, startDir)
	if err != nil {
		ui.Close()
		return nil, fmt.Errorf("file browser: %w", err)
	}

	a := &App{
		cfg:       cfg,
		ui:        ui,
		statusBar: statusBar,
		dialogs:   dialogs,
		browser:   browser,
		input:     input.NewInputProcessor(),
		events:    events,
		session:   sess,
		recents:   rec,
		store:     store,
		plugins:   plugin.NewManager(),
		viewports: make(map[session.FileID]*tui.Viewport),
		histories: make(map[session.FileID]*history.History),
	}

	a.dispatcher = command.NewDispatcher(&command.Env{
		Session:   sess,
		Recents:   rec,
		Dialogs:   dialogs,
		Browser:   browser,
		Notifier:  notifier,
		Clipboard: clipboard.NewManager(backend),
		Pages:     &pages{app: a},
		Preview:   &console{app: a},
		GitHub:    &gitHub{token: getenv("GITHUB_TOKEN"), dialogs: dialogs, notifier: notifier},
		Finder:    &finder{session: sess, dialogs: dialogs, notifier: notifier},
		Settings: command.Settings{
			Encodings:       cfg.Editor.Encodings,
			FilesNotAllowed: cfg.Editor.FilesNotAllowed,
		},
	})

	a.subscribe()
	if err := a.registerPlugins(); err != nil {
		logger.Warnf("App: %v", err)
	}
	a.plugins.InitializePlugins(a)

	ui.SetRedraw(a.draw)
	return a, nil
}

func newUI(screen tcell.Screen, th *theme.Theme) (*tui.TUI, error) {
	if screen != nil {
		return tui.NewWithScreen(screen, th)
	}
	return tui.New(th)
}

// loadTheme layers the theme file at path, if any, over the built-in theme.
func loadTheme(path string) *theme.Theme {
	base := theme.DevComfortDark()
	if path == "" {
		return base
	}
	loaded, err := theme.LoadThemeFromFile(path)
	if err != nil {
		logger.Warnf("App: using built-in theme: %v", err)
		return base
	}
	return base.Merge(loaded)
}

// OpenStore opens the recents store the config names.
func OpenStore(cfg *config.Config) (recents.Store, error) {
	path := cfg.RecentsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating recents directory: %w", err)
	}
	if cfg.Recents.Backend == config.RecentsBackendSQLite {
		store, err := recents.NewSQLiteStore(path)
		if err != nil {
			return nil, fmt.Errorf("opening recents database: %w", err)
		}
		return store, nil
	}
	return recents.NewTOMLStore(path), nil
}

func (a *App) registerPlugins() error {
	autosaveCfg := a.cfg.Plugins.Autosave
	return a.plugins.Register(autosave.New(autosave.Config{
		Enabled:  autosaveCfg.Enabled,
		Interval: time.Duration(autosaveCfg.Interval),
	}))
}

// Dispatcher exposes the command dispatcher.
func (a *App) Dispatcher() *command.Dispatcher { return a.dispatcher }

// Session exposes the editor session.
func (a *App) Session() *session.Session { return a.session }

// Recents exposes the recents registry.
func (a *App) Recents() *recents.Registry { return a.recents }

// Close shuts down plugins, the screen and the recents store.
func (a *App) Close() {
	a.plugins.ShutdownPlugins()
	a.ui.Close()
	if c, ok := a.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Warnf("App: closing recents store: %v", err)
		}
	}
}

// Run opens paths and then runs the event loop until the user quits or ctx
// ends. Commands, dialogs and plugins all run on this goroutine.
func (a *App) Run(ctx context.Context, paths []string) error {
	a.ui.Start()

	for _, p := range paths {
		a.openPath(ctx, p)
	}

	a.events.Dispatch(event.TypeAppReady, nil)
	a.statusBar.SetTemporaryMessage("%s - Ctrl+P commands | F1 help | Ctrl+Q quit", config.AppName)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for !a.quitting {
		a.render()
		select {
		case <-ctx.Done():
			logger.Infof("App: context done, quitting")
			a.quitting = true
		case now := <-ticker.C:
			a.events.Dispatch(event.TypeTick, now)
		case ev, ok := <-a.ui.Events():
			if !ok {
				a.quitting = true
				continue
			}
			a.handleEvent(ctx, ev)
		}
	}

	a.events.Dispatch(event.TypeAppQuit, nil)
	logger.Infof("App: event loop finished")
	return nil
}

// openPath opens a path given on the command line. Folders go to the
// sidebar; a missing file becomes an empty buffer that saves to path.
func (a *App) openPath(ctx context.Context, p string) {
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	h, err := a.session.FS().Open(ctx, p)
	if err != nil {
		logger.Warnf("App: cannot open %s: %v", p, err)
		return
	}
	exists, err := h.Exists()
	if err != nil {
		logger.Warnf("App: cannot stat %s: %v", p, err)
		return
	}
	if !exists {
		f := a.session.AddNewFile(h.URI().Base(), session.NewFileOptions{})
		f.URI = h.URI().String()
		f.Location = h.URI().Dir().String()
		logger.Debugf("App: %s does not exist, starting an empty buffer", p)
		return
	}
	if isDir, _ := h.IsDir(); isDir {
		a.dispatcher.Dispatch(ctx, command.OpenFolder, p)
		return
	}
	a.dispatcher.Dispatch(ctx, command.OpenFile, p)
}

func (a *App) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.ui.Screen().Sync()
	case *tcell.EventKey:
		a.handleKey(ctx, ev)
	}
}

func (a *App) handleKey(ctx context.Context, ev *tcell.EventKey) {
	action := a.input.ProcessEvent(ev)
	switch action.Action {
	case input.ActionUnknown:
		logger.DebugTagf("app", "unbound key %s", ev.Name())
	case input.ActionQuit:
		a.confirmQuit(ctx)
	case input.ActionCloseFile:
		a.closeActive(ctx)
	case input.ActionPalette:
		a.palette(ctx)
	case input.ActionCommand:
		a.dispatch(ctx, action.Command, action.Args...)
	default:
		a.edit(action)
	}
}

// render draws the base view and shows it.
func (a *App) render() {
	a.draw()
	a.ui.Show()
}

// draw paints tabs, the active file and the status bar.
func (a *App) draw() {
	_, height := a.ui.Size()
	statusHeight := a.cfg.Editor.StatusBarHeight
	active := a.session.ActiveFile()

	a.ui.Clear()
	tui.DrawTabs(a.ui, a.session.Files(), active, 0)
	editorHeight := max(0, height-config.TabBarHeight-statusHeight)
	tui.DrawEditor(a.ui, active, a.viewport(active), config.TabBarHeight, editorHeight)

	a.statusBar.SetFile(active)
	a.statusBar.Draw(a.ui, height-statusHeight)
}

func (a *App) editorHeight() int {
	_, height := a.ui.Size()
	return max(1, height-config.TabBarHeight-a.cfg.Editor.StatusBarHeight)
}

func (a *App) viewport(f *session.File) *tui.Viewport {
	if f == nil {
		return &tui.Viewport{}
	}
	vp, ok := a.viewports[f.ID]
	if !ok {
		vp = &tui.Viewport{}
		a.viewports[f.ID] = vp
	}
	return vp
}

func isDirty(f *session.File) bool {
	return f.Unsaved || f.Buffer.IsModified()
}

const (
	choiceKeep    = "keep editing"
	choiceDiscard = "quit without saving"
	choiceClose   = "close without saving"
)

// confirm asks before discarding changes. Dismissing the dialog keeps editing.
func (a *App) confirm(ctx context.Context, title, discard string) bool {
	choice, err := a.dialogs.Select(ctx, title, []command.Option{
		{Value: false, Label: choiceKeep},
		{Value: true, Label: discard},
	}, command.SelectConfig{})
	if err != nil {
		return false
	}
	ok, _ := choice.Value.(bool)
	return ok
}

func (a *App) confirmQuit(ctx context.Context) {
	dirty := 0
	for _, f := range a.session.Files() {
		if isDirty(f) {
			dirty++
		}
	}
	if dirty == 0 || a.confirm(ctx, fmt.Sprintf("%d file(s) have unsaved changes", dirty), choiceDiscard) {
		a.quitting = true
	}
}

func (a *App) closeActive(ctx context.Context) {
	f := a.session.ActiveFile()
	if f == nil {
		return
	}
	if isDirty(f) && !a.confirm(ctx, fmt.Sprintf("%s has unsaved changes", f.Name), choiceClose) {
		return
	}
	if err := a.session.CloseFile(f.ID); err != nil {
		logger.Warnf("App: closing %s: %v", f.Name, err)
	}
}

type paletteEntry struct {
	cmd  command.Command
	args []string
}

// palette lets the user run any command from a list.
func (a *App) palette(ctx context.Context) {
	var options []command.Option
	for _, c := range command.All() {
		if c == command.Open {
			for _, page := range []string{"settings", "help"} {
				options = append(options, command.Option{Value: paletteEntry{c, []string{page}}, Label: "open " + page})
			}
			continue
		}
		options = append(options, command.Option{Value: paletteEntry{cmd: c}, Label: c.String()})
	}
	choice, err := a.dialogs.Select(ctx, "Command", options, command.SelectConfig{TextTransform: true})
	if err != nil {
		return
	}
	entry, ok := choice.Value.(paletteEntry)
	if !ok {
		return
	}
	a.dispatch(ctx, entry.cmd, entry.args...)
}

func (a *App) dispatch(ctx context.Context, c command.Command, args ...string) {
	if a.dispatcher.Dispatch(ctx, c, args...).Status == command.StatusOK {
		a.forgetHistory(c)
	}
}
