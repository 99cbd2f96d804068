package command

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidepad/internal/clipboard"
	"github.com/bethropolis/tidepad/internal/encoding"
	"github.com/bethropolis/tidepad/internal/event"
	"github.com/bethropolis/tidepad/internal/highlighter"
	"github.com/bethropolis/tidepad/internal/highlighter/lang"
	"github.com/bethropolis/tidepad/internal/platform"
	"github.com/bethropolis/tidepad/internal/recents"
	"github.com/bethropolis/tidepad/internal/session"
)

type alert struct {
	title string
	body  string
}

type fakeNotifier struct {
	toasts []string
	alerts []alert
}

func (n *fakeNotifier) Toast(message string) { n.toasts = append(n.toasts, message) }

func (n *fakeNotifier) Alert(ctx context.Context, title, body string) {
	n.alerts = append(n.alerts, alert{title: title, body: body})
}

// fakeDialogs answers prompts from a queue and selects by label.
type fakeDialogs struct {
	prompts   []string
	selects   []string
	err       error
	lastTitle string
	lastOpts  []Option
	lastCfg   SelectConfig
}

func (d *fakeDialogs) Prompt(ctx context.Context, title, def string, kind InputKind, v Validation) (string, error) {
	d.lastTitle = title
	if d.err != nil {
		return "", d.err
	}
	if len(d.prompts) == 0 {
		return "", platform.ErrCancelled
	}
	answer := d.prompts[0]
	d.prompts = d.prompts[1:]
	return answer, nil
}

func (d *fakeDialogs) Select(ctx context.Context, title string, options []Option, cfg SelectConfig) (Option, error) {
	d.lastTitle = title
	d.lastOpts = options
	d.lastCfg = cfg
	if d.err != nil {
		return Option{}, d.err
	}
	if len(d.selects) == 0 {
		return Option{}, platform.ErrCancelled
	}
	label := d.selects[0]
	d.selects = d.selects[1:]
	for _, o := range options {
		if o.Label == label {
			return o, nil
		}
	}
	return Option{}, platform.ErrCancelled
}

type fakeBrowser struct {
	selection Selection
	err       error
	accepted  *bool
}

func (b *fakeBrowser) Browse(ctx context.Context, mode BrowseMode, accept func(string) bool) (Selection, error) {
	if b.err != nil {
		return Selection{}, b.err
	}
	if accept != nil {
		ok := accept(b.selection.URI)
		b.accepted = &ok
		if !ok {
			return Selection{}, platform.ErrCancelled
		}
	}
	return b.selection, nil
}

type fakePages struct{ opened []string }

func (p *fakePages) Settings(ctx context.Context) error {
	p.opened = append(p.opened, "settings")
	return nil
}

func (p *fakePages) Help(ctx context.Context) error {
	p.opened = append(p.opened, "help")
	return nil
}

type fakePreview struct {
	ran     *session.File
	console bool
}

func (p *fakePreview) Run(ctx context.Context, f *session.File, console bool) error {
	p.ran, p.console = f, console
	return nil
}

type fakeGitHub struct {
	authenticated bool
	logins        int
	opens         int
}

func (g *fakeGitHub) Authenticated() bool { return g.authenticated }

func (g *fakeGitHub) Login(ctx context.Context) error {
	g.logins++
	return nil
}

func (g *fakeGitHub) Open(ctx context.Context) error {
	g.opens++
	return nil
}

type fakeFinder struct {
	file    *session.File
	replace bool
	calls   int
}

func (f *fakeFinder) Open(ctx context.Context, file *session.File, replace bool) error {
	f.file, f.replace = file, replace
	f.calls++
	return nil
}

var (
	_ Dialogs       = (*fakeDialogs)(nil)
	_ FileBrowser   = (*fakeBrowser)(nil)
	_ Notifier      = (*fakeNotifier)(nil)
	_ Pages         = (*fakePages)(nil)
	_ Previewer     = (*fakePreview)(nil)
	_ GitHubService = (*fakeGitHub)(nil)
	_ Finder        = (*fakeFinder)(nil)
)

type harness struct {
	fs         afero.Fs
	session    *session.Session
	recents    *recents.Registry
	dialogs    *fakeDialogs
	browser    *fakeBrowser
	notifier   *fakeNotifier
	pages      *fakePages
	preview    *fakePreview
	github     *fakeGitHub
	finder     *fakeFinder
	dispatcher *Dispatcher
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	memFS := afero.NewMemMapFs()
	langs := lang.NewRegistry()
	highlighter.RegisterLanguages(langs)
	events := event.NewManager()

	reg, err := recents.New(recents.NewTOMLStore(filepath.Join(t.TempDir(), "recents.toml")), recents.Options{
		Icons:     langs.IconFor,
		Canonical: platform.CanonicalURI,
		Events:    events,
	})
	require.NoError(t, err)

	h := &harness{
		fs: memFS,
		session: session.New(session.Options{
			FS:        platform.NewFS(memFS),
			Events:    events,
			Languages: langs,
		}),
		recents:  reg,
		dialogs:  &fakeDialogs{},
		browser:  &fakeBrowser{},
		notifier: &fakeNotifier{},
		pages:    &fakePages{},
		preview:  &fakePreview{},
		github:   &fakeGitHub{},
		finder:   &fakeFinder{},
	}
	h.dispatcher = NewDispatcher(&Env{
		Session:   h.session,
		Recents:   h.recents,
		Dialogs:   h.dialogs,
		Browser:   h.browser,
		Notifier:  h.notifier,
		Clipboard: clipboard.NewManager(&clipboard.Register{}),
		Pages:     h.pages,
		Preview:   h.preview,
		GitHub:    h.github,
		Finder:    h.finder,
		Settings: Settings{
			Encodings:       encoding.Names,
			FilesNotAllowed: []string{"zip", "apk"},
		},
	})
	return h
}

func (h *harness) writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(h.fs, path, []byte(content), 0o644))
}
