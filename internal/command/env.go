package command

import (
	"context"
	"regexp"
	"strings"

	"github.com/bethropolis/tidepad/internal/clipboard"
	"github.com/bethropolis/tidepad/internal/platform"
	"github.com/bethropolis/tidepad/internal/recents"
	"github.com/bethropolis/tidepad/internal/session"
)

// FileNamePattern rejects characters that are not allowed in file names.
var FileNamePattern = regexp.MustCompile(`^[^:<>"\\/|?*]*$`)

// Option is one choice offered by Dialogs.Select.
type Option struct {
	Value any
	Label string
	Icon  string
}

// SelectConfig tunes a select dialog. Default is the Label preselected.
type SelectConfig struct {
	Default       string
	TextTransform bool
}

// InputKind selects the keyboard a prompt expects.
type InputKind int

const (
	InputText InputKind = iota
	InputNumber
	InputFilename
)

// Validation constrains prompt input.
type Validation struct {
	Match    *regexp.Regexp
	Required bool
}

// Check returns platform.ErrValidation when value does not satisfy v.
func (v Validation) Check(value string) error {
	if v.Required && strings.TrimSpace(value) == "" {
		return platform.ErrValidation
	}
	if v.Match != nil && !v.Match.MatchString(value) {
		return platform.ErrValidation
	}
	return nil
}

// Dialogs shows modal choices and text prompts. Both return
// platform.ErrCancelled when dismissed. Prompt keeps asking until the input
// passes validation.
type Dialogs interface {
	Select(ctx context.Context, title string, options []Option, cfg SelectConfig) (Option, error)
	Prompt(ctx context.Context, title, def string, kind InputKind, v Validation) (string, error)
}

// BrowseMode selects what the file browser returns.
type BrowseMode int

const (
	BrowseFile BrowseMode = iota
	BrowseFolder
)

// Selection is the browser's result.
type Selection struct {
	URI          string
	Name         string
	IsContentURI bool
}

// FileBrowser lets the user pick a file or folder. accept may veto a pick;
// the browser then stays open.
type FileBrowser interface {
	Browse(ctx context.Context, mode BrowseMode, accept func(uri string) bool) (Selection, error)
}

// Notifier shows transient toasts and modal alerts.
type Notifier interface {
	Toast(message string)
	Alert(ctx context.Context, title, body string)
}

// Clipboard performs clipboard actions on a file.
type Clipboard interface {
	Perform(f *session.File, action clipboard.Action) error
}

// Pages opens the full-screen pages.
type Pages interface {
	Settings(ctx context.Context) error
	Help(ctx context.Context) error
}

// Previewer runs the active file, in the in-app console when console is set.
type Previewer interface {
	Run(ctx context.Context, f *session.File, console bool) error
}

// GitHubService is the repository integration.
type GitHubService interface {
	Authenticated() bool
	Login(ctx context.Context) error
	Open(ctx context.Context) error
}

// Finder is the find/replace tool.
type Finder interface {
	Open(ctx context.Context, f *session.File, replace bool) error
}

// Settings are the configuration values handlers consult.
type Settings struct {
	Encodings       []string
	FilesNotAllowed []string
}

// Env is the explicit context every handler runs against.
type Env struct {
	Session   *session.Session
	Recents   *recents.Registry
	Dialogs   Dialogs
	Browser   FileBrowser
	Notifier  Notifier
	Clipboard Clipboard
	Pages     Pages
	Preview   Previewer
	GitHub    GitHubService
	Finder    Finder
	Settings  Settings
}
