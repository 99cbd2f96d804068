// internal/app/services.go
package app

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/tidepad/internal/command"
	"github.com/bethropolis/tidepad/internal/config"
	"github.com/bethropolis/tidepad/internal/find"
	"github.com/bethropolis/tidepad/internal/logger"
	"github.com/bethropolis/tidepad/internal/session"
	"github.com/bethropolis/tidepad/internal/tui"
	"github.com/bethropolis/tidepad/plugins/wordcount"
)

// pages shows the settings and help pages.
type pages struct {
	app *App
}

var _ command.Pages = (*pages)(nil)

// Settings shows the effective configuration as TOML.
func (p *pages) Settings(ctx context.Context) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p.app.cfg); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	return p.app.dialogs.Page(ctx, "Settings", lines)
}

// Help lists the key bindings and loaded plugins.
func (p *pages) Help(ctx context.Context) error {
	return p.app.dialogs.Page(ctx, "Help", p.helpLines())
}

func (p *pages) helpLines() []string {
	lines := []string{config.AppName + " key bindings", ""}
	for _, b := range p.app.input.Bindings() {
		lines = append(lines, fmt.Sprintf("  %-14s %s", b.Key, b.Action))
	}
	lines = append(lines, "", "Plugins: "+strings.Join(p.app.plugins.Names(), ", "))
	return lines
}

// console is the previewer. There is no browser preview in a terminal, so
// both modes show the console page: file facts followed by the text.
type console struct {
	app *App
}

var _ command.Previewer = (*console)(nil)

func (c *console) Run(ctx context.Context, f *session.File, inConsole bool) error {
	title := "Preview: " + f.Name
	if inConsole {
		title = "Console: " + f.Name
	}
	return c.app.dialogs.Page(ctx, title, c.lines(ctx, f))
}

func (c *console) lines(ctx context.Context, f *session.File) []string {
	target := f.Target()
	if target == "" {
		target = "(not saved)"
	}
	text := f.Text()
	lines := []string{
		"target:   " + target,
		"mode:     " + f.Mode,
		"encoding: " + f.Encoding,
		wordcount.Count([]byte(text)).String(),
	}
	if l := c.app.session.Languages().ByMode(f.Mode); l != nil {
		count, err := l.CountErrors(ctx, []byte(text))
		switch {
		case err != nil:
			logger.Warnf("Console: parse %s: %v", f.Name, err)
		case count > 0:
			lines = append(lines, fmt.Sprintf("syntax errors: %d", count))
		default:
			lines = append(lines, "syntax: ok")
		}
	}
	lines = append(lines, strings.Repeat("-", 20))
	for i, line := range f.Buffer.Lines() {
		lines = append(lines, fmt.Sprintf("%4d  %s", i+1, line))
	}
	return lines
}

// gitHub gates the repository page behind a personal access token.
type gitHub struct {
	token    string
	dialogs  *tui.Dialogs
	notifier command.Notifier
}

var _ command.GitHubService = (*gitHub)(nil)

func (g *gitHub) Authenticated() bool { return g.token != "" }

// Login asks for a token. It is kept for the session only.
func (g *gitHub) Login(ctx context.Context) error {
	token, err := g.dialogs.Prompt(ctx, "GitHub token", "", command.InputText, command.Validation{Required: true})
	if err != nil {
		return err
	}
	g.token = strings.TrimSpace(token)
	g.notifier.Toast("signed in to GitHub")
	return nil
}

func (g *gitHub) Open(ctx context.Context) error {
	masked := g.token
	if len(masked) > 4 {
		masked = strings.Repeat("*", len(masked)-4) + masked[len(masked)-4:]
	}
	return g.dialogs.Page(ctx, "GitHub", []string{
		"signed in",
		"token: " + masked,
	})
}

// finder implements find and replace over the active file.
type finder struct {
	session  *session.Session
	dialogs  command.Dialogs
	notifier command.Notifier
	searcher find.Searcher
}

var _ command.Finder = (*finder)(nil)

func (fd *finder) Open(ctx context.Context, f *session.File, replace bool) error {
	term, err := fd.dialogs.Prompt(ctx, "Find", fd.searcher.Term(), command.InputText, command.Validation{Required: true})
	if err != nil {
		return err
	}
	if replace {
		return fd.replace(ctx, f, term)
	}

	fd.searcher.SetTerm(term)
	r, ok := fd.searcher.Next(f.Buffer, f.Cursor)
	if !ok {
		fd.notifier.Toast(fmt.Sprintf("no matches for %q", term))
		return nil
	}
	f.Cursor = r.Start
	f.Selection = r
	fd.session.Update(f)
	return nil
}

func (fd *finder) replace(ctx context.Context, f *session.File, term string) error {
	replacement, err := fd.dialogs.Prompt(ctx, "Replace with", "", command.InputText, command.Validation{})
	if err != nil {
		return err
	}
	if !f.Editable {
		fd.notifier.Toast(msgReadOnly)
		return nil
	}
	n := find.ReplaceAll(f.Buffer, term, replacement)
	if n > 0 {
		f.Cursor = f.Buffer.Clamp(f.Cursor)
		f.ClearSelection()
		fd.session.Update(f)
	}
	fd.notifier.Toast(fmt.Sprintf("replaced %d occurrence(s)", n))
	return nil
}
