package tui

import (
	"context"
	"errors"

	"github.com/bethropolis/tidepad/internal/command"
	"github.com/bethropolis/tidepad/internal/highlighter/lang"
	"github.com/bethropolis/tidepad/internal/logger"
	"github.com/bethropolis/tidepad/internal/platform"
)

const (
	labelParent     = ".."
	labelThisFolder = "[select this folder]"
)

type browseAction int

const (
	actionEnter browseAction = iota
	actionPick
	actionUp
)

type browseChoice struct {
	action browseAction
	entry  platform.DirEntry
}

// Browser walks the filesystem adapter with select dialogs.
type Browser struct {
	fs      *platform.FS
	dialogs command.Dialogs
	icons   func(name string) string
	dir     platform.URI
}

// NewBrowser starts browsing at root.
func NewBrowser(fs *platform.FS, dialogs command.Dialogs, icons func(string) string, root string) (*Browser, error) {
	dir, err := platform.ParseURI(root)
	if err != nil {
		return nil, err
	}
	return &Browser{fs: fs, dialogs: dialogs, icons: icons, dir: dir}, nil
}

var _ command.FileBrowser = (*Browser)(nil)

// Dir returns the folder the next browse starts in.
func (b *Browser) Dir() string { return b.dir.Path }

// SetDir moves the browser to uri.
func (b *Browser) SetDir(uri string) error {
	dir, err := platform.ParseURI(uri)
	if err != nil {
		return err
	}
	b.dir = dir
	return nil
}

// Browse implements command.FileBrowser. Selections carry plain paths.
func (b *Browser) Browse(ctx context.Context, mode command.BrowseMode, accept func(string) bool) (command.Selection, error) {
	for {
		options, err := b.options(ctx, mode)
		if err != nil {
			return command.Selection{}, err
		}
		title := "Open file: " + b.dir.Path
		if mode == command.BrowseFolder {
			title = "Select folder: " + b.dir.Path
		}

		choice, err := b.dialogs.Select(ctx, title, options, command.SelectConfig{})
		if err != nil {
			return command.Selection{}, err
		}
		c, _ := choice.Value.(browseChoice)

		switch c.action {
		case actionUp:
			b.dir = b.dir.Dir()
		case actionEnter:
			b.dir = c.entry.URI
		case actionPick:
			sel := command.Selection{URI: c.entry.URI.Path, Name: c.entry.Name}
			if accept != nil && !accept(sel.URI) {
				continue
			}
			logger.DebugTagf("tui", "browser picked %s", sel.URI)
			return sel, nil
		}
	}
}

func (b *Browser) options(ctx context.Context, mode command.BrowseMode) ([]command.Option, error) {
	h, err := b.fs.Open(ctx, b.dir.String())
	if err != nil {
		return nil, err
	}
	entries, err := h.List(ctx)
	if err != nil {
		if errors.Is(err, platform.ErrCancelled) {
			return nil, err
		}
		// An unreadable folder still lets the user walk back up.
		logger.Warnf("Browser: cannot list %s: %v", b.dir.Path, err)
		entries = nil
	}

	var options []command.Option
	if mode == command.BrowseFolder {
		options = append(options, command.Option{
			Value: browseChoice{action: actionPick, entry: platform.DirEntry{Name: b.dir.Base(), URI: b.dir, IsDir: true}},
			Label: labelThisFolder,
			Icon:  lang.FolderIcon,
		})
	}
	if b.dir.Path != "/" {
		options = append(options, command.Option{Value: browseChoice{action: actionUp}, Label: labelParent, Icon: lang.FolderIcon})
	}
	for _, e := range entries {
		switch {
		case e.IsDir:
			options = append(options, command.Option{Value: browseChoice{action: actionEnter, entry: e}, Label: e.Name + "/", Icon: lang.FolderIcon})
		case mode == command.BrowseFile:
			icon := lang.DefaultIcon
			if b.icons != nil {
				icon = b.icons(e.Name)
			}
			options = append(options, command.Option{Value: browseChoice{action: actionPick, entry: e}, Label: e.Name, Icon: icon})
		}
	}
	return options, nil
}
