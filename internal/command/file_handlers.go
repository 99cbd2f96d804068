package command

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/bethropolis/tidepad/internal/logger"
	"github.com/bethropolis/tidepad/internal/platform"
	"github.com/bethropolis/tidepad/internal/recents"
	"github.com/bethropolis/tidepad/internal/session"
)

// clearRecents is the sentinel value of the "clear" row in the recents menu.
type clearRecents struct{}

var lineBreaks = strings.NewReplacer("\r", "", "\n", "")

func removeLineBreaks(s string) string {
	return lineBreaks.Replace(s)
}

func activeFile(env *Env) (*session.File, error) {
	f := env.Session.ActiveFile()
	if f == nil {
		return nil, errNoOp
	}
	return f, nil
}

func recordFile(env *Env, uri string) {
	if env.Recents == nil {
		return
	}
	if err := env.Recents.RecordFile(uri); err != nil {
		logger.Warnf("Recents: could not record %s: %v", uri, err)
	}
}

func recordFolder(env *Env, uri string) {
	if env.Recents == nil {
		return
	}
	if err := env.Recents.RecordFolder(uri); err != nil {
		logger.Warnf("Recents: could not record %s: %v", uri, err)
	}
}

// openTarget opens a path or content URI in the session and records it.
func openTarget(ctx context.Context, env *Env, uri, name string, isContent bool) error {
	opts := session.OpenOptions{Name: name}
	if isContent || strings.HasPrefix(uri, platform.SchemeContent+"://") {
		opts.ContentURI = uri
	} else {
		opts.URI = uri
	}
	f, err := env.Session.Open(ctx, opts)
	if err != nil {
		return fail(msgUnableToOpenFile, err)
	}
	recordFile(env, f.Target())
	return nil
}

// addFolder puts a folder in the sidebar and records it.
func addFolder(ctx context.Context, env *Env, uri, name string) error {
	folder, err := env.Session.AddFolder(ctx, uri, name)
	if err != nil {
		return fail(msgUnableToOpenDir, err)
	}
	recordFolder(env, folder.URI)
	env.Notifier.Toast(msgFolderAdded)
	env.Session.Update(env.Session.ActiveFile())
	return nil
}

func fileAllowed(env *Env) func(uri string) bool {
	return func(uri string) bool {
		ext := strings.TrimPrefix(path.Ext(uri), ".")
		for _, blocked := range env.Settings.FilesNotAllowed {
			if strings.EqualFold(blocked, ext) {
				env.Notifier.Alert(context.Background(), strings.ToUpper(titleNotice),
					fmt.Sprintf("'%s' %s", ext, msgFileNotSupported))
				return false
			}
		}
		return true
	}
}

func handleOpenFile(ctx context.Context, env *Env, args []string) error {
	if len(args) > 0 {
		return openTarget(ctx, env, args[0], "", false)
	}
	sel, err := env.Browser.Browse(ctx, BrowseFile, fileAllowed(env))
	if err != nil {
		return fail(msgUnableToOpenFile, err)
	}
	return openTarget(ctx, env, sel.URI, sel.Name, sel.IsContentURI)
}

func handleOpenFolder(ctx context.Context, env *Env, args []string) error {
	if len(args) > 0 {
		return addFolder(ctx, env, args[0], "")
	}
	sel, err := env.Browser.Browse(ctx, BrowseFolder, nil)
	if err != nil {
		return fail(msgUnableToOpenDir, err)
	}
	return addFolder(ctx, env, sel.URI, sel.Name)
}

func handleNewFile(ctx context.Context, env *Env, args []string) error {
	name, err := env.Dialogs.Prompt(ctx, msgEnterFileName, msgNewFile, InputFilename, Validation{
		Match:    FileNamePattern,
		Required: true,
	})
	if err != nil {
		return err
	}
	name = removeLineBreaks(name)
	if name == "" {
		return errNoOp
	}
	env.Session.AddNewFile(name, session.NewFileOptions{Unsaved: false})
	return nil
}

func handleNextFile(ctx context.Context, env *Env, args []string) error {
	if _, err := env.Session.NextFile(); err != nil {
		if errors.Is(err, session.ErrEmptyRing) {
			return errNoOp
		}
		return err
	}
	return nil
}

func handlePrevFile(ctx context.Context, env *Env, args []string) error {
	if _, err := env.Session.PreviousFile(); err != nil {
		if errors.Is(err, session.ErrEmptyRing) {
			return errNoOp
		}
		return err
	}
	return nil
}

func handleRecent(ctx context.Context, env *Env, args []string) error {
	var options []Option
	for entry := range env.Recents.List() {
		options = append(options, Option{Value: entry, Label: entry.Label, Icon: entry.Icon})
	}
	options = append(options, Option{Value: clearRecents{}, Label: msgClear, Icon: iconClear})

	choice, err := env.Dialogs.Select(ctx, msgOpenRecent, options, SelectConfig{TextTransform: false})
	if err != nil {
		return err
	}

	switch v := choice.Value.(type) {
	case recents.Entry:
		if v.Kind == recents.KindDir {
			return addFolder(ctx, env, v.Value, "")
		}
		return openTarget(ctx, env, v.Value, "", false)
	case clearRecents:
		if err := env.Recents.Clear(); err != nil {
			return fail("unable to clear recents", err)
		}
		return nil
	default:
		return errNoOp
	}
}

func handleRename(ctx context.Context, env *Env, args []string) error {
	f := env.Session.ActiveFile()
	if len(args) > 0 {
		var err error
		if f, err = env.Session.Ring().Get(session.FileID(args[0])); err != nil {
			return err
		}
	}
	if f == nil {
		return errNoOp
	}

	newName, err := env.Dialogs.Prompt(ctx, msgRename, f.Name, InputFilename, Validation{Match: FileNamePattern})
	if err != nil {
		return err
	}
	newName = removeLineBreaks(newName)
	if newName == "" || newName == f.Name {
		return errNoOp
	}

	if f.IsContentAddressed() {
		return notice(msgUnableToRename)
	}
	pathBacked := f.URI != ""
	if err := env.Session.Rename(ctx, f, newName); err != nil {
		return fail(msgUnableToRename, err)
	}
	if pathBacked || f.Type == session.TypeRegular {
		env.Notifier.Toast(msgFileRenamed)
	}
	env.Session.Update(f)
	return nil
}

func handleSave(ctx context.Context, env *Env, args []string) error {
	f, err := activeFile(env)
	if err != nil {
		return err
	}
	if f.IsInMemory() {
		return saveAs(ctx, env, f)
	}
	if err := env.Session.Save(ctx, f); err != nil {
		return fail(msgUnableToSave, err)
	}
	recordFile(env, f.Target())
	env.Notifier.Toast(msgFileSaved)
	env.Session.Update(f)
	return nil
}

func handleSaveAs(ctx context.Context, env *Env, args []string) error {
	f, err := activeFile(env)
	if err != nil {
		return err
	}
	return saveAs(ctx, env, f)
}

func saveAs(ctx context.Context, env *Env, f *session.File) error {
	folder, err := env.Browser.Browse(ctx, BrowseFolder, nil)
	if err != nil {
		return fail(msgUnableToSave, err)
	}
	name, err := env.Dialogs.Prompt(ctx, msgEnterFileName, f.Name, InputFilename, Validation{
		Match:    FileNamePattern,
		Required: true,
	})
	if err != nil {
		return err
	}
	name = removeLineBreaks(name)
	if err := env.Session.SaveAs(ctx, f, folder.URI, name); err != nil {
		return fail(msgUnableToSave, err)
	}
	recordFile(env, f.Target())
	env.Notifier.Toast(msgFileSaved)
	env.Session.Update(f)
	return nil
}
