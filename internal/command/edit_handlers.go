package command

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/bethropolis/tidepad/internal/clipboard"
	"github.com/bethropolis/tidepad/internal/encoding"
	"github.com/bethropolis/tidepad/internal/highlighter/lang"
	"github.com/bethropolis/tidepad/internal/logger"
	"github.com/bethropolis/tidepad/internal/types"
)

var lineNumberPattern = regexp.MustCompile(`^\d+$`)

func clipboardHandler(action clipboard.Action) Handler {
	return func(ctx context.Context, env *Env, args []string) error {
		f, err := activeFile(env)
		if err != nil {
			return err
		}
		if err := env.Clipboard.Perform(f, action); err != nil {
			if errors.Is(err, clipboard.ErrReadOnly) {
				return notice(msgReadOnly)
			}
			return fail(fmt.Sprintf("unable to %s", action), err)
		}
		env.Session.Update(f)
		return nil
	}
}

// handleEncoding re-reads the active file's text under another codec. The
// text is encoded as UTF-8 and decoded with the chosen codec, after which the
// file counts as saved.
func handleEncoding(ctx context.Context, env *Env, args []string) error {
	f, err := activeFile(env)
	if err != nil {
		return err
	}

	codec := ""
	if len(args) > 0 {
		codec = args[0]
	} else {
		options := make([]Option, 0, len(env.Settings.Encodings))
		for _, name := range env.Settings.Encodings {
			options = append(options, Option{Value: name, Label: name})
		}
		choice, err := env.Dialogs.Select(ctx, msgEncoding, options, SelectConfig{Default: f.Encoding})
		if err != nil {
			return err
		}
		codec, _ = choice.Value.(string)
	}
	if codec == "" {
		return errNoOp
	}

	text, err := encoding.Convert(f.Text(), codec)
	if err != nil {
		return fail(msgUnsupportedCodec, err)
	}
	f.Encoding = codec
	f.SetText(text)
	f.Unsaved = false
	f.Buffer.SetModified(false)
	logger.DebugTagf("command", "%s now decoded as %s", f.Name, codec)
	env.Session.Update(f)
	return nil
}

func handleGoto(ctx context.Context, env *Env, args []string) error {
	f, err := activeFile(env)
	if err != nil {
		return err
	}

	raw := ""
	if len(args) > 0 {
		raw = args[0]
	} else {
		raw, err = env.Dialogs.Prompt(ctx, msgEnterLineNumber, "", InputNumber, Validation{
			Match:    lineNumberPattern,
			Required: true,
		})
		if err != nil {
			return err
		}
	}
	line, err := strconv.Atoi(raw)
	if err != nil {
		return fail("invalid line number", err)
	}
	if line < 1 {
		line = 1
	}

	f.Cursor = f.Buffer.Clamp(types.Position{Line: line - 1, Col: 0})
	f.ClearSelection()
	env.Session.Update(f)
	return nil
}

func handleReadOnly(ctx context.Context, env *Env, args []string) error {
	f, err := activeFile(env)
	if err != nil {
		return err
	}
	f.Editable = !f.Editable
	env.Session.Update(f)
	return nil
}

func handleFind(ctx context.Context, env *Env, args []string) error {
	f, err := activeFile(env)
	if err != nil {
		return err
	}
	return env.Finder.Open(ctx, f, false)
}

func handleReplace(ctx context.Context, env *Env, args []string) error {
	f, err := activeFile(env)
	if err != nil {
		return err
	}
	return env.Finder.Open(ctx, f, true)
}

// handleSyntax puts the active file in another language mode and reports the
// parse errors found under it.
func handleSyntax(ctx context.Context, env *Env, args []string) error {
	f, err := activeFile(env)
	if err != nil {
		return err
	}
	langs := env.Session.Languages()

	var chosen *lang.Language
	if len(args) > 0 {
		chosen = langs.ByMode(args[0])
	} else {
		var options []Option
		current := ""
		for _, l := range langs.All() {
			options = append(options, Option{Value: l, Label: l.Name, Icon: l.Icon})
			if l.Mode == f.Mode {
				current = l.Name
			}
		}
		choice, err := env.Dialogs.Select(ctx, msgSyntax, options, SelectConfig{Default: current})
		if err != nil {
			return err
		}
		chosen, _ = choice.Value.(*lang.Language)
	}
	if chosen == nil {
		return errNoOp
	}

	f.Mode = chosen.Mode
	env.Session.Update(f)

	count, err := chosen.CountErrors(ctx, []byte(f.Text()))
	if err != nil {
		logger.Warnf("Syntax: could not parse %s as %s: %v", f.Name, chosen.Name, err)
		return nil
	}
	if count > 0 {
		env.Notifier.Toast(fmt.Sprintf(msgSyntaxErrors, chosen.Name, count))
	}
	return nil
}

func handleConsole(ctx context.Context, env *Env, args []string) error {
	f, err := activeFile(env)
	if err != nil {
		return err
	}
	return env.Preview.Run(ctx, f, true)
}

func handleOpen(ctx context.Context, env *Env, args []string) error {
	if len(args) == 0 {
		return errNoOp
	}
	switch args[0] {
	case "settings":
		return env.Pages.Settings(ctx)
	case "help":
		return env.Pages.Help(ctx)
	default:
		return errNoOp
	}
}

func handleGitHub(ctx context.Context, env *Env, args []string) error {
	if !env.GitHub.Authenticated() {
		return env.GitHub.Login(ctx)
	}
	return env.GitHub.Open(ctx)
}
