package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidepad/internal/platform"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want Command
		ok   bool
	}{
		{"save", Save, true},
		{"save-as", SaveAs, true},
		{"select all", SelectAll, true},
		{"select-all", SelectAll, true},
		{"  Next-File ", NextFile, true},
		{"github", GitHub, true},
		{"unknown", Unknown, false},
		{"launch-rockets", Unknown, false},
		{"", Unknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommandNamesRoundTrip(t *testing.T) {
	for _, c := range All() {
		got, ok := Parse(c.String())
		require.True(t, ok, c.String())
		assert.Equal(t, c, got)
	}
	assert.Len(t, All(), int(commandCount)-1)
	assert.Equal(t, "unknown", Command(-1).String())
}

func TestEveryCommandHasHandler(t *testing.T) {
	h := newHarness(t)
	for _, c := range All() {
		assert.True(t, h.dispatcher.Handles(c), c.String())
	}
	assert.False(t, h.dispatcher.Handles(Unknown))
}

func TestDispatchCancellationIsSilent(t *testing.T) {
	h := newHarness(t)
	h.dialogs.err = platform.ErrCancelled

	res := h.dispatcher.Dispatch(context.Background(), NewFile)

	assert.Equal(t, StatusCancelled, res.Status)
	assert.NoError(t, res.Err)
	assert.Empty(t, h.notifier.alerts)
	assert.Empty(t, h.notifier.toasts)
	assert.Zero(t, h.session.Ring().Len())
}

func TestDispatchCancelledPlatformCode(t *testing.T) {
	h := newHarness(t)
	h.browser.err = &platform.Error{Op: "pick", Code: platform.CodeCancelled}

	res := h.dispatcher.Dispatch(context.Background(), OpenFile)

	assert.Equal(t, StatusCancelled, res.Status)
	assert.Empty(t, h.notifier.alerts)
}

func TestDispatchReportsPlatformCode(t *testing.T) {
	h := newHarness(t)

	res := h.dispatcher.Dispatch(context.Background(), OpenFile, "/missing.txt")

	require.Equal(t, StatusError, res.Status)
	code, ok := platform.Code(res.Err)
	require.True(t, ok)
	assert.Equal(t, platform.CodeNotFound, code)
	require.Len(t, h.notifier.alerts, 1)
	assert.Equal(t, alert{title: "ERROR", body: "unable to open file. file not found"}, h.notifier.alerts[0])
	assert.Equal(t, h.notifier.alerts[0].body, res.Message)
}

func TestDispatchNoOpWithoutActiveFile(t *testing.T) {
	h := newHarness(t)
	for _, c := range []Command{Save, SaveAs, Copy, Cut, Paste, SelectAll, Goto, ReadOnly, Encoding, Syntax, Find, Replace, NextFile, PrevFile} {
		res := h.dispatcher.Dispatch(context.Background(), c)
		assert.Equal(t, StatusNoOp, res.Status, c.String())
	}
	assert.Empty(t, h.notifier.alerts)
	assert.Empty(t, h.notifier.toasts)
}

func TestDispatchName(t *testing.T) {
	h := newHarness(t)

	res := h.dispatcher.DispatchName(context.Background(), "open", "help")
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, Open, res.Command)
	assert.Equal(t, []string{"help"}, h.pages.opened)

	res = h.dispatcher.DispatchName(context.Background(), "teleport")
	assert.Equal(t, StatusError, res.Status)
	assert.True(t, errors.Is(res.Err, ErrUnknownCommand))
	assert.Len(t, h.notifier.toasts, 1)
}

func TestRegisterOverridesHandler(t *testing.T) {
	h := newHarness(t)
	called := false
	require.NoError(t, h.dispatcher.Register(Console, func(ctx context.Context, env *Env, args []string) error {
		called = true
		return errors.New("boom")
	}))

	res := h.dispatcher.Dispatch(context.Background(), Console)

	assert.True(t, called)
	assert.Equal(t, StatusError, res.Status)
	require.Len(t, h.notifier.alerts, 1)
	assert.Equal(t, alert{title: "ERROR", body: "boom"}, h.notifier.alerts[0])

	assert.ErrorIs(t, h.dispatcher.Register(Unknown, nil), ErrUnknownCommand)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "no-op", StatusNoOp.String())
	assert.Equal(t, "cancelled", StatusCancelled.String())
	assert.Equal(t, "error", StatusError.String())
}
