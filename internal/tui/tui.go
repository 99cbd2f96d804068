// internal/tui/tui.go
package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidepad/internal/logger"
	"github.com/bethropolis/tidepad/internal/platform"
	"github.com/bethropolis/tidepad/internal/theme"
)

// TUI manages the terminal screen using tcell. Input events are forwarded by
// a single poll goroutine into a channel; everything else runs on the
// caller's goroutine.
type TUI struct {
	screen tcell.Screen
	theme  *theme.Theme
	events chan tcell.Event

	// redraw paints the base view before overlays are drawn.
	redraw func()

	quit     chan struct{}
	stopOnce sync.Once
}

// New creates and initializes a TUI on the real terminal.
func New(th *theme.Theme) (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s, th)
}

// NewWithScreen initializes a TUI on s, e.g. a tcell.SimulationScreen.
func NewWithScreen(s tcell.Screen, th *theme.Theme) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	if th == nil {
		th = theme.DevComfortDark()
	}
	s.SetStyle(th.GetStyle("Default"))
	return &TUI{
		screen: s,
		theme:  th,
		events: make(chan tcell.Event, 64),
		quit:   make(chan struct{}),
	}, nil
}

// Start launches the poll goroutine.
func (t *TUI) Start() {
	go t.poll()
}

func (t *TUI) poll() {
	defer close(t.events)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			logger.DebugTagf("tui", "event poll stopped")
			return
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

// Events is the stream of terminal events. It is closed after Close.
func (t *TUI) Events() <-chan tcell.Event {
	return t.events
}

// NextEvent blocks for the next event. A cancelled ctx or a closed stream are
// reported as cancellations.
func (t *TUI) NextEvent(ctx context.Context) (tcell.Event, error) {
	select {
	case <-ctx.Done():
		return nil, &platform.Error{Op: "input", Code: platform.CodeCancelled, Err: ctx.Err()}
	case ev, ok := <-t.events:
		if !ok {
			return nil, platform.ErrCancelled
		}
		if _, resized := ev.(*tcell.EventResize); resized {
			t.screen.Sync()
		}
		return ev, nil
	}
}

// SetRedraw installs the function that paints the base view.
func (t *TUI) SetRedraw(fn func()) {
	t.redraw = fn
}

// Redraw paints the base view without showing it.
func (t *TUI) Redraw() {
	if t.redraw != nil {
		t.redraw()
	}
}

// Close finalizes the tcell screen.
func (t *TUI) Close() {
	t.stopOnce.Do(func() {
		close(t.quit)
		t.screen.Fini()
	})
}

// Clear clears the entire screen.
func (t *TUI) Clear() {
	t.screen.Clear()
}

// Show makes the changes visible.
func (t *TUI) Show() {
	t.screen.Show()
}

// Size returns the width and height of the terminal screen.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// Style returns a named style of the active theme.
func (t *TUI) Style(name string) tcell.Style {
	return t.theme.GetStyle(name)
}

// Screen provides direct access to the tcell screen.
func (t *TUI) Screen() tcell.Screen {
	return t.screen
}

// Post queues ev as if the terminal had produced it. It blocks while the
// queue is full and must not be called after Close.
func (t *TUI) Post(ev tcell.Event) {
	t.events <- ev
}
