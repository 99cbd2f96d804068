package tui

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/tidepad/internal/session"
	"github.com/bethropolis/tidepad/internal/types"
)

// StatusBar is the bottom line: file info, or a toast while one is showing.
type StatusBar struct {
	mu      sync.Mutex
	timeout time.Duration
	now     func() time.Time

	fileName  string
	mode      string
	encoding  string
	modified  bool
	readOnly  bool
	cursorPos types.Position

	tempMessage     string
	tempMessageTime time.Time
}

// NewStatusBar creates a status bar whose toasts last timeout.
func NewStatusBar(timeout time.Duration) *StatusBar {
	return &StatusBar{timeout: timeout, now: time.Now}
}

// SetFile copies the displayed fields from f. A nil f shows the empty state.
func (sb *StatusBar) SetFile(f *session.File) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if f == nil {
		sb.fileName, sb.mode, sb.encoding = "", "", ""
		sb.modified, sb.readOnly = false, false
		sb.cursorPos = types.Position{}
		return
	}
	sb.fileName = f.Name
	sb.mode = f.Mode
	sb.encoding = f.Encoding
	sb.modified = f.Unsaved || f.Buffer.IsModified()
	sb.readOnly = !f.Editable
	sb.cursorPos = f.Cursor
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...any) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Text returns what the bar currently shows and whether it is a toast.
func (sb *StatusBar) Text() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if !sb.tempMessageTime.IsZero() {
		if sb.now().Sub(sb.tempMessageTime) <= sb.timeout {
			return sb.tempMessage, true
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	return sb.defaultText(), false
}

func (sb *StatusBar) defaultText() string {
	if sb.fileName == "" {
		return "[No File]"
	}
	text := sb.fileName
	if sb.modified {
		text += " [Modified]"
	}
	if sb.readOnly {
		text += " [RO]"
	}
	return fmt.Sprintf("%s -- %s | %s | Ln %d, Col %d",
		text, sb.mode, sb.encoding, sb.cursorPos.Line+1, sb.cursorPos.Col+1)
}

// Draw renders the bar on row y.
func (sb *StatusBar) Draw(t *TUI, y int) {
	width, _ := t.Size()
	if width <= 0 {
		return
	}
	text, isToast := sb.Text()

	style := t.Style("StatusBar")
	if isToast {
		style = t.Style("StatusBar.Message")
	} else if sb.isModified() {
		style = t.Style("StatusBar.Modified")
	}
	fillRow(t.screen, 0, width, y, style)
	drawText(t.screen, 0, y, width, text, style)
}

func (sb *StatusBar) isModified() bool {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.modified
}
