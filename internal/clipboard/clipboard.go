// Package clipboard performs copy, cut, paste and select-all on session files.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	sysclip "github.com/atotto/clipboard"

	"github.com/bethropolis/tidepad/internal/logger"
	"github.com/bethropolis/tidepad/internal/platform"
	"github.com/bethropolis/tidepad/internal/session"
	"github.com/bethropolis/tidepad/internal/types"
)

// Action is a clipboard operation.
type Action string

const (
	ActionCopy      Action = "copy"
	ActionCut       Action = "cut"
	ActionPaste     Action = "paste"
	ActionSelectAll Action = "select all"
)

// ErrReadOnly is returned when cut or paste targets a read-only file.
var ErrReadOnly = errors.New("clipboard: file is read-only")

// Backend stores clipboard text.
type Backend interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// Register is an in-process clipboard.
type Register struct {
	mu   sync.Mutex
	text string
}

// ReadAll implements Backend.
func (r *Register) ReadAll() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text, nil
}

// WriteAll implements Backend.
func (r *Register) WriteAll(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = text
	return nil
}

// System is the OS clipboard.
type System struct{}

// ReadAll implements Backend.
func (System) ReadAll() (string, error) { return sysclip.ReadAll() }

// WriteAll implements Backend.
func (System) WriteAll(text string) error { return sysclip.WriteAll(text) }

// NewBackend returns the system clipboard when requested and available,
// otherwise an in-process register.
func NewBackend(useSystem bool) Backend {
	if useSystem && !sysclip.Unsupported {
		return System{}
	}
	if useSystem {
		logger.Warnf("Clipboard: system clipboard unsupported, using internal register")
	}
	return &Register{}
}

// Manager applies clipboard actions to a file's buffer.
type Manager struct {
	backend Backend
}

// NewManager creates a manager over backend.
func NewManager(backend Backend) *Manager {
	return &Manager{backend: backend}
}

// Perform runs action against f.
func (m *Manager) Perform(f *session.File, action Action) error {
	if f == nil {
		return fmt.Errorf("clipboard %s: no active file", action)
	}
	switch action {
	case ActionCopy:
		return m.copy(f)
	case ActionCut:
		return m.cut(f)
	case ActionPaste:
		return m.paste(f)
	case ActionSelectAll:
		f.Selection = types.Range{Start: types.Position{}, End: f.Buffer.End()}
		f.Cursor = f.Selection.End
		return nil
	default:
		return fmt.Errorf("clipboard %q: %w", action, platform.ErrUnsupported)
	}
}

func (m *Manager) copy(f *session.File) error {
	if !f.HasSelection() {
		return nil
	}
	text := f.Buffer.TextRange(f.Selection)
	if err := m.backend.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard copy: %w", err)
	}
	logger.DebugTagf("clipboard", "copied %d bytes", len(text))
	return nil
}

func (m *Manager) cut(f *session.File) error {
	if !f.HasSelection() {
		return nil
	}
	if !f.Editable {
		return ErrReadOnly
	}
	if err := m.copy(f); err != nil {
		return err
	}
	sel := f.Selection.Normalized()
	if err := f.Buffer.Delete(sel); err != nil {
		return fmt.Errorf("clipboard cut: %w", err)
	}
	f.Cursor = sel.Start
	f.ClearSelection()
	f.Unsaved = true
	return nil
}

func (m *Manager) paste(f *session.File) error {
	if !f.Editable {
		return ErrReadOnly
	}
	text, err := m.backend.ReadAll()
	if err != nil {
		return fmt.Errorf("clipboard paste: %w", err)
	}
	if text == "" {
		return nil
	}
	at := f.Cursor
	if f.HasSelection() {
		sel := f.Selection.Normalized()
		if err := f.Buffer.Delete(sel); err != nil {
			return fmt.Errorf("clipboard paste: %w", err)
		}
		at = sel.Start
	}
	end, err := f.Buffer.Insert(at, []byte(text))
	if err != nil {
		return fmt.Errorf("clipboard paste: %w", err)
	}
	f.Cursor = end
	f.ClearSelection()
	f.Unsaved = true
	logger.DebugTagf("clipboard", "pasted %d bytes", len(text))
	return nil
}
