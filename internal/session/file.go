package session

import (
	"github.com/bethropolis/tidepad/internal/buffer"
	"github.com/bethropolis/tidepad/internal/types"
)

// FileID is an opaque identifier, unique among open files.
type FileID string

// FileType distinguishes ordinary files from ones backed by other services.
type FileType string

const (
	TypeRegular FileType = "regular"
	TypeGit     FileType = "git"
)

// File is one open document.
type File struct {
	ID       FileID
	Name     string
	Type     FileType
	Editable bool
	Unsaved  bool
	Encoding string
	Mode     string

	// URI is set for files reached by path; ContentURI for content-addressed
	// files. Both empty means the file only exists in memory.
	URI        string
	ContentURI string

	// Location is the URI of the containing folder, empty when unknown.
	Location string

	Buffer    buffer.Buffer
	Cursor    types.Position
	Selection types.Range
}

// IsContentAddressed reports whether the file is reached by an opaque handle.
func (f *File) IsContentAddressed() bool {
	return f.ContentURI != ""
}

// IsInMemory reports whether the file has never been written anywhere.
func (f *File) IsInMemory() bool {
	return f.URI == "" && f.ContentURI == ""
}

// Target returns the URI the file is read from and written to.
func (f *File) Target() string {
	if f.URI != "" {
		return f.URI
	}
	return f.ContentURI
}

// Text returns the file's current in-memory text.
func (f *File) Text() string {
	return f.Buffer.String()
}

// SetText replaces the in-memory text and resets cursor and selection.
func (f *File) SetText(text string) {
	f.Buffer.SetText(text)
	f.Cursor = f.Buffer.Clamp(f.Cursor)
	f.Selection = types.Range{Start: f.Cursor, End: f.Cursor}
}

// HasSelection reports whether a non-empty selection is active.
func (f *File) HasSelection() bool {
	return !f.Selection.Empty()
}

// ClearSelection collapses the selection onto the cursor.
func (f *File) ClearSelection() {
	f.Selection = types.Range{Start: f.Cursor, End: f.Cursor}
}
