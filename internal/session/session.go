// Package session owns the open files, the active file and the sidebar
// folders. It is the explicit context command handlers operate on.
package session

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bethropolis/tidepad/internal/buffer"
	"github.com/bethropolis/tidepad/internal/encoding"
	"github.com/bethropolis/tidepad/internal/event"
	"github.com/bethropolis/tidepad/internal/highlighter/lang"
	"github.com/bethropolis/tidepad/internal/logger"
	"github.com/bethropolis/tidepad/internal/platform"
)

// Options configures a Session.
type Options struct {
	FS              *platform.FS
	Events          *event.Manager
	Languages       *lang.Registry
	DefaultEncoding string
}

// Folder is a directory shown in the sidebar.
type Folder struct {
	URI  string
	Name string
}

// NewFileOptions describes an in-memory file to create.
type NewFileOptions struct {
	Text     string
	Unsaved  bool
	Type     FileType
	Encoding string
}

// OpenOptions describes a file to load through the filesystem adapter.
// Exactly one of URI and ContentURI is set.
type OpenOptions struct {
	URI        string
	ContentURI string
	Name       string
}

// Session is the editor state shared by all command handlers. It is not safe
// for concurrent use; the app touches it from a single loop goroutine.
type Session struct {
	ring            *Ring
	fs              *platform.FS
	events          *event.Manager
	langs           *lang.Registry
	defaultEncoding string
	folders         []Folder
	seq             int
}

// New creates an empty session.
func New(opts Options) *Session {
	enc := opts.DefaultEncoding
	if enc == "" {
		enc = encoding.Default
	}
	langs := opts.Languages
	if langs == nil {
		langs = lang.NewRegistry()
	}
	return &Session{
		ring:            NewRing(),
		fs:              opts.FS,
		events:          opts.Events,
		langs:           langs,
		defaultEncoding: enc,
	}
}

// Ring exposes the open-file ring.
func (s *Session) Ring() *Ring { return s.ring }

// FS exposes the filesystem adapter.
func (s *Session) FS() *platform.FS { return s.fs }

// Languages exposes the language registry.
func (s *Session) Languages() *lang.Registry { return s.langs }

// ActiveFile returns the focused file, nil when nothing is open.
func (s *Session) ActiveFile() *File { return s.ring.Active() }

// Files returns the open files in tab order.
func (s *Session) Files() []*File { return s.ring.Files() }

// Folders returns the sidebar folders.
func (s *Session) Folders() []Folder {
	out := make([]Folder, len(s.folders))
	copy(out, s.folders)
	return out
}

func (s *Session) nextID() FileID {
	s.seq++
	return FileID("file-" + strconv.Itoa(s.seq))
}

func (s *Session) add(f *File) {
	if err := s.ring.Add(f); err != nil {
		// ids come from nextID, a clash is a programming error
		panic(err)
	}
	s.events.Dispatch(event.TypeFileAdded, event.FileData{FileID: string(f.ID), Name: f.Name})
	if _, err := s.ring.SwitchTo(f.ID); err == nil {
		s.events.Dispatch(event.TypeFileSwitched, event.FileData{FileID: string(f.ID), Name: f.Name})
	}
}

// AddNewFile creates an in-memory file, adds it to the ring and activates it.
func (s *Session) AddNewFile(name string, opts NewFileOptions) *File {
	enc := opts.Encoding
	if enc == "" {
		enc = s.defaultEncoding
	}
	typ := opts.Type
	if typ == "" {
		typ = TypeRegular
	}
	f := &File{
		ID:       s.nextID(),
		Name:     name,
		Type:     typ,
		Editable: true,
		Unsaved:  opts.Unsaved,
		Encoding: enc,
		Mode:     s.langs.ModeFor(name),
		Buffer:   buffer.NewSliceBufferFromString(opts.Text),
	}
	s.add(f)
	logger.DebugTagf("session", "added new file %s (%s)", f.Name, f.ID)
	return f
}

// FindByTarget returns the open file reading from uri, or nil. Bare paths
// and file:// URIs naming the same file match.
func (s *Session) FindByTarget(uri string) *File {
	uri = platform.CanonicalURI(uri)
	for _, f := range s.ring.items {
		if f.Target() == uri {
			return f
		}
	}
	return nil
}

// Open loads a file through the filesystem adapter and activates it. A file
// that is already open is activated instead of being loaded twice.
func (s *Session) Open(ctx context.Context, opts OpenOptions) (*File, error) {
	if opts.URI != "" {
		opts.URI = platform.CanonicalURI(opts.URI)
	}
	if opts.ContentURI != "" {
		opts.ContentURI = platform.CanonicalURI(opts.ContentURI)
	}
	target := opts.URI
	if target == "" {
		target = opts.ContentURI
	}
	if target == "" {
		return nil, fmt.Errorf("session: open: no uri given")
	}
	if existing := s.FindByTarget(target); existing != nil {
		if err := s.SwitchFile(existing.ID); err != nil {
			return nil, err
		}
		return existing, nil
	}

	h, err := s.fs.Open(ctx, target)
	if err != nil {
		return nil, err
	}
	data, err := h.ReadFile(ctx)
	if err != nil {
		return nil, err
	}
	text, err := encoding.Decode(data, s.defaultEncoding)
	if err != nil {
		return nil, fmt.Errorf("session: open %s: %w", target, err)
	}

	name := opts.Name
	if name == "" {
		name = h.URI().Base()
	}
	f := &File{
		ID:         s.nextID(),
		Name:       name,
		Type:       TypeRegular,
		Editable:   true,
		Encoding:   s.defaultEncoding,
		Mode:       s.langs.ModeFor(name),
		URI:        opts.URI,
		ContentURI: opts.ContentURI,
		Buffer:     buffer.NewSliceBufferFromString(text),
	}
	if opts.URI != "" {
		f.Location = h.URI().Dir().String()
	}
	s.add(f)
	logger.DebugTagf("session", "opened %s as %s", target, f.ID)
	return f, nil
}

// SwitchFile activates the file with id.
func (s *Session) SwitchFile(id FileID) error {
	f, err := s.ring.SwitchTo(id)
	if err != nil {
		return err
	}
	s.events.Dispatch(event.TypeFileSwitched, event.FileData{FileID: string(f.ID), Name: f.Name})
	return nil
}

// NextFile activates the file after the active one.
func (s *Session) NextFile() (*File, error) {
	f, err := s.ring.Next()
	if err != nil {
		return nil, err
	}
	s.events.Dispatch(event.TypeFileSwitched, event.FileData{FileID: string(f.ID), Name: f.Name})
	return f, nil
}

// PreviousFile activates the file before the active one.
func (s *Session) PreviousFile() (*File, error) {
	f, err := s.ring.Previous()
	if err != nil {
		return nil, err
	}
	s.events.Dispatch(event.TypeFileSwitched, event.FileData{FileID: string(f.ID), Name: f.Name})
	return f, nil
}

// CloseFile removes a file from the ring.
func (s *Session) CloseFile(id FileID) error {
	f, err := s.ring.Remove(id)
	if err != nil {
		return err
	}
	s.events.Dispatch(event.TypeFileClosed, event.FileData{FileID: string(f.ID), Name: f.Name})
	if active := s.ring.Active(); active != nil {
		s.events.Dispatch(event.TypeFileSwitched, event.FileData{FileID: string(active.ID), Name: active.Name})
	}
	return nil
}

// AddFolder puts a directory in the sidebar. Adding a folder twice is a no-op.
func (s *Session) AddFolder(ctx context.Context, uri, name string) (Folder, error) {
	h, err := s.fs.Open(ctx, uri)
	if err != nil {
		return Folder{}, err
	}
	isDir, err := h.IsDir()
	if err != nil {
		return Folder{}, err
	}
	if !isDir {
		return Folder{}, &platform.Error{Op: "add folder", Path: uri, Code: platform.CodeTypeMismatch}
	}
	canonical := h.URI().String()
	if name == "" {
		name = h.URI().Base()
	}
	for _, existing := range s.folders {
		if existing.URI == canonical {
			return existing, nil
		}
	}
	folder := Folder{URI: canonical, Name: name}
	s.folders = append(s.folders, folder)
	s.events.Dispatch(event.TypeFolderAdded, event.FolderAddedData{URI: folder.URI, Name: folder.Name})
	return folder, nil
}

// Update notifies views that file state changed.
func (s *Session) Update(f *File) {
	if f == nil {
		return
	}
	s.events.Dispatch(event.TypeFileUpdated, event.FileData{FileID: string(f.ID), Name: f.Name})
}

// Rename renames a file. Path-backed files are renamed on disk; in-memory
// files only change their name; content-addressed files cannot be renamed.
func (s *Session) Rename(ctx context.Context, f *File, newName string) error {
	oldName := f.Name
	switch {
	case f.IsContentAddressed():
		return fmt.Errorf("session: rename %s: %w", f.Name, platform.ErrUnsupported)
	case f.URI != "":
		h, err := s.fs.Open(ctx, f.URI)
		if err != nil {
			return err
		}
		target, err := h.RenameTo(ctx, newName)
		if err != nil {
			return err
		}
		f.URI = target.String()
		f.Location = target.Dir().String()
	}
	f.Name = newName
	s.events.Dispatch(event.TypeFileRenamed, event.FileRenamedData{FileID: string(f.ID), OldName: oldName, NewName: newName})
	return nil
}

// Save writes the file's text, encoded in its encoding, to its target.
func (s *Session) Save(ctx context.Context, f *File) error {
	if f.IsInMemory() {
		return fmt.Errorf("session: save %s: no location", f.Name)
	}
	return s.write(ctx, f, f.Target())
}

// SaveAs writes the file into folderURI under name and makes that its target.
func (s *Session) SaveAs(ctx context.Context, f *File, folderURI, name string) error {
	dir, err := platform.ParseURI(folderURI)
	if err != nil {
		return err
	}
	target := dir.Join(name)
	if err := s.write(ctx, f, target.String()); err != nil {
		return err
	}
	if f.Name != name {
		oldName := f.Name
		f.Name = name
		s.events.Dispatch(event.TypeFileRenamed, event.FileRenamedData{FileID: string(f.ID), OldName: oldName, NewName: name})
	}
	f.URI = target.String()
	f.ContentURI = ""
	f.Location = dir.String()
	return nil
}

func (s *Session) write(ctx context.Context, f *File, target string) error {
	data, err := encoding.Encode(f.Text(), f.Encoding)
	if err != nil {
		return err
	}
	h, err := s.fs.Open(ctx, target)
	if err != nil {
		return err
	}
	if err := h.WriteFile(ctx, data); err != nil {
		return err
	}
	f.Unsaved = false
	f.Buffer.SetModified(false)
	s.events.Dispatch(event.TypeFileSaved, event.FileData{FileID: string(f.ID), Name: f.Name})
	logger.DebugTagf("session", "saved %s (%d bytes, %s)", target, len(data), f.Encoding)
	return nil
}
