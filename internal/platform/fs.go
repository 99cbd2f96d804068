package platform

import (
	"context"
	"io/fs"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// URI schemes understood by the adapter.
const (
	SchemeFile    = "file"
	SchemeContent = "content"
)

// URI is a parsed location. Content URIs are opaque handles that can be read
// and written but never renamed.
type URI struct {
	Scheme string
	Path   string
}

// ParseURI accepts "file:///a/b", "content://provider/x" or a bare path.
func ParseURI(raw string) (URI, error) {
	if raw == "" {
		return URI{}, &Error{Op: "parse", Path: raw, Code: CodeEncoding}
	}
	if !strings.Contains(raw, "://") {
		return URI{Scheme: SchemeFile, Path: path.Clean(raw)}, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return URI{}, &Error{Op: "parse", Path: raw, Code: CodeEncoding, Err: err}
	}
	switch u.Scheme {
	case SchemeFile:
		return URI{Scheme: SchemeFile, Path: path.Clean(u.Path)}, nil
	case SchemeContent:
		return URI{Scheme: SchemeContent, Path: path.Clean("/" + u.Host + u.Path)}, nil
	default:
		return URI{}, &Error{Op: "parse", Path: raw, Code: CodeTypeMismatch}
	}
}

// String renders the URI back in its canonical form.
func (u URI) String() string {
	if u.Scheme == SchemeContent {
		return "content:/" + u.Path
	}
	return (&url.URL{Scheme: SchemeFile, Path: u.Path}).String()
}

// CanonicalURI returns the canonical string form of raw, so a bare path and
// its file:// URI compare equal. Unparsable input is returned unchanged.
func CanonicalURI(raw string) string {
	u, err := ParseURI(raw)
	if err != nil {
		return raw
	}
	return u.String()
}

// IsContent reports whether the URI is content-addressed.
func (u URI) IsContent() bool { return u.Scheme == SchemeContent }

// Base returns the last element of the path.
func (u URI) Base() string { return path.Base(u.Path) }

// Dir returns the URI of the parent directory.
func (u URI) Dir() URI { return URI{Scheme: u.Scheme, Path: path.Dir(u.Path)} }

// Join returns a child URI.
func (u URI) Join(name string) URI {
	return URI{Scheme: u.Scheme, Path: path.Join(u.Path, name)}
}

// FS is the filesystem adapter used by the session and the file browser.
type FS struct {
	backend afero.Fs
}

// NewFS wraps an afero filesystem.
func NewFS(backend afero.Fs) *FS {
	return &FS{backend: backend}
}

// NewOsFS returns an adapter over the real filesystem.
func NewOsFS() *FS {
	return NewFS(afero.NewOsFs())
}

// Backend exposes the underlying afero filesystem.
func (f *FS) Backend() afero.Fs { return f.backend }

// Open resolves a URI into a handle. The target does not need to exist yet.
func (f *FS) Open(ctx context.Context, raw string) (*Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Op: "open", Path: raw, Code: CodeCancelled, Err: err}
	}
	u, err := ParseURI(raw)
	if err != nil {
		return nil, err
	}
	return &Handle{fs: f, uri: u}, nil
}

// Handle is an opened location.
type Handle struct {
	fs  *FS
	uri URI
}

// URI returns the location the handle points at.
func (h *Handle) URI() URI { return h.uri }

// Exists reports whether the target is present.
func (h *Handle) Exists() (bool, error) {
	ok, err := afero.Exists(h.fs.backend, h.uri.Path)
	return ok, wrap("stat", h.uri.Path, err)
}

// IsDir reports whether the target is a directory.
func (h *Handle) IsDir() (bool, error) {
	ok, err := afero.IsDir(h.fs.backend, h.uri.Path)
	return ok, wrap("stat", h.uri.Path, err)
}

// ReadFile returns the raw bytes of the target.
func (h *Handle) ReadFile(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Op: "read", Path: h.uri.Path, Code: CodeCancelled, Err: err}
	}
	data, err := afero.ReadFile(h.fs.backend, h.uri.Path)
	return data, wrap("read", h.uri.Path, err)
}

// WriteFile replaces the target's contents.
func (h *Handle) WriteFile(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return &Error{Op: "write", Path: h.uri.Path, Code: CodeCancelled, Err: err}
	}
	return wrap("write", h.uri.Path, afero.WriteFile(h.fs.backend, h.uri.Path, data, 0o644))
}

// RenameTo renames the target inside its directory and returns the new URI.
func (h *Handle) RenameTo(ctx context.Context, newName string) (URI, error) {
	if err := ctx.Err(); err != nil {
		return URI{}, &Error{Op: "rename", Path: h.uri.Path, Code: CodeCancelled, Err: err}
	}
	if h.uri.IsContent() {
		return URI{}, &Error{Op: "rename", Path: h.uri.Path, Code: CodeNoModificationAllowed, Err: ErrUnsupported}
	}
	if newName == "" || strings.ContainsRune(newName, '/') {
		return URI{}, &Error{Op: "rename", Path: newName, Code: CodeEncoding}
	}
	target := h.uri.Dir().Join(newName)
	if ok, _ := afero.Exists(h.fs.backend, target.Path); ok {
		return URI{}, &Error{Op: "rename", Path: target.Path, Code: CodePathExists}
	}
	if err := h.fs.backend.Rename(h.uri.Path, target.Path); err != nil {
		return URI{}, wrap("rename", h.uri.Path, err)
	}
	h.uri = target
	return target, nil
}

// DirEntry is one element of a directory listing.
type DirEntry struct {
	Name  string
	URI   URI
	IsDir bool
}

// List returns the directory's entries, folders first, then by name.
func (h *Handle) List(ctx context.Context) ([]DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Op: "list", Path: h.uri.Path, Code: CodeCancelled, Err: err}
	}
	infos, err := afero.ReadDir(h.fs.backend, h.uri.Path)
	if err != nil {
		return nil, wrap("list", h.uri.Path, err)
	}
	entries := make([]DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, DirEntry{
			Name:  info.Name(),
			URI:   h.uri.Join(info.Name()),
			IsDir: info.Mode()&fs.ModeDir != 0,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}
