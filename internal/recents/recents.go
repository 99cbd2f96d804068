// Package recents keeps the bounded, most-recent-first history of opened
// files and folders behind the "open recent" menu.
package recents

import (
	"fmt"
	"iter"
	"net/url"
	"slices"
	"strings"

	"github.com/bethropolis/tidepad/internal/event"
	"github.com/bethropolis/tidepad/internal/highlighter/lang"
	"github.com/bethropolis/tidepad/internal/logger"
	"github.com/rivo/uniseg"
)

const (
	// DefaultMaxEntries caps each list when Options.MaxEntries is unset.
	DefaultMaxEntries = 20
	// DefaultLabelBudget is the label length above which paths are elided.
	DefaultLabelBudget = 20

	ellipsis = "..."
)

// Kind tags a recents entry.
type Kind string

const (
	KindFile Kind = "file"
	KindDir  Kind = "dir"
)

// Entry is one display-ready row of the recents menu.
type Entry struct {
	Kind  Kind
	Value string
	Label string
	Icon  string
}

// Options configures a Registry.
type Options struct {
	MaxEntries  int
	LabelBudget int
	// Icons resolves the icon hint for a file path. Nil uses lang.DefaultIcon.
	Icons func(path string) string
	// Canonical maps a value to the one spelling stored for its location, so
	// a bare path and its file:// URI share an entry. Nil keeps values as given.
	Canonical func(value string) string
	Events    *event.Manager
}

// Registry holds the two recents lists and writes every mutation through to
// its Store.
type Registry struct {
	store   Store
	opts    Options
	files   []string
	folders []string
}

// New loads both lists from store.
func New(store Store, opts Options) (*Registry, error) {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	if opts.LabelBudget <= 0 {
		opts.LabelBudget = DefaultLabelBudget
	}
	r := &Registry{store: store, opts: opts}

	var err error
	if r.files, err = r.load(KeyFiles); err != nil {
		return nil, err
	}
	if r.folders, err = r.load(KeyFolders); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) load(key string) ([]string, error) {
	values, ok, err := r.store.Load(key)
	if err != nil {
		return nil, fmt.Errorf("recents: load %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}
	// Stored lists may predate a smaller capacity or contain duplicates.
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = r.canonical(v); v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return truncate(out, r.opts.MaxEntries), nil
}

func (r *Registry) canonical(value string) string {
	if value == "" || r.opts.Canonical == nil {
		return value
	}
	return r.opts.Canonical(value)
}

func truncate(list []string, max int) []string {
	if len(list) > max {
		return list[:max]
	}
	return list
}

// moveToFront inserts value at the head of list, removing an earlier copy.
func moveToFront(list []string, value string, max int) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, value)
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return truncate(out, max)
}

// RecordFile moves path to the front of the recent files.
func (r *Registry) RecordFile(path string) error {
	if path = r.canonical(path); path == "" {
		return nil
	}
	r.files = moveToFront(r.files, path, r.opts.MaxEntries)
	return r.persist(KeyFiles, r.files, KindFile, path)
}

// RecordFolder moves path to the front of the recent folders.
func (r *Registry) RecordFolder(path string) error {
	if path = r.canonical(path); path == "" {
		return nil
	}
	r.folders = moveToFront(r.folders, path, r.opts.MaxEntries)
	return r.persist(KeyFolders, r.folders, KindDir, path)
}

func (r *Registry) persist(key string, values []string, kind Kind, value string) error {
	if err := r.store.Save(key, values); err != nil {
		return fmt.Errorf("recents: save %s: %w", key, err)
	}
	r.opts.Events.Dispatch(event.TypeRecentsChanged, event.RecentsChangedData{Kind: string(kind), Value: value})
	return nil
}

// Files returns the recent files, most recent first.
func (r *Registry) Files() []string { return slices.Clone(r.files) }

// Folders returns the recent folders, most recent first.
func (r *Registry) Folders() []string { return slices.Clone(r.folders) }

// Len returns the number of entries across both lists.
func (r *Registry) Len() int { return len(r.files) + len(r.folders) }

// List yields display entries, folders first then files. Each call walks a
// snapshot taken when the sequence starts.
func (r *Registry) List() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		folders := slices.Clone(r.folders)
		files := slices.Clone(r.files)
		for _, dir := range folders {
			if !yield(Entry{Kind: KindDir, Value: dir, Label: r.label(dir), Icon: lang.FolderIcon}) {
				return
			}
		}
		for _, file := range files {
			if !yield(Entry{Kind: KindFile, Value: file, Label: r.label(file), Icon: r.icon(file)}) {
				return
			}
		}
	}
}

func (r *Registry) icon(path string) string {
	if r.opts.Icons != nil {
		return r.opts.Icons(path)
	}
	return lang.DefaultIcon
}

func (r *Registry) label(value string) string {
	decoded, err := url.PathUnescape(value)
	if err != nil {
		decoded = value
	}
	decoded = strings.TrimPrefix(decoded, "file://")
	return ShortLabel(decoded, r.opts.LabelBudget)
}

// Clear empties both lists and deletes their persisted keys.
func (r *Registry) Clear() error {
	r.files = nil
	r.folders = nil
	if err := r.store.Delete(KeyFiles); err != nil {
		return fmt.Errorf("recents: clear files: %w", err)
	}
	if err := r.store.Delete(KeyFolders); err != nil {
		return fmt.Errorf("recents: clear folders: %w", err)
	}
	r.opts.Events.Dispatch(event.TypeRecentsChanged, event.RecentsChangedData{Cleared: true})
	logger.DebugTagf("recents", "cleared")
	return nil
}

// ShortLabel elides name when it is longer than budget characters: the result
// is "..." followed by the tail of name, budget characters in total.
// Characters are grapheme clusters, so combined glyphs are never split.
func ShortLabel(name string, budget int) string {
	if uniseg.GraphemeClusterCount(name) <= budget {
		return name
	}
	var clusters []string
	g := uniseg.NewGraphemes(name)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	keep := budget - len(ellipsis)
	if keep < 1 {
		keep = 1
	}
	tail := clusters[len(clusters)-keep:]
	return ellipsis + strings.Join(tail, "")
}
