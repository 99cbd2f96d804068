package session

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRing is returned when navigating a ring with no files.
	ErrEmptyRing = errors.New("session: no open files")

	// ErrNotFound is matched by every *NotFoundError.
	ErrNotFound = errors.New("session: file not found")
)

// NotFoundError reports a file id that is not in the ring.
type NotFoundError struct {
	ID FileID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session: no open file with id %q", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Ring is the ordered collection of open files in tab order plus the active
// one. The active file is held by id and its index is resolved on every
// call, so removals between calls never leave a stale position.
type Ring struct {
	items  []*File
	active FileID
}

// NewRing creates an empty ring.
func NewRing() *Ring {
	return &Ring{}
}

// Len returns the number of open files.
func (r *Ring) Len() int {
	return len(r.items)
}

// Files returns a copy of the files in tab order.
func (r *Ring) Files() []*File {
	out := make([]*File, len(r.items))
	copy(out, r.items)
	return out
}

// Active returns the active file, or nil when the ring is empty.
func (r *Ring) Active() *File {
	if i := r.indexOf(r.active); i >= 0 {
		return r.items[i]
	}
	return nil
}

// Get returns the file with the given id.
func (r *Ring) Get(id FileID) (*File, error) {
	if i := r.indexOf(id); i >= 0 {
		return r.items[i], nil
	}
	return nil, &NotFoundError{ID: id}
}

func (r *Ring) indexOf(id FileID) int {
	if id == "" {
		return -1
	}
	for i, f := range r.items {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// Add appends a file. The first file added becomes active.
func (r *Ring) Add(f *File) error {
	if r.indexOf(f.ID) >= 0 {
		return fmt.Errorf("session: file id %q already open", f.ID)
	}
	r.items = append(r.items, f)
	if r.Active() == nil {
		r.active = f.ID
	}
	return nil
}

// Remove drops a file. If it was active, the file that slides into its
// position becomes active, or the new last file when it was at the end.
func (r *Ring) Remove(id FileID) (*File, error) {
	i := r.indexOf(id)
	if i < 0 {
		return nil, &NotFoundError{ID: id}
	}
	removed := r.items[i]
	r.items = append(r.items[:i], r.items[i+1:]...)

	if r.active == id {
		switch {
		case len(r.items) == 0:
			r.active = ""
		case i < len(r.items):
			r.active = r.items[i].ID
		default:
			r.active = r.items[len(r.items)-1].ID
		}
	}
	return removed, nil
}

// Next activates and returns the file after the active one, wrapping around.
func (r *Ring) Next() (*File, error) {
	return r.step(1)
}

// Previous activates and returns the file before the active one, wrapping around.
func (r *Ring) Previous() (*File, error) {
	return r.step(-1)
}

func (r *Ring) step(delta int) (*File, error) {
	n := len(r.items)
	if n == 0 {
		return nil, ErrEmptyRing
	}
	i := r.indexOf(r.active)
	if i < 0 {
		// No valid active file: start from the first one.
		f := r.items[0]
		r.active = f.ID
		return f, nil
	}
	next := ((i+delta)%n + n) % n
	f := r.items[next]
	r.active = f.ID
	return f, nil
}

// SwitchTo makes the file with id active. The active file is unchanged when
// id is unknown.
func (r *Ring) SwitchTo(id FileID) (*File, error) {
	i := r.indexOf(id)
	if i < 0 {
		return nil, &NotFoundError{ID: id}
	}
	r.active = id
	return r.items[i], nil
}
