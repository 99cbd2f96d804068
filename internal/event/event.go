// internal/event/event.go
package event

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Session events
	TypeFileAdded    // A file joined the open-file ring
	TypeFileSwitched // The active file changed
	TypeFileClosed   // A file left the ring
	TypeFileRenamed  // A file's name or location changed
	TypeFileSaved    // A file was written through the filesystem adapter
	TypeFileUpdated  // File state changed and views should redraw
	TypeFolderAdded  // A folder was added to the sidebar

	// Recents events
	TypeRecentsChanged // A recents list was recorded into or cleared

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
	TypeTick // Once a second from the app loop; Data is the time.Time
)

var typeNames = map[Type]string{
	TypeUnknown:        "unknown",
	TypeFileAdded:      "file-added",
	TypeFileSwitched:   "file-switched",
	TypeFileClosed:     "file-closed",
	TypeFileRenamed:    "file-renamed",
	TypeFileSaved:      "file-saved",
	TypeFileUpdated:    "file-updated",
	TypeFolderAdded:    "folder-added",
	TypeRecentsChanged: "recents-changed",
	TypeAppReady:       "app-ready",
	TypeAppQuit:        "app-quit",
	TypeTick:           "tick",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// FileData identifies the file an event is about.
type FileData struct {
	FileID string
	Name   string
}

// FileRenamedData carries the old and new display names.
type FileRenamedData struct {
	FileID  string
	OldName string
	NewName string
}

// FolderAddedData carries the folder that joined the sidebar.
type FolderAddedData struct {
	URI  string
	Name string
}

// RecentsChangedData describes a recents mutation. Cleared is set by a clear.
type RecentsChangedData struct {
	Kind    string
	Value   string
	Cleared bool
}
