// internal/app/events.go
package app

import (
	"context"

	"github.com/bethropolis/tidepad/internal/event"
	"github.com/bethropolis/tidepad/internal/logger"
	"github.com/bethropolis/tidepad/internal/plugin"
	"github.com/bethropolis/tidepad/internal/session"
)

func (a *App) subscribe() {
	a.events.Subscribe(event.TypeFileClosed, a.handleFileClosed)
	a.events.Subscribe(event.TypeFolderAdded, a.handleFolderAdded)
	a.events.Subscribe(event.TypeRecentsChanged, a.handleRecentsChanged)
}

// handleFileClosed forgets the scroll position and history of a closed file.
func (a *App) handleFileClosed(e event.Event) bool {
	if data, ok := e.Data.(event.FileData); ok {
		delete(a.viewports, session.FileID(data.FileID))
		delete(a.histories, session.FileID(data.FileID))
	}
	return false
}

// handleFolderAdded makes the next browse start in the new folder.
func (a *App) handleFolderAdded(e event.Event) bool {
	data, ok := e.Data.(event.FolderAddedData)
	if !ok {
		return false
	}
	if err := a.browser.SetDir(data.URI); err != nil {
		logger.Warnf("App: browser cannot move to %s: %v", data.URI, err)
	}
	return false
}

func (a *App) handleRecentsChanged(e event.Event) bool {
	if data, ok := e.Data.(event.RecentsChangedData); ok {
		logger.DebugTagf("app", "recents changed: kind=%s value=%s cleared=%v", data.Kind, data.Value, data.Cleared)
	}
	return false
}

// The App is the API plugins see.
var _ plugin.API = (*App)(nil)

// Files implements plugin.API.
func (a *App) Files() []*session.File {
	return a.session.Files()
}

// SaveFile implements plugin.API.
func (a *App) SaveFile(ctx context.Context, f *session.File) error {
	return a.session.Save(ctx, f)
}

// SubscribeEvent implements plugin.API.
func (a *App) SubscribeEvent(eventType event.Type, handler event.Handler) {
	a.events.Subscribe(eventType, handler)
}

// DispatchEvent implements plugin.API.
func (a *App) DispatchEvent(eventType event.Type, data interface{}) {
	a.events.Dispatch(eventType, data)
}

// SetStatusMessage implements plugin.API.
func (a *App) SetStatusMessage(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
}
