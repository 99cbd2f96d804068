// internal/plugin/plugin.go
package plugin

import (
	"context"

	"github.com/bethropolis/tidepad/internal/event"
	"github.com/bethropolis/tidepad/internal/session"
)

// API is the part of the editor plugins may use. Every call happens on the
// app loop goroutine, from an event handler the plugin subscribed.
type API interface {
	// Files returns the open files in tab order.
	Files() []*session.File
	// SaveFile writes f to its target.
	SaveFile(ctx context.Context, f *session.File) error

	SubscribeEvent(eventType event.Type, handler event.Handler)
	DispatchEvent(eventType event.Type, data interface{})

	// SetStatusMessage shows a temporary message in the status bar.
	SetStatusMessage(format string, args ...interface{})
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. Plugins subscribe
	// to events here.
	Initialize(api API) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
