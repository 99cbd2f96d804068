// Package autosave writes modified files back to their targets on a timer.
package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/bethropolis/tidepad/internal/event"
	"github.com/bethropolis/tidepad/internal/logger"
	"github.com/bethropolis/tidepad/internal/plugin"
	"github.com/bethropolis/tidepad/internal/session"
)

const pluginName = "AutoSave"

// DefaultInterval is used when the configured interval is not positive.
const DefaultInterval = 30 * time.Second

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

// Config controls the plugin.
type Config struct {
	Enabled  bool
	Interval time.Duration
}

// AutoSave saves every modified file that has a target once per interval.
// Files that only live in memory are left alone; they need a save-as first.
// It has no goroutine of its own and runs off the app's tick event.
type AutoSave struct {
	mu       sync.Mutex
	api      plugin.API
	enabled  bool
	interval time.Duration
	lastRun  time.Time
}

// New creates the plugin.
func New(cfg Config) *AutoSave {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &AutoSave{enabled: cfg.Enabled, interval: interval}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return pluginName
}

// Initialize subscribes to the tick event when enabled.
func (p *AutoSave) Initialize(api plugin.API) error {
	p.mu.Lock()
	p.api = api
	enabled, interval := p.enabled, p.interval
	p.mu.Unlock()

	logger.Infof("%s initialized. Enabled: %v, Interval: %v", pluginName, enabled, interval)
	if enabled {
		api.SubscribeEvent(event.TypeTick, p.handleTick)
	}
	return nil
}

// Shutdown stops further saves.
func (p *AutoSave) Shutdown() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = false
	return nil
}

func (p *AutoSave) handleTick(e event.Event) bool {
	now, ok := e.Data.(time.Time)
	if !ok {
		return false
	}

	p.mu.Lock()
	if !p.enabled || p.api == nil {
		p.mu.Unlock()
		return false
	}
	if p.lastRun.IsZero() {
		p.lastRun = now
	}
	due := now.Sub(p.lastRun) >= p.interval
	if due {
		p.lastRun = now
	}
	p.mu.Unlock()

	if due {
		p.SaveModified(context.Background())
	}
	return false
}

// SaveModified saves the files that need it and returns how many were written.
func (p *AutoSave) SaveModified(ctx context.Context) int {
	saved := 0
	for _, f := range p.api.Files() {
		if !needsSave(f) {
			continue
		}
		if err := p.api.SaveFile(ctx, f); err != nil {
			logger.Errorf("%s: Auto-save failed for '%s': %v", pluginName, f.Target(), err)
			continue
		}
		logger.Debugf("%s: Auto-save successful for '%s'", pluginName, f.Target())
		saved++
	}
	if saved > 0 {
		p.api.SetStatusMessage("auto-saved %d file(s)", saved)
	}
	return saved
}

func needsSave(f *session.File) bool {
	if f.IsInMemory() || !f.Editable {
		return false
	}
	return f.Unsaved || f.Buffer.IsModified()
}
