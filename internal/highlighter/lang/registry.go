package lang

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/bethropolis/tidepad/internal/logger"
)

// ModeText is the plain-text mode.
const ModeText = "text"

// DefaultIcon is used for files no registered language claims.
const DefaultIcon = "icon file"

// FolderIcon is the icon hint for directories.
const FolderIcon = "icon folder"

// Registry maps modes and file extensions to languages.
type Registry struct {
	mu            sync.RWMutex
	languages     []*Language
	byMode        map[string]*Language
	extToLanguage map[string]*Language
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byMode:        make(map[string]*Language),
		extToLanguage: make(map[string]*Language),
	}
}

// Register adds a language to the registry
func (r *Registry) Register(lang *Language) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byMode[lang.Mode]; !exists {
		r.languages = append(r.languages, lang)
	}
	r.byMode[lang.Mode] = lang

	for _, ext := range lang.Extensions {
		lowerExt := strings.ToLower(ext)
		if existing, ok := r.extToLanguage[lowerExt]; ok {
			logger.Warnf("Extension %s already registered to %s, overriding with %s",
				lowerExt, existing.Name, lang.Name)
		}
		r.extToLanguage[lowerExt] = lang
	}

	logger.DebugTagf("lang", "registered language %s with extensions %v", lang.Name, lang.Extensions)
}

// ForFile returns the language for a file name or path, or nil.
func (r *Registry) ForFile(name string) *Language {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.extToLanguage[strings.ToLower(filepath.Ext(name))]
}

// ByMode returns the language registered under mode, or nil.
func (r *Registry) ByMode(mode string) *Language {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byMode[mode]
}

// All returns all registered languages in registration order.
func (r *Registry) All() []*Language {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Language, len(r.languages))
	copy(result, r.languages)
	return result
}

// ModeFor returns the mode for a file name, "text" when unknown.
func (r *Registry) ModeFor(name string) string {
	if l := r.ForFile(name); l != nil {
		return l.Mode
	}
	return ModeText
}

// IconFor returns the icon hint for a file name.
func (r *Registry) IconFor(name string) string {
	if l := r.ForFile(name); l != nil && l.Icon != "" {
		return l.Icon
	}
	return DefaultIcon
}
