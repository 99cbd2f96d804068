// internal/highlighter/languages.go
package highlighter

import (
	"github.com/bethropolis/tidepad/internal/highlighter/lang"
	"github.com/bethropolis/tidepad/internal/logger"

	gosrc "github.com/smacker/go-tree-sitter/golang"
	jssrc "github.com/smacker/go-tree-sitter/javascript"
	pythonsrc "github.com/smacker/go-tree-sitter/python"
	rustsrc "github.com/smacker/go-tree-sitter/rust"
)

// RegisterLanguages fills r with the built-in syntax modes.
func RegisterLanguages(r *lang.Registry) {
	r.Register(&lang.Language{
		Name:       "Text",
		Mode:       lang.ModeText,
		Extensions: []string{".txt", ".text", ".log"},
		Icon:       "icon text",
	})

	r.Register(&lang.Language{
		Name:           "Go",
		Mode:           "golang",
		TreeSitterLang: gosrc.GetLanguage(),
		Extensions:     []string{".go"},
		Icon:           "icon go",
	})

	r.Register(&lang.Language{
		Name:           "Python",
		Mode:           "python",
		TreeSitterLang: pythonsrc.GetLanguage(),
		Extensions:     []string{".py", ".pyw"},
		Icon:           "icon python",
	})

	r.Register(&lang.Language{
		Name:           "JavaScript",
		Mode:           "javascript",
		TreeSitterLang: jssrc.GetLanguage(),
		Extensions:     []string{".js", ".mjs", ".cjs"},
		Icon:           "icon javascript",
	})

	// The JS grammar parses JSON documents well enough for error counting.
	r.Register(&lang.Language{
		Name:           "JSON",
		Mode:           "json",
		TreeSitterLang: jssrc.GetLanguage(),
		Extensions:     []string{".json"},
		Icon:           "icon json",
	})

	r.Register(&lang.Language{
		Name:           "Rust",
		Mode:           "rust",
		TreeSitterLang: rustsrc.GetLanguage(),
		Extensions:     []string{".rs"},
		Icon:           "icon rust",
	})

	logger.Debugf("Registration complete. Registered %d languages.", len(r.All()))
}
