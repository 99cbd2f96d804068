package lang

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Language is a syntax mode a file can be put in.
type Language struct {
	// Name is the display name of the language
	Name string

	// Mode is the stable identifier stored on files ("golang", "text", ...)
	Mode string

	// TreeSitterLang is the grammar used for parsing; nil for plain text
	TreeSitterLang *sitter.Language

	// Extensions maps file extensions to this language
	Extensions []string

	// Icon is the icon hint shown next to files of this language
	Icon string
}

// CountErrors parses src and returns how many syntax error nodes it holds.
// Plain-text modes always report zero.
func (l *Language) CountErrors(ctx context.Context, src []byte) (int, error) {
	if l == nil || l.TreeSitterLang == nil {
		return 0, nil
	}
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(l.TreeSitterLang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", l.Name, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return 0, nil
	}
	return countErrorNodes(root), nil
}

func countErrorNodes(n *sitter.Node) int {
	count := 0
	if n.IsError() || n.IsMissing() {
		count++
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if child.HasError() || child.IsMissing() {
			count += countErrorNodes(child)
		}
	}
	return count
}
