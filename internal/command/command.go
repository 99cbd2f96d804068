// Package command maps the editor's UI actions onto handlers that run against
// an explicit session context.
package command

import "strings"

// Command is one UI action. The set is closed; every value below has a
// handler in the dispatch table.
type Command int

const (
	Unknown Command = iota
	Console
	Copy
	Cut
	Encoding
	Find
	GitHub
	Goto
	NewFile
	NextFile
	Open
	OpenFile
	OpenFolder
	Paste
	PrevFile
	ReadOnly
	Recent
	Rename
	Replace
	Save
	SaveAs
	SelectAll
	Syntax

	commandCount
)

var commandNames = [commandCount]string{
	Unknown:    "unknown",
	Console:    "console",
	Copy:       "copy",
	Cut:        "cut",
	Encoding:   "encoding",
	Find:       "find",
	GitHub:     "github",
	Goto:       "goto",
	NewFile:    "new-file",
	NextFile:   "next-file",
	Open:       "open",
	OpenFile:   "open-file",
	OpenFolder: "open-folder",
	Paste:      "paste",
	PrevFile:   "prev-file",
	ReadOnly:   "read-only",
	Recent:     "recent",
	Rename:     "rename",
	Replace:    "replace",
	Save:       "save",
	SaveAs:     "save-as",
	SelectAll:  "select all",
	Syntax:     "syntax",
}

func (c Command) String() string {
	if c < 0 || c >= commandCount {
		return commandNames[Unknown]
	}
	return commandNames[c]
}

// Parse looks a command up by its action name. "select-all" is accepted as
// an alias of "select all".
func Parse(name string) (Command, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "select-all" {
		return SelectAll, true
	}
	for c := Unknown + 1; c < commandCount; c++ {
		if commandNames[c] == name {
			return c, true
		}
	}
	return Unknown, false
}

// All returns every command except Unknown.
func All() []Command {
	out := make([]Command, 0, commandCount-1)
	for c := Unknown + 1; c < commandCount; c++ {
		out = append(out, c)
	}
	return out
}
