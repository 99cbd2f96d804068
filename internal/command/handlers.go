package command

import "github.com/bethropolis/tidepad/internal/clipboard"

// builtinHandlers is the dispatch table.
func builtinHandlers() map[Command]Handler {
	return map[Command]Handler{
		Console:    handleConsole,
		Copy:       clipboardHandler(clipboard.ActionCopy),
		Cut:        clipboardHandler(clipboard.ActionCut),
		Encoding:   handleEncoding,
		Find:       handleFind,
		GitHub:     handleGitHub,
		Goto:       handleGoto,
		NewFile:    handleNewFile,
		NextFile:   handleNextFile,
		Open:       handleOpen,
		OpenFile:   handleOpenFile,
		OpenFolder: handleOpenFolder,
		Paste:      clipboardHandler(clipboard.ActionPaste),
		PrevFile:   handlePrevFile,
		ReadOnly:   handleReadOnly,
		Recent:     handleRecent,
		Rename:     handleRename,
		Replace:    handleReplace,
		Save:       handleSave,
		SaveAs:     handleSaveAs,
		SelectAll:  clipboardHandler(clipboard.ActionSelectAll),
		Syntax:     handleSyntax,
	}
}
